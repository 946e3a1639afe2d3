package main

import (
	"fmt"
	"os"

	// Import to register the simulation
	_ "github.com/caxsim/tactical-command/cmd/tactical-command/simulation"
)

func main() {
	fmt.Println("Tactical Command simulation registered. Use 'tacsim run' to execute.")
	os.Exit(0)
}
