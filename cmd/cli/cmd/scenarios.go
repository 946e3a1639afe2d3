package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/caxsim/tactical-command/cmd/tactical-command/config"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [name]",
	Short: "List built-in scenarios or show one in detail",
	Long: `Without arguments, lists the built-in scenarios. With a scenario
name, prints its full briefing, forces and objectives.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showScenarios,
}

func showScenarios(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return showScenarioDetail(args[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tDIFFICULTY\tDURATION\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t----\t----------\t--------\t-----------")

	for _, name := range config.BuiltinScenarioNames() {
		cfg := config.BuiltinScenario(name)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.0fs\t%s\n",
			name,
			cfg.Scenario.Type,
			cfg.Scenario.Difficulty,
			cfg.Scenario.Duration,
			cfg.Scenario.Description,
		)
	}

	return w.Flush()
}

func showScenarioDetail(name string) error {
	cfg := config.BuiltinScenario(name)
	if cfg == nil {
		return fmt.Errorf("unknown scenario %q (try 'tacsim scenarios')", name)
	}

	title := color.New(color.FgCyan, color.Bold)
	_, _ = title.Printf("%s\n\n", cfg.Scenario.Name)

	if cfg.Scenario.Briefing != "" {
		fmt.Println(cfg.Scenario.Briefing)
		fmt.Println()
	}

	fmt.Println(cfg.String())
	fmt.Println("\nObjectives:")
	for _, obj := range cfg.Objectives {
		marker := " "
		if obj.Required {
			marker = "*"
		}
		fmt.Printf("  %s %s (%.0f,%.0f) r=%.0fm value=%d\n",
			marker, obj.Name, obj.X, obj.Y, obj.Radius, obj.Value)
	}
	fmt.Println("\n  * required")

	return nil
}
