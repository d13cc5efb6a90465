package commands

import (
	"xtp/internal/cli"
	"xtp/internal/config"
	"xtp/internal/discovery"
	"xtp/internal/storage"
	"xtp/internal/traits"
	"xtp/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	registry := traits.NewDefaultRegistry()
	diagnostics := traits.DiagnosticFunc(func(format string, args ...any) {
		color.Yellow("warning: "+format, args...)
	})
	aggregator := traits.NewAggregator(registry, traits.NewCache(), traits.NewCache(), diagnostics)
	loader := discovery.NewLoader()
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, jsonStorage)
	failureViewer := ui.NewFailureViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, loader, filter, aggregator, jsonStorage, formatter),
		List:     NewListCommand(cfg, loader, filter, aggregator, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, failureViewer),
		History:  NewHistoryCommand(cfg, formatter),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run discovered test cases in parallel",
		Long:  "Discover test cases from suite definitions and execute them using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of workers to use")
	runCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Path to the suite definition file or directory")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by display name pattern (supports wildcards, e.g., '*Payment*')")
	runCmd.Flags().StringVarP(&flags.Trait, "trait", "t", "", "Filter cases by trait as name=value (or just name)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first case failure")
	runCmd.Flags().BoolVar(&flags.Serialize, "serialize", false, "Embed the serialized case in each discovery message")
	runCmd.Flags().BoolVar(&flags.History, "history", false, "Record the run summary in the history database")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test cases",
		Long:  "Discover and list all test cases without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Path to the suite definition file or directory")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by display name pattern (supports wildcards, e.g., '*Payment*')")
	listCmd.Flags().StringVarP(&flags.Trait, "trait", "t", "", "Filter cases by trait as name=value (or just name)")
	listCmd.Flags().BoolVar(&flags.ShowTraits, "traits", false, "Show each case's traits")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View case failures interactively",
		Long:  "Display case failures from the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run summaries",
		Long:  "List run summaries recorded in the history database, newest first",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.HistoryLimit, "limit", "n", config.DefaultHistoryLimit, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
