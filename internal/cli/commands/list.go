package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xtp/internal/config"
	"xtp/internal/discovery"
	"xtp/internal/traits"
	"xtp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	loader     *discovery.Loader
	filter     *discovery.Filter
	aggregator *traits.Aggregator
	formatter  *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	loader *discovery.Loader,
	filter *discovery.Filter,
	aggregator *traits.Aggregator,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:     cfg,
		loader:     loader,
		filter:     filter,
		aggregator: aggregator,
		formatter:  formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := discoverCases(lc.config, lc.loader, lc.filter, lc.aggregator, nil)
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	return lc.formatter.PrintCaseList(cases, lc.config.Flags.ShowTraits)
}
