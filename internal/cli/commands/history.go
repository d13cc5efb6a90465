package commands

import (
	"github.com/spf13/cobra"

	"xtp/internal/config"
	"xtp/internal/history"
	"xtp/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter) *HistoryCommand {
	return &HistoryCommand{
		config:    cfg,
		formatter: formatter,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	store, err := history.Open(hc.config)
	if err != nil {
		return err
	}
	defer store.Close()

	limit := hc.config.Flags.HistoryLimit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	metas, err := store.Recent(limit)
	if err != nil {
		return err
	}

	hc.formatter.PrintHistory(metas)
	return nil
}
