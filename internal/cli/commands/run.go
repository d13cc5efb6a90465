package commands

import (
	"fmt"
	"strings"

	"xtp/internal/config"
	"xtp/internal/discovery"
	"xtp/internal/domain"
	"xtp/internal/execution"
	"xtp/internal/history"
	"xtp/internal/messages"
	"xtp/internal/storage"
	"xtp/internal/testcase"
	"xtp/internal/traits"
	"xtp/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	loader     *discovery.Loader
	filter     *discovery.Filter
	aggregator *traits.Aggregator
	storage    storage.Storage
	formatter  *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	loader *discovery.Loader,
	filter *discovery.Filter,
	aggregator *traits.Aggregator,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		loader:     loader,
		filter:     filter,
		aggregator: aggregator,
		storage:    st,
		formatter:  formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discovery and summary messages flow through one in-process bus.
	var discovered int
	var summaries []*messages.CollectionFinished
	bus := messages.BusFunc(func(msg any) error {
		switch m := msg.(type) {
		case *messages.CaseDiscovered:
			discovered++
		case *messages.CollectionFinished:
			summaries = append(summaries, m)
		}
		return nil
	})

	cases, err := discoverCases(rc.config, rc.loader, rc.filter, rc.aggregator, bus)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}
	color.Cyan("Discovered %d case(s), running %d after filters", discovered, len(cases))

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(cases))
	runner := execution.NewCommandRunner(rc.config.ProjectPath)
	pool := execution.NewPool(rc.config.Workers, runner)
	pool.SetProgress(progressBar)
	pool.SetBus(bus)

	// Execute cases
	results, duration, err := pool.ExecuteWithOptions(cases, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Save results
	failures := domain.FailuresOf(results)
	if err := rc.storage.Save(results, failures, duration, rc.config.Workers); err != nil {
		return fmt.Errorf("failed to save case results: %w", err)
	}

	// Per-collection summaries arrive over the bus after execution
	for _, summary := range summaries {
		run, err := summary.TestsRun()
		if err != nil {
			return err
		}
		failed, err := summary.TestsFailed()
		if err != nil {
			return err
		}
		skipped, err := summary.TestsSkipped()
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d run, %d failed, %d skipped\n", summary.CollectionID(), run, failed, skipped)
	}

	// Record the run in history if requested
	if rc.config.Flags.History {
		if err := rc.recordHistory(); err != nil {
			color.Yellow("warning: failed to record run history: %v", err)
		}
	}

	// Print stats
	return rc.formatter.PrintMetaStats()
}

// recordHistory stores the saved run summary in the history database.
func (rc *RunCommand) recordHistory() error {
	output, err := rc.storage.Load()
	if err != nil {
		return err
	}
	store, err := history.Open(rc.config)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(output.Meta)
}

// discoverCases loads suite definitions, scans them for cases and applies
// the name and trait filters from the config.
func discoverCases(
	cfg *config.Config,
	loader *discovery.Loader,
	filter *discovery.Filter,
	aggregator *traits.Aggregator,
	bus messages.Bus,
) ([]*testcase.Case, error) {
	assemblies, err := loader.Load(cfg.GetSuitePath())
	if err != nil {
		return nil, err
	}

	scanner := discovery.NewScanner(aggregator, nil, cfg.Flags.Serialize)
	var cases []*testcase.Case
	for _, assembly := range assemblies {
		scanned, err := scanner.Scan(assembly, bus)
		if err != nil {
			return nil, err
		}
		cases = append(cases, scanned...)
	}

	cases = filter.ByName(cases, cfg.Flags.NameFilter)
	if cfg.Flags.Trait != "" {
		name, value, _ := strings.Cut(cfg.Flags.Trait, "=")
		cases = filter.ByTrait(cases, name, value)
	}
	return cases, nil
}
