package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"xtp/internal/config"
	"xtp/internal/domain"
	"xtp/internal/storage"
	"xtp/internal/testcase"
)

// Formatter formats and displays output
type Formatter struct {
	config  *config.Config
	storage storage.Storage
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, st storage.Storage) *Formatter {
	return &Formatter{
		config:  cfg,
		storage: st,
	}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	output, err := f.storage.Load()
	if err != nil {
		return err
	}
	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Run Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	printRow("Total Cases", color.New(color.FgWhite), "%d", meta.TotalCases)
	printRow("Passed Cases", color.New(color.FgGreen), "%d", meta.PassedCases)
	printRow("Failed Cases", color.New(color.FgRed), "%d", meta.FailedCases)
	printRow("Skipped Cases", color.New(color.FgYellow), "%d", meta.SkippedCases)
	printRow("Duration", color.New(color.FgWhite), "%.2fs", meta.DurationSeconds)
	printRow("Workers", color.New(color.FgWhite), "%d", meta.Workers)
	printLastRow("Timestamp", color.New(color.FgWhite), "%s", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedCases == 0 {
		color.Green("✓ All cases passed!")
	} else {
		color.Red("✗ %d case(s) failed", meta.FailedCases)
		fmt.Println()
		f.printFailures(output.Details)
	}
	return nil
}

func printRow(label string, c *color.Color, format string, value any) {
	fmt.Printf("│ %-31s │ ", label)
	c.Printf("%-27s │\n", fmt.Sprintf(format, value))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
}

func printLastRow(label string, c *color.Color, format string, value any) {
	fmt.Printf("│ %-31s │ ", label)
	c.Printf("%-27s │\n", fmt.Sprintf(format, value))
}

// printFailures lists failed cases with their messages
func (f *Formatter) printFailures(failures []domain.CaseFailure) {
	for i, failure := range failures {
		color.Red("  %d. %s", i+1, failure.DisplayName)
		if failure.Message != "" {
			fmt.Printf("     %s\n", strings.ReplaceAll(failure.Message, "\n", "\n     "))
		}
	}
}

// PrintCaseList displays discovered cases, optionally with their traits
func (f *Formatter) PrintCaseList(cases []*testcase.Case, withTraits bool) error {
	color.Cyan("Discovered %d case(s):", len(cases))
	for _, c := range cases {
		name, err := c.DisplayName()
		if err != nil {
			return err
		}
		skip, err := c.SkipReason()
		if err != nil {
			return err
		}
		if skip != "" {
			fmt.Printf("  %s ", name)
			color.Yellow("[skipped: %s]", skip)
		} else {
			fmt.Printf("  %s\n", name)
		}

		if !withTraits {
			continue
		}
		caseTraits, err := c.Traits()
		if err != nil {
			return err
		}
		for _, traitName := range caseTraits.Names() {
			fmt.Printf("    %s: %s\n", traitName, strings.Join(caseTraits.Get(traitName), ", "))
		}
	}
	return nil
}

// PrintHistory displays recorded run summaries, newest first
func (f *Formatter) PrintHistory(metas []domain.RunMeta) {
	if len(metas) == 0 {
		color.Yellow("No recorded runs")
		return
	}
	color.Cyan("%-25s %8s %8s %8s %9s %10s", "Timestamp", "Total", "Passed", "Failed", "Skipped", "Duration")
	for _, m := range metas {
		fmt.Printf("%-25s %8d %8d %8d %9d %9.2fs\n",
			m.Timestamp, m.TotalCases, m.PassedCases, m.FailedCases, m.SkippedCases, m.DurationSeconds)
	}
}
