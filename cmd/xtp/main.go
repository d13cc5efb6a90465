package main

import (
	"fmt"
	"os"

	"xtp/internal/cli"
	"xtp/internal/cli/commands"
	"xtp/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "xtp",
		Short:   "Parallel test case processor",
		Long:    `A parallel processor for declarative test suites. Discover test cases from suite definitions, aggregate their traits, and execute them across parallel workers.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
