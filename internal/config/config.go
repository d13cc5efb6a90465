package config

import "path/filepath"

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SuitePath   string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Workers int

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers      int
	SuitePath    string
	NameFilter   string
	Trait        string
	FailFast     bool
	Serialize    bool
	History      bool
	HistoryLimit int
	ShowTraits   bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		SuitePath:      DefaultSuitePath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Workers:        DefaultWorkers,
		Flags:          Flags{Workers: DefaultWorkers},
	}
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags
	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	return cfg
}

// GetSuitePath returns the suite definitions path, using the flag if provided
func (c *Config) GetSuitePath() string {
	if c.Flags.SuitePath != "" {
		if filepath.IsAbs(c.Flags.SuitePath) {
			return c.Flags.SuitePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SuitePath)
	}
	return filepath.Join(c.ProjectPath, c.SuitePath)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and failures always read/write the
// same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetEnvPath returns the path to the project's .env file
func (c *Config) GetEnvPath() string {
	return filepath.Join(c.ProjectPath, ".env")
}
