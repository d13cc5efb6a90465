package config

import (
	"path/filepath"
	"testing"
)

func TestConfig_GetSuitePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				SuitePath:   "testsuites",
				Flags:       Flags{},
			},
			expected: "testsuites",
		},
		{
			name: "with suite path flag",
			config: &Config{
				ProjectPath: "/project",
				SuitePath:   "testsuites",
				Flags: Flags{
					SuitePath: "suites",
				},
			},
			expected: "/project/suites",
		},
		{
			name: "absolute suite path",
			config: &Config{
				ProjectPath: "/project",
				SuitePath:   "testsuites",
				Flags: Flags{
					SuitePath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSuitePath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	expected := filepath.Join("/project", DefaultOutputJSONDir, DefaultOutputJSONFile)
	if got := cfg.GetOutputPath(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if cfg.SuitePath != DefaultSuitePath {
		t.Errorf("expected SuitePath %s, got %s", DefaultSuitePath, cfg.SuitePath)
	}
}

func TestLoad(t *testing.T) {
	t.Run("flag workers override default", func(t *testing.T) {
		cfg := Load(Flags{Workers: 8})
		if cfg.Workers != 8 {
			t.Errorf("expected 8 workers, got %d", cfg.Workers)
		}
	})

	t.Run("zero workers keep default", func(t *testing.T) {
		cfg := Load(Flags{})
		if cfg.Workers != DefaultWorkers {
			t.Errorf("expected %d workers, got %d", DefaultWorkers, cfg.Workers)
		}
	})
}
