package config

import (
	"fmt"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	// WorkspaceRoot is the directory external jobs run in.
	WorkspaceRoot string
	// RegistryPath is the path to the report registry file.
	RegistryPath string
	// RunConfigPath is where the per-run configuration document is written
	// for notebook jobs that read their parameters from a file.
	RunConfigPath string
	// OutputBaseDir is the base directory for executed artifacts.
	OutputBaseDir string
	// DataDir is the base directory for dated input data.
	DataDir string
	// LogDir is the directory for application log files.
	LogDir string
	// NotebookRunner is the binary used to execute notebook jobs.
	NotebookRunner string
	// KernelName is the kernel passed to the notebook runner.
	KernelName string

	Debug     bool
	Quiet     bool
	LogFormat string
}

// Definition is the raw shape of the configuration file.
type Definition struct {
	WorkspaceRoot  string `mapstructure:"workspaceRoot"`
	RegistryPath   string `mapstructure:"registryPath"`
	RunConfigPath  string `mapstructure:"runConfigPath"`
	OutputBaseDir  string `mapstructure:"outputBaseDir"`
	DataDir        string `mapstructure:"dataDir"`
	LogDir         string `mapstructure:"logDir"`
	NotebookRunner string `mapstructure:"notebookRunner"`
	KernelName     string `mapstructure:"kernelName"`
	Debug          bool   `mapstructure:"debug"`
	Quiet          bool   `mapstructure:"quiet"`
	LogFormat      string `mapstructure:"logFormat"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.WorkspaceRoot == "" {
		return fmt.Errorf("workspaceRoot must not be empty")
	}
	if !filepath.IsAbs(c.WorkspaceRoot) {
		return fmt.Errorf("workspaceRoot must be an absolute path: %s", c.WorkspaceRoot)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logFormat: %s", c.LogFormat)
	}
	return nil
}
