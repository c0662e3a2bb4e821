package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/finbooks/reportctl/internal/build"
	"github.com/finbooks/reportctl/internal/fileutil"
)

// Load creates a new configuration by instantiating a ConfigLoader with the
// provided options and then invoking its Load method.
func Load(opts ...ConfigLoaderOption) (*Config, error) {
	loader := NewConfigLoader(opts...)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// ConfigLoader reads and merges configuration from the config file,
// environment variables and defaults. The mutex keeps Load safe when
// called from multiple goroutines.
type ConfigLoader struct {
	lock       sync.Mutex
	configFile string
}

// ConfigLoaderOption defines a functional option for configuring a ConfigLoader.
type ConfigLoaderOption func(*ConfigLoader)

// WithConfigFile returns a ConfigLoaderOption that sets the configuration file path.
func WithConfigFile(configFile string) ConfigLoaderOption {
	return func(l *ConfigLoader) {
		l.configFile = configFile
	}
}

// NewConfigLoader creates a new ConfigLoader instance and applies all given options.
func NewConfigLoader(options ...ConfigLoaderOption) *ConfigLoader {
	loader := &ConfigLoader{}
	for _, option := range options {
		option(loader)
	}
	return loader
}

// Load initializes viper, reads the configuration file, and returns a
// fully built and validated Config instance.
func (l *ConfigLoader) Load() (*Config, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	v := viper.New()
	l.setupViper(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var def Definition
	if err := v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg, err := l.buildConfig(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (l *ConfigLoader) setupViper(v *viper.Viper) {
	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, build.Slug))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(build.Slug))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	l.setDefaults(v)
}

func (l *ConfigLoader) setDefaults(v *viper.Viper) {
	wd := fileutil.MustGetwd()
	v.SetDefault("workspaceRoot", wd)
	v.SetDefault("registryPath", filepath.Join(wd, "config", "report_registry.yaml"))
	v.SetDefault("runConfigPath", filepath.Join(wd, "config", "run_config.json"))
	v.SetDefault("outputBaseDir", filepath.Join(wd, "notebooks"))
	v.SetDefault("dataDir", filepath.Join(wd, "data"))
	v.SetDefault("logDir", filepath.Join(xdg.DataHome, build.Slug, "logs"))
	v.SetDefault("notebookRunner", "papermill")
	v.SetDefault("kernelName", "python3")
	v.SetDefault("logFormat", "text")
}

func (l *ConfigLoader) buildConfig(def Definition) (*Config, error) {
	workspaceRoot, err := fileutil.ResolvePath(def.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	registryPath, err := fileutil.ResolvePath(def.RegistryPath)
	if err != nil {
		return nil, err
	}
	runConfigPath, err := fileutil.ResolvePath(def.RunConfigPath)
	if err != nil {
		return nil, err
	}
	outputBaseDir, err := fileutil.ResolvePath(def.OutputBaseDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := fileutil.ResolvePath(def.DataDir)
	if err != nil {
		return nil, err
	}
	logDir, err := fileutil.ResolvePath(def.LogDir)
	if err != nil {
		return nil, err
	}

	return &Config{
		WorkspaceRoot:  workspaceRoot,
		RegistryPath:   registryPath,
		RunConfigPath:  runConfigPath,
		OutputBaseDir:  outputBaseDir,
		DataDir:        dataDir,
		LogDir:         logDir,
		NotebookRunner: def.NotebookRunner,
		KernelName:     def.KernelName,
		Debug:          def.Debug,
		Quiet:          def.Quiet,
		LogFormat:      def.LogFormat,
	}, nil
}
