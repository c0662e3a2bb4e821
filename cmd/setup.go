package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/config"
	"github.com/finbooks/reportctl/internal/logger"
	"github.com/finbooks/reportctl/internal/orchestrator"
	"github.com/finbooks/reportctl/internal/registry"
	"github.com/finbooks/reportctl/internal/runlog"
)

// setup holds everything a subcommand needs after initialization.
type setup struct {
	ctx context.Context
	cfg *config.Config
	reg *registry.Registry
	orc *orchestrator.Orchestrator
}

// exportPath is where the execution log is persisted between CLI
// invocations so history and stats survive the process.
func (s *setup) exportPath() string {
	return filepath.Join(s.cfg.LogDir, "execution_log.json")
}

func newSetup(cmd *cobra.Command) (*setup, error) {
	var opts []config.ConfigLoaderOption
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	var logOpts []logger.Option
	if cfg.Debug {
		logOpts = append(logOpts, logger.WithDebug())
	}
	if cfg.Quiet {
		logOpts = append(logOpts, logger.WithQuiet())
	}
	logOpts = append(logOpts, logger.WithFormat(cfg.LogFormat))
	lg := logger.NewLogger(logOpts...)

	ctx := logger.WithLogger(cmd.Context(), lg)

	reg := registry.Load(ctx, cfg.RegistryPath)

	s := &setup{ctx: ctx, cfg: cfg, reg: reg}

	log, err := runlog.Load(s.exportPath())
	if err != nil {
		logger.Warn(ctx, "Failed to load execution log, starting empty", "err", err)
		log = runlog.New()
	}
	s.orc = orchestrator.New(cfg, reg, log)

	return s, nil
}

// listenSignals wires SIGINT/SIGTERM into the cancellation token. The
// first signal requests cooperative cancellation; the second one
// force-kills the running job.
func listenSignals(ctx context.Context, token *orchestrator.CancelToken, orc *orchestrator.Orchestrator) func() {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		cancelled := false
		for {
			select {
			case sig := <-sigs:
				if !cancelled {
					logger.Warn(ctx, "Cancellation requested", "signal", sig)
					token.Cancel()
					cancelled = true
					continue
				}
				logger.Warn(ctx, "Killing running job", "signal", sig)
				orc.Signal(syscall.SIGTERM)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// parseParams parses repeated key=value flags into a parameter map.
func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
