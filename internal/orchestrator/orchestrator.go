// Package orchestrator is the facade that executes reports: it resolves
// dependency order, dispatches to the executor factory, enforces
// cooperative cancellation and appends outcomes to the execution log.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/reportctl/internal/config"
	"github.com/finbooks/reportctl/internal/executor"
	"github.com/finbooks/reportctl/internal/logger"
	"github.com/finbooks/reportctl/internal/registry"
	"github.com/finbooks/reportctl/internal/resolver"
	"github.com/finbooks/reportctl/internal/runlog"
	"github.com/finbooks/reportctl/internal/stringutil"
)

// ErrReportNotFound is returned when a requested report ID is not in
// the registry. This is a configuration error and is surfaced to the
// caller synchronously.
var ErrReportNotFound = errors.New("report not found in registry")

// errorDetailLines caps how much process output is attached to a failed
// record so an operator can diagnose failures without raw logs.
const errorDetailLines = 20

// Request describes one execution attempt.
type Request struct {
	// ReportID is the report to execute.
	ReportID string
	// OverrideParameters are merged over the report's defaults;
	// override wins on key collision.
	OverrideParameters map[string]string
	// OutputTarget is where the run's durable artifact is written.
	// When empty a dated default under the output base dir is used.
	OutputTarget string
	// Token is polled before dispatch and after the executor returns.
	Token *CancelToken
	// Progress is an optional progress hook passed to the executor.
	Progress executor.ProgressFunc
}

// BatchOptions controls ExecuteBatch.
type BatchOptions struct {
	// StopOnError halts the batch on the first failed or cancelled
	// record; subsequent reports are left unattempted, not marked
	// failed.
	StopOnError bool
	// Token is shared by every execution in the batch.
	Token *CancelToken
	// Progress is passed through to every execution.
	Progress executor.ProgressFunc
}

// Orchestrator executes single reports and batches. It is synchronous:
// callers that need a responsive event loop run it on their own
// goroutine with one CancelToken per in-flight execution.
type Orchestrator struct {
	cfg *config.Config
	reg *registry.Registry
	log *runlog.Log

	// now is swapped in tests.
	now func() time.Time

	mu      sync.Mutex
	running executor.Executor
}

// New creates an orchestrator over the given registry and execution log.
func New(cfg *config.Config, reg *registry.Registry, log *runlog.Log) *Orchestrator {
	return &Orchestrator{
		cfg: cfg,
		reg: reg,
		log: log,
		now: time.Now,
	}
}

// Log returns the execution log.
func (o *Orchestrator) Log() *runlog.Log {
	return o.log
}

// Signal forwards a signal to the currently running job, if any. This
// is the forceful complement to the advisory CancelToken.
func (o *Orchestrator) Signal(sig os.Signal) {
	o.mu.Lock()
	running := o.running
	o.mu.Unlock()
	if running != nil {
		_ = running.Kill(sig)
	}
}

func (o *Orchestrator) setRunning(e executor.Executor) {
	o.mu.Lock()
	o.running = e
	o.mu.Unlock()
}

// ExecuteReport executes a single report and appends exactly one record
// to the execution log. Execution failures are returned inside the
// record; only configuration errors are returned as errors.
func (o *Orchestrator) ExecuteReport(ctx context.Context, req Request) (runlog.Record, error) {
	report, ok := o.reg.Get(req.ReportID)
	if !ok {
		return runlog.Record{}, fmt.Errorf("%w: %s", ErrReportNotFound, req.ReportID)
	}
	if !report.Executable() {
		// Eligibility is enforced by the UI layer only; execution is
		// still attempted.
		logger.Warn(ctx, "Report is not marked executable", "report", report.ID, "status", report.Status)
	}

	merged, err := MergeParams(report.DefaultParameters, req.OverrideParameters)
	if err != nil {
		return runlog.Record{}, err
	}
	startedAt := o.now()
	params := ResolveAutoParams(merged, startedAt)

	outputTarget := req.OutputTarget
	if outputTarget == "" {
		outputTarget = o.defaultOutputTarget(report, startedAt)
	}

	record := runlog.Record{
		RunID:          uuid.NewString(),
		ReportID:       report.ID,
		StartedAt:      startedAt,
		ParametersUsed: params,
	}

	if report.ExecutorType == registry.ExecutorTypeJobScript && o.cfg.RunConfigPath != "" {
		if err := o.writeRunConfig(ctx, params); err != nil {
			logger.Warn(ctx, "Failed to write run config", "report", report.ID, "err", err)
		}
	}

	// Checkpoint: refuse to start work that was cancelled before
	// dispatch, without invoking the executor.
	if req.Token.IsCancelled() {
		logger.Info(ctx, "Execution cancelled before dispatch", "report", report.ID)
		record.Status = runlog.StatusCancelled
		o.log.Append(record)
		return record, nil
	}

	spec := executor.Spec{
		Type:           report.ExecutorType.String(),
		EntryPoint:     report.EntryPoint,
		Args:           report.Args,
		Parameters:     params,
		WorkspaceRoot:  o.cfg.WorkspaceRoot,
		OutputTarget:   outputTarget,
		NotebookRunner: o.cfg.NotebookRunner,
		KernelName:     o.cfg.KernelName,
		Progress:       req.Progress,
	}

	exec, err := executor.NewExecutor(ctx, spec)
	if err != nil {
		if errors.Is(err, executor.ErrUnknownExecutorType) {
			// Running the wrong job is worse than failing fast.
			return runlog.Record{}, err
		}
		record.Status = runlog.StatusFailed
		record.Duration = o.now().Sub(startedAt)
		record.ErrorDetail = err.Error()
		o.log.Append(record)
		logger.Error(ctx, "Executor setup failed", "report", report.ID, "err", err)
		return record, nil
	}

	var stdout, stderr bytes.Buffer
	exec.SetStdout(&stdout)
	exec.SetStderr(&stderr)

	logger.Info(ctx, "Executing report",
		"report", report.ID,
		"name", report.Name,
		"executor", report.ExecutorType,
		"params", fmt.Sprintf("%v", params),
	)

	o.setRunning(exec)
	runErr := exec.Run(ctx)
	o.setRunning(nil)

	record.Duration = o.now().Sub(startedAt)

	switch {
	case req.Token.IsCancelled():
		// Cancellation was requested mid-flight; late output may be
		// inconsistent even if the executor reported success.
		record.Status = runlog.StatusCancelled
		logger.Info(ctx, "Execution cancelled", "report", report.ID, "duration", record.Duration)
	case runErr != nil:
		record.Status = runlog.StatusFailed
		record.ErrorDetail = errorDetail(runErr, stdout.String(), stderr.String())
		logger.Error(ctx, "Execution failed", "report", report.ID, "duration", record.Duration, "err", runErr)
	default:
		record.Status = runlog.StatusSuccess
		record.OutputPath = outputTarget
		logger.Info(ctx, "Execution succeeded", "report", report.ID, "duration", record.Duration, "output", outputTarget)
	}

	o.log.Append(record)
	return record, nil
}

// ExecuteBatch executes the requested reports in dependency order,
// strictly sequentially. Per-report failures are recorded, not
// propagated; only configuration errors abort the batch.
func (o *Orchestrator) ExecuteBatch(ctx context.Context, ids []string, shared map[string]string, opts BatchOptions) (map[string]runlog.Record, error) {
	order, err := resolver.Resolve(ctx, o.reg, ids)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Batch execution plan", "count", len(order), "order", order)

	results := make(map[string]runlog.Record, len(order))
	for _, id := range order {
		record, err := o.ExecuteReport(ctx, Request{
			ReportID:           id,
			OverrideParameters: shared,
			Token:              opts.Token,
			Progress:           opts.Progress,
		})
		if err != nil {
			if opts.StopOnError {
				return results, err
			}
			logger.Error(ctx, "Batch error, continuing", "report", id, "err", err)
			continue
		}
		results[id] = record

		if opts.StopOnError && record.Status != runlog.StatusSuccess {
			logger.Warn(ctx, "Stopping batch execution", "report", id, "status", record.Status)
			break
		}
	}
	return results, nil
}

func (o *Orchestrator) defaultOutputTarget(report registry.Report, startedAt time.Time) string {
	name := fmt.Sprintf("%s_%s", report.ID, startedAt.Format("150405"))
	if report.ExecutorType == registry.ExecutorTypeJobScript {
		name += ".ipynb"
	}
	return filepath.Join(o.cfg.OutputBaseDir, "executed", startedAt.Format("20060102"), name)
}

func (o *Orchestrator) writeRunConfig(ctx context.Context, params map[string]string) error {
	cfg := RunConfig{
		Year:           params["year"],
		Month:          params["month"],
		DataPath:       params["data_path"],
		OutputBasePath: o.cfg.OutputBaseDir,
	}
	if cfg.DataPath == "" {
		cfg.DataPath = o.cfg.DataDir
	}
	logger.Debug(ctx, "Writing run config", "path", o.cfg.RunConfigPath)
	return WriteRunConfig(o.cfg.RunConfigPath, cfg)
}

func errorDetail(err error, stdout, stderr string) string {
	detail := err.Error()
	if out := stringutil.LastLines(stdout, errorDetailLines); out != "" {
		detail += "\nstdout:\n" + out
	}
	if out := stringutil.LastLines(stderr, errorDetailLines); out != "" {
		detail += "\nstderr:\n" + out
	}
	return detail
}
