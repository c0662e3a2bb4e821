package executor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
)

// cmdExecutor wraps one child process. It is the common base for both
// executor implementations: the only difference between them is how the
// command line is built.
type cmdExecutor struct {
	cmd      *exec.Cmd
	spec     Spec
	lock     sync.Mutex
	started  bool
	finished bool
}

func newCmdExecutor(cmd *exec.Cmd, spec Spec) *cmdExecutor {
	// The process gets its own group so Kill can signal the whole tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	cmd.Dir = spec.WorkspaceRoot
	cmd.Env = os.Environ()
	return &cmdExecutor{cmd: cmd, spec: spec}
}

func (e *cmdExecutor) Run(_ context.Context) error {
	e.spec.reportProgress(0, progressTotal, "launching")

	e.lock.Lock()
	err := e.cmd.Start()
	e.started = err == nil
	e.lock.Unlock()
	if err != nil {
		return err
	}

	e.spec.reportProgress(1, progressTotal, "running")
	err = e.cmd.Wait()

	e.lock.Lock()
	e.finished = true
	e.lock.Unlock()

	e.spec.reportProgress(progressTotal, progressTotal, "finished")
	return err
}

// progressTotal is the number of checkpoints reported per run. The
// underlying job is opaque, so progress is coarse by design.
const progressTotal = 2

func (e *cmdExecutor) SetStdout(out io.Writer) {
	e.cmd.Stdout = out
}

func (e *cmdExecutor) SetStderr(out io.Writer) {
	e.cmd.Stderr = out
}

func (e *cmdExecutor) Kill(sig os.Signal) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	if !e.started || e.finished || e.cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-e.cmd.Process.Pid, sig.(syscall.Signal))
}
