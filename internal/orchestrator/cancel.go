package orchestrator

import "sync/atomic"

// CancelToken is the shared flag used to request early termination of
// an in-flight execution. It has a single writer (the caller) and is
// polled by the orchestrator at well-defined checkpoints. Cancellation
// is cooperative: a running job is not forcibly killed by the token,
// the orchestrator only refuses to start work and reclassifies a stale
// result as cancelled.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken creates a token. Exactly one token should be live per
// in-flight execution.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
}

// IsCancelled reports whether cancellation has been requested. A nil
// token never cancels.
func (t *CancelToken) IsCancelled() bool {
	return t != nil && t.cancelled.Load()
}
