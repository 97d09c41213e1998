package errmsg

import "errors"

var (
	HandlePinned     = errors.New("handle is pinned")
	HandleReleased   = errors.New("handle already released")
	GuardUnpinned    = errors.New("guard is not pinned")
	CollectorStopped = errors.New("collector stopped")
)

var (
	StackNotEmpty = errors.New("stack not empty")
	SumMismatch   = errors.New("popped sum does not match pushed sum")
)
