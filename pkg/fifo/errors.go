package fifo

import (
	"github.com/pkg/errors"
)

// Sentinel errors reported by queue operations. Compare with errors.Is.
var (
	// ErrClosed is returned once the queue has been closed and no element
	// remains to drain. Blocked producers observe it as soon as Close runs.
	ErrClosed = errors.New("fifo: queue is closed")

	// ErrFull is returned by TryPush when the queue is at capacity.
	ErrFull = errors.New("fifo: queue is full")

	// ErrEmpty is returned by TryPop when no element is available.
	ErrEmpty = errors.New("fifo: queue is empty")

	// ErrTimeout is returned by PopTimeout and PopDeadline when the deadline
	// expires before an element becomes available.
	ErrTimeout = errors.New("fifo: pop deadline exceeded")

	// ErrNotFound is returned by Get when no element matches the predicate.
	ErrNotFound = errors.New("fifo: no element matched the predicate")
)
