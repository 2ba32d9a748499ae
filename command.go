package loom

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// Selector names a command channel. Selectors are opaque symbols resolved
// at call time; collisions are the submitter's problem, so namespace them
// ("myapp.open-thing").
type Selector string

// Command is a deferred message travelling through the post office: same
// thread, next dispatch round, delivered at least once before being
// dropped.
type Command struct {
	Selector Selector
	Payload  any
	// Target addresses one node by identity. Zero targets every node.
	Target WidgetID
}

// Is reports whether the command carries the given selector.
func (c Command) Is(s Selector) bool {
	return c.Selector == s
}

// TimerToken identifies one requested timer.
type TimerToken = uuid.UUID

// TimerRequest is a pending ask for a timer event, recorded for the host.
type TimerRequest struct {
	Token    TimerToken
	Duration time.Duration
}

// CommandQueue is the same-thread post office for commands and timer
// requests. Nodes submit during a dispatch round; the window drains at the
// start of the next round. It is not safe for concurrent use, matching the
// single-threaded dispatch model.
type CommandQueue struct {
	pending []Command
	timers  []TimerRequest
}

// NewCommandQueue returns an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Submit enqueues a command for next-round delivery.
func (q *CommandQueue) Submit(cmd Command) {
	q.pending = append(q.pending, cmd)
}

// Drain removes and returns all pending commands in submission order.
func (q *CommandQueue) Drain() []Command {
	out := q.pending
	q.pending = nil
	return out
}

// HasPending reports whether any command awaits delivery.
func (q *CommandQueue) HasPending() bool {
	return len(q.pending) > 0
}

// RequestTimer records a timer ask and returns its token. The host owns
// actual scheduling; a node that no longer cares simply ignores the fired
// event.
func (q *CommandQueue) RequestTimer(d time.Duration) TimerToken {
	token, err := uuid.NewV4()
	if err != nil {
		logger.Warn("timer token generation failed", "err", err)
	}
	q.timers = append(q.timers, TimerRequest{Token: token, Duration: d})
	return token
}

// DrainTimers removes and returns all pending timer requests.
func (q *CommandQueue) DrainTimers() []TimerRequest {
	out := q.timers
	q.timers = nil
	return out
}
