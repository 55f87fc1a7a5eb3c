// Package workflow implements the submission lifecycle every user action
// goes through: a single asynchronous call wrapped in
// Idle/Pending/Succeeded/Failed state with success and error
// continuations. One runner belongs to one form; state is never shared
// across forms.
package workflow

import (
	"context"
	"sync"
)

// State is the lifecycle position of a runner.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// CaptchaResetter clears a single-use challenge token so the user can
// retry after a completed attempt.
type CaptchaResetter interface {
	Reset()
}

// Hooks are the caller-supplied continuations for one runner. Any field
// may be nil.
type Hooks[Out any] struct {
	OnSuccess func(Out)
	OnError   func(Failure)
	// Captcha, when set, is reset exactly once per completed attempt,
	// before the continuation fires.
	Captcha CaptchaResetter
}

// Runner drives one form's submissions. A new submission overwrites the
// previous terminal state; while one is pending, further Run calls are
// ignored.
type Runner[In, Out any] struct {
	call  func(context.Context, In) (Out, error)
	hooks Hooks[Out]

	mu      sync.Mutex
	state   State
	output  Out
	failure *Failure
}

// New creates a runner around call.
func New[In, Out any](call func(context.Context, In) (Out, error), hooks Hooks[Out]) *Runner[In, Out] {
	return &Runner[In, Out]{call: call, hooks: hooks}
}

// Run submits in. It returns false, without invoking the call or any
// continuation, when a previous submission is still pending. Otherwise it
// blocks until the call resolves and the matching continuation has run.
// Failed calls are not retried; resubmitting is the user's decision.
func (r *Runner[In, Out]) Run(ctx context.Context, in In) bool {
	r.mu.Lock()
	if r.state == StatePending {
		r.mu.Unlock()
		return false
	}
	r.state = StatePending
	r.failure = nil
	var zero Out
	r.output = zero
	r.mu.Unlock()

	out, err := r.call(ctx, in)
	if err != nil {
		failure := Classify(err)
		r.mu.Lock()
		r.state = StateFailed
		r.failure = &failure
		r.mu.Unlock()

		if r.hooks.Captcha != nil {
			r.hooks.Captcha.Reset()
		}
		if r.hooks.OnError != nil {
			r.hooks.OnError(failure)
		}
		return true
	}

	r.mu.Lock()
	r.state = StateSucceeded
	r.output = out
	r.mu.Unlock()

	// The challenge token is single-use, so it is cleared after a
	// successful attempt as well.
	if r.hooks.Captcha != nil {
		r.hooks.Captcha.Reset()
	}
	if r.hooks.OnSuccess != nil {
		r.hooks.OnSuccess(out)
	}
	return true
}

// State returns the current lifecycle state.
func (r *Runner[In, Out]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Output returns the result of the last successful run.
func (r *Runner[In, Out]) Output() (Out, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateSucceeded {
		var zero Out
		return zero, false
	}
	return r.output, true
}

// Failure returns the failure of the last failed run.
func (r *Runner[In, Out]) Failure() (Failure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateFailed || r.failure == nil {
		return Failure{}, false
	}
	return *r.failure, true
}

// Reset returns the runner to Idle, discarding any terminal state. A
// pending submission is unaffected.
func (r *Runner[In, Out]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePending {
		return
	}
	r.state = StateIdle
	r.failure = nil
	var zero Out
	r.output = zero
}
