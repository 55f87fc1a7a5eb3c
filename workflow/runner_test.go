package workflow_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/workflow"
)

type captchaCounter struct {
	resets atomic.Int32
}

func (c *captchaCounter) Reset() {
	c.resets.Add(1)
}

func TestRunSuccess(t *testing.T) {
	captcha := &captchaCounter{}
	var gotOutput string

	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			return in + "-done", nil
		},
		workflow.Hooks[string]{
			OnSuccess: func(out string) { gotOutput = out },
			Captcha:   captcha,
		},
	)

	require.Equal(t, workflow.StateIdle, runner.State())
	require.True(t, runner.Run(context.Background(), "submit"))

	require.Equal(t, workflow.StateSucceeded, runner.State())
	require.Equal(t, "submit-done", gotOutput)

	out, ok := runner.Output()
	require.True(t, ok)
	require.Equal(t, "submit-done", out)
	require.Equal(t, int32(1), captcha.resets.Load())

	_, failed := runner.Failure()
	require.False(t, failed)
}

func TestRunFailureRecognizedAPIError(t *testing.T) {
	captcha := &captchaCounter{}
	var gotFailures []workflow.Failure

	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			return "", &api.Error{StatusCode: 401, Message: "Invalid credentials"}
		},
		workflow.Hooks[string]{
			OnError: func(f workflow.Failure) { gotFailures = append(gotFailures, f) },
			Captcha: captcha,
		},
	)

	require.True(t, runner.Run(context.Background(), "submit"))

	require.Equal(t, workflow.StateFailed, runner.State())
	require.Len(t, gotFailures, 1)
	require.Equal(t, workflow.KindAPI, gotFailures[0].Kind)
	require.Equal(t, "Invalid credentials", gotFailures[0].Message)

	// The challenge token is single-use: exactly one reset per attempt.
	require.Equal(t, int32(1), captcha.resets.Load())
}

func TestRunFailureTransportFallsBackToGenericMessage(t *testing.T) {
	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			return "", &api.TransportError{Err: errors.New("connection refused")}
		},
		workflow.Hooks[string]{},
	)

	require.True(t, runner.Run(context.Background(), "submit"))

	failure, ok := runner.Failure()
	require.True(t, ok)
	require.Equal(t, workflow.KindTransport, failure.Kind)
	require.Equal(t, workflow.GenericErrorMessage, failure.Message)
}

func TestRunFailurePrecondition(t *testing.T) {
	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			return "", &workflow.PreconditionError{Message: "No refresh token found"}
		},
		workflow.Hooks[string]{},
	)

	require.True(t, runner.Run(context.Background(), "submit"))

	failure, ok := runner.Failure()
	require.True(t, ok)
	require.Equal(t, workflow.KindPrecondition, failure.Kind)
	require.Equal(t, "No refresh token found", failure.Message)
}

func TestDoubleSubmitGuard(t *testing.T) {
	release := make(chan struct{})
	var callCount atomic.Int32

	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			callCount.Add(1)
			<-release
			return "ok", nil
		},
		workflow.Hooks[string]{},
	)

	done := make(chan bool, 1)
	go func() {
		done <- runner.Run(context.Background(), "first")
	}()

	require.Eventually(t, func() bool {
		return runner.State() == workflow.StatePending
	}, time.Second, time.Millisecond)

	// A second submission while pending is ignored without invoking the
	// call again.
	require.False(t, runner.Run(context.Background(), "second"))
	require.Equal(t, int32(1), callCount.Load())

	close(release)
	require.True(t, <-done)
	require.Equal(t, workflow.StateSucceeded, runner.State())
	require.Equal(t, int32(1), callCount.Load())
}

func TestRunOverwritesPriorTerminalState(t *testing.T) {
	fail := true
	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			if fail {
				return "", &api.Error{StatusCode: 400, Message: "nope"}
			}
			return "ok", nil
		},
		workflow.Hooks[string]{},
	)

	require.True(t, runner.Run(context.Background(), "submit"))
	require.Equal(t, workflow.StateFailed, runner.State())

	fail = false
	require.True(t, runner.Run(context.Background(), "submit"))
	require.Equal(t, workflow.StateSucceeded, runner.State())

	_, failed := runner.Failure()
	require.False(t, failed)
}

func TestResetReturnsToIdle(t *testing.T) {
	runner := workflow.New(
		func(ctx context.Context, in string) (string, error) {
			return "ok", nil
		},
		workflow.Hooks[string]{},
	)

	require.True(t, runner.Run(context.Background(), "submit"))
	require.Equal(t, workflow.StateSucceeded, runner.State())

	runner.Reset()
	require.Equal(t, workflow.StateIdle, runner.State())
	_, ok := runner.Output()
	require.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    workflow.FailureKind
		wantMessage string
	}{
		{
			name:        "recognized api error",
			err:         &api.Error{StatusCode: 409, Message: "Email already registered"},
			wantKind:    workflow.KindAPI,
			wantMessage: "Email already registered",
		},
		{
			name:        "wrapped api error",
			err:         errors.Wrap(&api.Error{StatusCode: 401, Message: "Invalid credentials"}, "login"),
			wantKind:    workflow.KindAPI,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "transport error",
			err:         &api.TransportError{Err: errors.New("timeout")},
			wantKind:    workflow.KindTransport,
			wantMessage: workflow.GenericErrorMessage,
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantKind:    workflow.KindTransport,
			wantMessage: workflow.GenericErrorMessage,
		},
		{
			name:        "precondition",
			err:         &workflow.PreconditionError{Message: "Unauthorized"},
			wantKind:    workflow.KindPrecondition,
			wantMessage: "Unauthorized",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			failure := workflow.Classify(tc.err)
			require.Equal(t, tc.wantKind, failure.Kind)
			require.Equal(t, tc.wantMessage, failure.Message)
		})
	}
}
