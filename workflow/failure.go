package workflow

import (
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-account-client/api"
)

// GenericErrorMessage is shown when the failure carries no server message.
const GenericErrorMessage = "Something went wrong!"

// FailureKind tags where a failed submission came from.
type FailureKind int

const (
	// KindAPI - the server answered with a structured error body.
	KindAPI FailureKind = iota
	// KindTransport - network failure, timeout, or malformed response.
	KindTransport
	// KindPrecondition - a required local credential was missing; no
	// network call was made.
	KindPrecondition
)

// Failure is the terminal error state of a workflow run. Message is
// always suitable for direct display.
type Failure struct {
	Kind    FailureKind
	Message string
}

// PreconditionError is raised before a call that requires a stored
// credential when none is available. It travels through the same Failed
// channel as network errors so callers have one handling path.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Classify maps an error from a workflow call to its user-facing Failure.
func Classify(err error) Failure {
	var pre *PreconditionError
	if errors.As(err, &pre) {
		return Failure{Kind: KindPrecondition, Message: pre.Message}
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Failure{Kind: KindAPI, Message: apiErr.Message}
	}

	return Failure{Kind: KindTransport, Message: GenericErrorMessage}
}
