// Package account wires each user action to a workflow runner: the API
// call, the credential side effect, and the session invalidation that
// belongs to it. One runner per form; the page supplies the hooks.
package account

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/credential"
	"github.com/jrsteele09/go-account-client/workflow"
)

// Errors raised before any network call when a required credential is
// missing from the store. They surface through the workflow's Failed
// state like every other error.
var (
	ErrUnauthorized   = &workflow.PreconditionError{Message: "Unauthorized"}
	ErrNoRefreshToken = &workflow.PreconditionError{Message: "No refresh token found"}
)

// API is the slice of the remote client the workflows use.
type API interface {
	Signup(ctx context.Context, req api.SignupRequest) (*api.MessageResponse, error)
	ResendVerification(ctx context.Context, req api.ResendVerificationRequest) (*api.MessageResponse, error)
	ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) (*api.MessageResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) (*api.MessageResponse, error)
	UpdateProfile(ctx context.Context, accessToken, name string, image *api.ImageUpload) (*api.MessageResponse, error)
	RemoveProfileImage(ctx context.Context, accessToken string) (*api.MessageResponse, error)
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) (*api.MessageResponse, error)
	ChangeEmail(ctx context.Context, accessToken, password, newEmail string) (*api.MessageResponse, error)
}

// Invalidator forces a fresh session resolution cycle, implemented by
// session.Resolver.
type Invalidator interface {
	Invalidate()
}

// Service builds workflow runners for every user action.
type Service struct {
	api      API
	store    credential.Store
	source   oauth2.TokenSource
	sessions Invalidator
	log      zerolog.Logger
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithServiceLogger sets the logger for side-effect failures.
func WithServiceLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(apiClient API, store credential.Store, sessions Invalidator, options ...ServiceOption) (*Service, error) {
	if apiClient == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] credential store is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewService] session invalidator is required")
	}

	s := &Service{
		api:      apiClient,
		store:    store,
		source:   credential.TokenSource(store),
		sessions: sessions,
		log:      zerolog.Nop(),
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// accessToken re-reads the store at call time. A missing credential is a
// precondition failure, never a network call.
func (s *Service) accessToken() (string, error) {
	tok, err := s.source.Token()
	if err != nil {
		return "", ErrUnauthorized
	}
	return tok.AccessToken, nil
}
