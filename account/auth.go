package account

import (
	"context"
	"time"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/credential"
	"github.com/jrsteele09/go-account-client/workflow"
)

type SignupInput struct {
	Name         string
	Email        string
	Password     string
	CaptchaToken string
}

type EmailInput struct {
	Email        string
	CaptchaToken string
}

type LoginInput struct {
	Email        string
	Password     string
	CaptchaToken string
}

// Signup builds the account-registration workflow. No side effects; the
// user must verify the address before logging in.
func (s *Service) Signup(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[SignupInput, *api.MessageResponse] {
	call := func(ctx context.Context, in SignupInput) (*api.MessageResponse, error) {
		return s.api.Signup(ctx, api.SignupRequest{
			Name:         in.Name,
			Email:        in.Email,
			Password:     in.Password,
			CaptchaToken: in.CaptchaToken,
		})
	}
	return workflow.New(call, hooks)
}

// ResendVerification builds the resend-verification-email workflow.
func (s *Service) ResendVerification(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[EmailInput, *api.MessageResponse] {
	call := func(ctx context.Context, in EmailInput) (*api.MessageResponse, error) {
		return s.api.ResendVerification(ctx, api.ResendVerificationRequest{
			Email:        in.Email,
			CaptchaToken: in.CaptchaToken,
		})
	}
	return workflow.New(call, hooks)
}

// ForgotPassword builds the password-recovery workflow.
func (s *Service) ForgotPassword(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[EmailInput, *api.MessageResponse] {
	call := func(ctx context.Context, in EmailInput) (*api.MessageResponse, error) {
		return s.api.ForgotPassword(ctx, api.ForgotPasswordRequest{
			Email:        in.Email,
			CaptchaToken: in.CaptchaToken,
		})
	}
	return workflow.New(call, hooks)
}

// Login builds the login workflow. On success the returned token pair
// replaces the stored credential wholesale, which triggers a session
// re-resolution through the store subscription.
func (s *Service) Login(hooks workflow.Hooks[*api.LoginResponse]) *workflow.Runner[LoginInput, *api.LoginResponse] {
	call := func(ctx context.Context, in LoginInput) (*api.LoginResponse, error) {
		return s.api.Login(ctx, api.LoginRequest{
			Email:        in.Email,
			Password:     in.Password,
			CaptchaToken: in.CaptchaToken,
		})
	}

	userOnSuccess := hooks.OnSuccess
	hooks.OnSuccess = func(resp *api.LoginResponse) {
		now := s.nowTime()
		cred := credential.Credential{
			AccessToken:        resp.AccessToken,
			RefreshToken:       resp.RefreshToken,
			AccessTokenExpiry:  now.Add(time.Duration(resp.AccessTokenExpiresIn) * time.Second),
			RefreshTokenExpiry: now.Add(time.Duration(resp.RefreshTokenExpiresIn) * time.Second),
		}
		if err := s.store.Set(cred); err != nil {
			s.log.Error().Err(err).Msg("persisting credential after login failed")
		}
		if userOnSuccess != nil {
			userOnSuccess(resp)
		}
	}

	return workflow.New(call, hooks)
}

// Logout builds the logout workflow. The refresh token is read from the
// store at call time; when none is stored the workflow fails with
// ErrNoRefreshToken before any network call. Success clears the store.
func (s *Service) Logout(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[struct{}, *api.MessageResponse] {
	call := func(ctx context.Context, _ struct{}) (*api.MessageResponse, error) {
		cred, ok := s.store.Get()
		if !ok || cred.RefreshToken == "" {
			return nil, ErrNoRefreshToken
		}
		return s.api.Logout(ctx, cred.RefreshToken)
	}

	userOnSuccess := hooks.OnSuccess
	hooks.OnSuccess = func(resp *api.MessageResponse) {
		if err := s.store.Clear(); err != nil {
			s.log.Error().Err(err).Msg("clearing credential after logout failed")
		}
		if userOnSuccess != nil {
			userOnSuccess(resp)
		}
	}

	return workflow.New(call, hooks)
}
