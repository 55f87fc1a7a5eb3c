package account

import (
	"context"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/workflow"
)

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

type ChangeEmailInput struct {
	Password string
	NewEmail string
}

// ChangePassword builds the password-change workflow. The session stays
// valid afterwards; no side effects beyond the call itself.
func (s *Service) ChangePassword(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[ChangePasswordInput, *api.MessageResponse] {
	call := func(ctx context.Context, in ChangePasswordInput) (*api.MessageResponse, error) {
		token, err := s.accessToken()
		if err != nil {
			return nil, err
		}
		return s.api.ChangePassword(ctx, token, in.CurrentPassword, in.NewPassword)
	}
	return workflow.New(call, hooks)
}

// ChangeEmail builds the email-change workflow. The new address must be
// verified again, so success clears the stored credential, forcing a
// logout.
func (s *Service) ChangeEmail(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[ChangeEmailInput, *api.MessageResponse] {
	call := func(ctx context.Context, in ChangeEmailInput) (*api.MessageResponse, error) {
		token, err := s.accessToken()
		if err != nil {
			return nil, err
		}
		return s.api.ChangeEmail(ctx, token, in.Password, in.NewEmail)
	}

	userOnSuccess := hooks.OnSuccess
	hooks.OnSuccess = func(resp *api.MessageResponse) {
		if err := s.store.Clear(); err != nil {
			s.log.Error().Err(err).Msg("clearing credential after email change failed")
		}
		if userOnSuccess != nil {
			userOnSuccess(resp)
		}
	}

	return workflow.New(call, hooks)
}
