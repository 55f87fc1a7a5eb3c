package account

import (
	"context"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/workflow"
)

type UpdateProfileInput struct {
	Name  string
	Image *api.ImageUpload // nil keeps the current image
}

// UpdateProfile builds the profile-update workflow. Success invalidates
// the session so the resolver refetches the profile; the result is never
// patched locally.
func (s *Service) UpdateProfile(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[UpdateProfileInput, *api.MessageResponse] {
	call := func(ctx context.Context, in UpdateProfileInput) (*api.MessageResponse, error) {
		token, err := s.accessToken()
		if err != nil {
			return nil, err
		}
		return s.api.UpdateProfile(ctx, token, in.Name, in.Image)
	}

	userOnSuccess := hooks.OnSuccess
	hooks.OnSuccess = func(resp *api.MessageResponse) {
		s.sessions.Invalidate()
		if userOnSuccess != nil {
			userOnSuccess(resp)
		}
	}

	return workflow.New(call, hooks)
}

// RemoveProfileImage builds the image-removal workflow. Success
// invalidates the session like UpdateProfile.
func (s *Service) RemoveProfileImage(hooks workflow.Hooks[*api.MessageResponse]) *workflow.Runner[struct{}, *api.MessageResponse] {
	call := func(ctx context.Context, _ struct{}) (*api.MessageResponse, error) {
		token, err := s.accessToken()
		if err != nil {
			return nil, err
		}
		return s.api.RemoveProfileImage(ctx, token)
	}

	userOnSuccess := hooks.OnSuccess
	hooks.OnSuccess = func(resp *api.MessageResponse) {
		s.sessions.Invalidate()
		if userOnSuccess != nil {
			userOnSuccess(resp)
		}
	}

	return workflow.New(call, hooks)
}
