package apifakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-account-client/account"
	"github.com/jrsteele09/go-account-client/api"
)

var _ account.API = (*FakeAPI)(nil)

// FakeAPI is a hand-rolled test double for the remote API. Each *Fn field
// supplies the behaviour for one endpoint; unset endpoints return an
// empty success. CallCounts records invocations per endpoint name.
type FakeAPI struct {
	SignupFn             func(ctx context.Context, req api.SignupRequest) (*api.MessageResponse, error)
	ResendVerificationFn func(ctx context.Context, req api.ResendVerificationRequest) (*api.MessageResponse, error)
	ForgotPasswordFn     func(ctx context.Context, req api.ForgotPasswordRequest) (*api.MessageResponse, error)
	LoginFn              func(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	LogoutFn             func(ctx context.Context, refreshToken string) (*api.MessageResponse, error)
	UpdateProfileFn      func(ctx context.Context, accessToken, name string, image *api.ImageUpload) (*api.MessageResponse, error)
	RemoveProfileImageFn func(ctx context.Context, accessToken string) (*api.MessageResponse, error)
	ChangePasswordFn     func(ctx context.Context, accessToken, currentPassword, newPassword string) (*api.MessageResponse, error)
	ChangeEmailFn        func(ctx context.Context, accessToken, password, newEmail string) (*api.MessageResponse, error)

	lock  sync.Mutex
	calls map[string]int
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{calls: make(map[string]int)}
}

// Calls returns how many times the named endpoint was invoked.
func (f *FakeAPI) Calls(name string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls[name]
}

func (f *FakeAPI) record(name string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls[name]++
}

func (f *FakeAPI) Signup(ctx context.Context, req api.SignupRequest) (*api.MessageResponse, error) {
	f.record("Signup")
	if f.SignupFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.SignupFn(ctx, req)
}

func (f *FakeAPI) ResendVerification(ctx context.Context, req api.ResendVerificationRequest) (*api.MessageResponse, error) {
	f.record("ResendVerification")
	if f.ResendVerificationFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.ResendVerificationFn(ctx, req)
}

func (f *FakeAPI) ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) (*api.MessageResponse, error) {
	f.record("ForgotPassword")
	if f.ForgotPasswordFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.ForgotPasswordFn(ctx, req)
}

func (f *FakeAPI) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	f.record("Login")
	if f.LoginFn == nil {
		return &api.LoginResponse{Message: "OK"}, nil
	}
	return f.LoginFn(ctx, req)
}

func (f *FakeAPI) Logout(ctx context.Context, refreshToken string) (*api.MessageResponse, error) {
	f.record("Logout")
	if f.LogoutFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.LogoutFn(ctx, refreshToken)
}

func (f *FakeAPI) UpdateProfile(ctx context.Context, accessToken, name string, image *api.ImageUpload) (*api.MessageResponse, error) {
	f.record("UpdateProfile")
	if f.UpdateProfileFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.UpdateProfileFn(ctx, accessToken, name, image)
}

func (f *FakeAPI) RemoveProfileImage(ctx context.Context, accessToken string) (*api.MessageResponse, error) {
	f.record("RemoveProfileImage")
	if f.RemoveProfileImageFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.RemoveProfileImageFn(ctx, accessToken)
}

func (f *FakeAPI) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) (*api.MessageResponse, error) {
	f.record("ChangePassword")
	if f.ChangePasswordFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.ChangePasswordFn(ctx, accessToken, currentPassword, newPassword)
}

func (f *FakeAPI) ChangeEmail(ctx context.Context, accessToken, password, newEmail string) (*api.MessageResponse, error) {
	f.record("ChangeEmail")
	if f.ChangeEmailFn == nil {
		return &api.MessageResponse{Message: "OK"}, nil
	}
	return f.ChangeEmailFn(ctx, accessToken, password, newEmail)
}
