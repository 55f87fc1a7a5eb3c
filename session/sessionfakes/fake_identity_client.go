package sessionfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/session"
)

var _ session.IdentityClient = (*FakeIdentityClient)(nil)

// FakeIdentityClient is a hand-rolled test double for the identity
// endpoint. UserDetailsFn supplies the behaviour; call counts and seen
// tokens are recorded for assertions.
type FakeIdentityClient struct {
	UserDetailsFn func(ctx context.Context, accessToken string) (*api.UserDetailsResponse, error)

	lock   sync.Mutex
	calls  int
	tokens []string
}

func NewFakeIdentityClient() *FakeIdentityClient {
	return &FakeIdentityClient{}
}

func (f *FakeIdentityClient) UserDetails(ctx context.Context, accessToken string) (*api.UserDetailsResponse, error) {
	f.lock.Lock()
	f.calls++
	f.tokens = append(f.tokens, accessToken)
	fn := f.UserDetailsFn
	f.lock.Unlock()

	if fn == nil {
		return &api.UserDetailsResponse{Message: "OK"}, nil
	}
	return fn(ctx, accessToken)
}

// Calls returns how many times UserDetails was invoked.
func (f *FakeIdentityClient) Calls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls
}

// Tokens returns the bearer tokens seen, in call order.
func (f *FakeIdentityClient) Tokens() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.tokens...)
}
