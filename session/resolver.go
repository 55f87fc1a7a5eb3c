package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-account-client/api"
	"github.com/jrsteele09/go-account-client/credential"
)

// IdentityClient is the remote identity check, implemented by api.Client.
type IdentityClient interface {
	UserDetails(ctx context.Context, accessToken string) (*api.UserDetailsResponse, error)
}

// Resolver derives the session status from the stored credential. It
// subscribes to the credential store and re-resolves on every change:
// no stored credential resolves to anonymous without a network call,
// otherwise one identity fetch decides between authenticated and
// anonymous. Every fetch failure degrades to anonymous; expired tokens
// and unreachable servers are deliberately not distinguished.
//
// The resolver never writes the credential store.
type Resolver struct {
	client IdentityClient
	store  credential.Store
	log    zerolog.Logger

	mu            sync.Mutex
	current       Session
	generation    int    // bumped per resolution cycle; stale results are discarded
	inFlightToken string // access token of the in-flight fetch, "" when none
	subs          map[int]func(Session)
	nextSub       int
	unsubscribe   func()
}

// ResolverOption defines a function type to modify the Resolver instance.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used for resolution tracing.
func WithResolverLogger(log zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a resolver bound to store and starts the first
// resolution cycle. Close releases the store subscription.
func NewResolver(client IdentityClient, store credential.Store, options ...ResolverOption) (*Resolver, error) {
	if client == nil {
		return nil, errors.New("[NewResolver] identity client is required")
	}
	if store == nil {
		return nil, errors.New("[NewResolver] credential store is required")
	}

	r := &Resolver{
		client:  client,
		store:   store,
		log:     zerolog.Nop(),
		current: Session{Status: StatusPending},
		subs:    make(map[int]func(Session)),
	}

	for _, opt := range options {
		opt(r)
	}

	r.unsubscribe = store.Subscribe(func(cred credential.Credential) {
		r.resolve(cred, false)
	})

	cred, _ := store.Get()
	r.resolve(cred, false)

	return r, nil
}

// Close releases the credential store subscription.
func (r *Resolver) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// Current returns the last published session.
func (r *Resolver) Current() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers fn for session updates and returns an unsubscribe
// function. fn is called immediately with the current session.
func (r *Resolver) Subscribe(fn func(Session)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	current := r.current
	r.mu.Unlock()

	fn(current)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Invalidate forces a fresh resolution cycle for the current credential.
// Successful profile and email mutations call this instead of patching
// the profile locally, keeping the resolver the single source of truth.
func (r *Resolver) Invalidate() {
	cred, _ := r.store.Get()
	r.resolve(cred, true)
}

// resolve starts a resolution cycle for cred. Duplicate requests for the
// credential value already in flight are suppressed unless force is set.
// If the credential changes before a fetch completes, the stale result is
// discarded: last writer wins on credential identity, not arrival order.
func (r *Resolver) resolve(cred credential.Credential, force bool) {
	if cred.IsZero() {
		r.mu.Lock()
		r.generation++
		r.inFlightToken = ""
		r.mu.Unlock()
		r.publish(Session{Status: StatusAnonymous})
		return
	}

	r.mu.Lock()
	if !force && r.inFlightToken == cred.AccessToken {
		r.mu.Unlock()
		return
	}
	r.generation++
	generation := r.generation
	r.inFlightToken = cred.AccessToken
	r.mu.Unlock()

	r.publish(Session{Status: StatusPending})

	go func() {
		resp, err := r.client.UserDetails(context.Background(), cred.AccessToken)

		r.mu.Lock()
		if r.generation != generation {
			r.mu.Unlock()
			r.log.Debug().Msg("session resolution superseded, discarding result")
			return
		}
		r.inFlightToken = ""
		r.mu.Unlock()

		if err != nil {
			r.log.Debug().Err(err).Msg("identity fetch failed, resolving anonymous")
			r.publish(Session{Status: StatusAnonymous})
			return
		}
		r.publish(Session{
			Status: StatusAuthenticated,
			Profile: Profile{
				Name:  resp.Data.Name,
				Email: resp.Data.Email,
				Image: resp.Data.Image,
			},
		})
	}()
}

func (r *Resolver) publish(s Session) {
	r.mu.Lock()
	r.current = s
	fns := make([]func(Session), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
