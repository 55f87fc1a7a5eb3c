package credential

import (
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned when a caller requires a stored credential
// and the store holds none.
var ErrNoCredential = errors.New("no credential stored")

// Store is the client-local persistence for the session credential. It is
// the only shared mutable state in the client: login writes it, logout and
// email change clear it, everything else reads it at call time.
//
// Subscribers are notified after every successful Set or Clear. Callers
// must not cache the credential beyond a single operation; re-read the
// store instead.
type Store interface {
	// Get returns the stored credential. ok is false when the store is
	// empty or holds an incomplete pair.
	Get() (cred Credential, ok bool)
	Set(cred Credential) error
	Clear() error
	// Subscribe registers fn for change notifications and returns an
	// unsubscribe function. fn is called with the new value (zero on
	// Clear).
	Subscribe(fn func(Credential)) (unsubscribe func())
}

// TokenSource adapts a Store to oauth2.TokenSource. Token re-reads the
// store on every call, so a token is never captured beyond one request.
func TokenSource(s Store) oauth2.TokenSource {
	return storeTokenSource{s: s}
}

type storeTokenSource struct {
	s Store
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	cred, ok := ts.s.Get()
	if !ok {
		return nil, ErrNoCredential
	}
	return cred.OAuthToken(), nil
}

// notifier implements the subscription half of Store. Embedded by the
// concrete stores.
type notifier struct {
	mu      sync.Mutex
	subs    map[int]func(Credential)
	nextSub int
}

func (n *notifier) Subscribe(fn func(Credential)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func(Credential))
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(cred Credential) {
	n.mu.Lock()
	fns := make([]func(Credential), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(cred)
	}
}
