package session

// Status is the tri-state authorization status derived from the stored
// credential and the remote identity check. Exactly one variant holds;
// transitions flow Pending -> resolved, and only a fresh resolution cycle
// (credential change or invalidation) re-enters Pending.
type Status int

const (
	// StatusPending - a resolution is in flight; no redirect decision may
	// be made and callers should render a neutral loading state.
	StatusPending Status = iota
	// StatusAuthenticated - the identity check accepted the credential.
	StatusAuthenticated
	// StatusAnonymous - no credential is stored, or the identity check
	// failed for any reason.
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Profile is the resolved account identity. It is owned by the resolver:
// profile mutations invalidate and refetch rather than patching it.
type Profile struct {
	Name  string
	Email string
	Image string
}

// Session is the resolver's published output.
type Session struct {
	Status  Status
	Profile Profile // zero unless Status is StatusAuthenticated
}
