package credential

import (
	"time"

	"golang.org/x/oauth2"
)

// Credential is the access/refresh token pair identifying a session.
// It is replaced wholesale on login and cleared on logout; individual
// fields are never patched in place.
type Credential struct {
	AccessToken        string
	RefreshToken       string
	AccessTokenExpiry  time.Time
	RefreshTokenExpiry time.Time
}

// IsZero reports whether the credential is usable. Absence of either
// token is treated as "no credential".
func (c Credential) IsZero() bool {
	return c.AccessToken == "" || c.RefreshToken == ""
}

// OAuthToken converts the credential to an oauth2 token for interop with
// oauth2-aware HTTP clients.
func (c Credential) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       c.AccessTokenExpiry,
	}
}
