// Package routes holds the application paths and the redirect policy
// mapping (path, session status) to an optional navigation target.
package routes

import (
	"strings"

	"github.com/jrsteele09/go-account-client/session"
)

// Application paths.
const (
	PathHome               = "/"
	PathLogin              = "/login"
	PathSignup             = "/signup"
	PathForgotPassword     = "/forgot-password"
	PathResendVerification = "/resend-verification"
	PathDashboard          = "/dashboard"
	PathDashboardProfile   = "/dashboard/profile"
	PathDashboardSecurity  = "/dashboard/security"
)

// publicOnly are the entry pages an authenticated user is sent away from.
var publicOnly = map[string]bool{
	PathLogin:              true,
	PathSignup:             true,
	PathForgotPassword:     true,
	PathResendVerification: true,
}

// Decide returns the path to navigate to for the given location and
// session status. ok is false when no redirect applies. It is pure and
// idempotent, and it never decides while resolution is pending - the
// caller renders a loading state until the status settles.
func Decide(path string, status session.Status) (target string, ok bool) {
	switch status {
	case session.StatusAnonymous:
		if Protected(path) {
			return PathLogin, true
		}
	case session.StatusAuthenticated:
		if publicOnly[path] {
			return PathDashboard, true
		}
	}
	return "", false
}

// Protected reports whether path requires an authenticated session.
func Protected(path string) bool {
	return strings.HasPrefix(path, PathDashboard)
}
