package routes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-account-client/routes"
	"github.com/jrsteele09/go-account-client/session"
)

func TestAnonymousRedirectedFromProtectedPaths(t *testing.T) {
	paths := []string{
		routes.PathDashboard,
		routes.PathDashboardProfile,
		routes.PathDashboardSecurity,
		"/dashboard/attendance",
	}

	for _, path := range paths {
		target, ok := routes.Decide(path, session.StatusAnonymous)
		require.True(t, ok, path)
		require.Equal(t, routes.PathLogin, target, path)
	}
}

func TestAuthenticatedRedirectedFromPublicOnlyPaths(t *testing.T) {
	paths := []string{
		routes.PathLogin,
		routes.PathSignup,
		routes.PathForgotPassword,
		routes.PathResendVerification,
	}

	for _, path := range paths {
		target, ok := routes.Decide(path, session.StatusAuthenticated)
		require.True(t, ok, path)
		require.Equal(t, routes.PathDashboard, target, path)
	}
}

func TestNoRedirectWhilePending(t *testing.T) {
	paths := []string{
		routes.PathHome,
		routes.PathLogin,
		routes.PathSignup,
		routes.PathDashboard,
		routes.PathDashboardSecurity,
	}

	for _, path := range paths {
		_, ok := routes.Decide(path, session.StatusPending)
		require.False(t, ok, path)
	}
}

func TestNoRedirectOtherwise(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status session.Status
	}{
		{name: "anonymous on login", path: routes.PathLogin, status: session.StatusAnonymous},
		{name: "anonymous on home", path: routes.PathHome, status: session.StatusAnonymous},
		{name: "authenticated on dashboard", path: routes.PathDashboard, status: session.StatusAuthenticated},
		{name: "authenticated on home", path: routes.PathHome, status: session.StatusAuthenticated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := routes.Decide(tc.path, tc.status)
			require.False(t, ok)
		})
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	first, ok1 := routes.Decide(routes.PathDashboard, session.StatusAnonymous)
	second, ok2 := routes.Decide(routes.PathDashboard, session.StatusAnonymous)
	require.Equal(t, ok1, ok2)
	require.Equal(t, first, second)
}

func TestProtected(t *testing.T) {
	require.True(t, routes.Protected(routes.PathDashboard))
	require.True(t, routes.Protected(routes.PathDashboardProfile))
	require.False(t, routes.Protected(routes.PathLogin))
	require.False(t, routes.Protected(routes.PathHome))
}
