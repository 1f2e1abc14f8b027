// Package guards gates navigation: the auth guard by token state, the role
// guard by the stored role against the route's required role. Screens run
// only after both allow.
package guards

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/voyago-app/voyago-cli/auth"
	"github.com/voyago-app/voyago-cli/session"
	"github.com/voyago-app/voyago-cli/token"
)

// Route carries the navigation metadata a guard evaluates.
type Route struct {
	Path string
	// Role required to enter the route; empty means any authenticated user.
	Role session.Role
}

// Decision is a guard's verdict. RedirectTo is set only on denial.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(redirectTo string) Decision {
	return Decision{RedirectTo: redirectTo}
}

// Refresher is the slice of the auth service the auth guard needs.
type Refresher interface {
	Refresh(ctx context.Context) (*auth.TokenPair, error)
	Logout(ctx context.Context)
}

// AuthGuard admits navigation when a usable token exists, renewing it when
// possible. Every dead end forces logout, so no partial session state is
// left behind.
type AuthGuard struct {
	store session.Store
	auth  Refresher
	log   zerolog.Logger
}

func NewAuthGuard(store session.Store, refresher Refresher, log zerolog.Logger) *AuthGuard {
	return &AuthGuard{store: store, auth: refresher, log: log}
}

func (g *AuthGuard) CanActivate(ctx context.Context) Decision {
	access := g.store.AccessToken()
	refresh := g.store.RefreshToken()

	// Degraded state: renewal is still possible without an access token.
	if access == "" && refresh != "" {
		g.log.Debug().Msg("no access token, attempting refresh")
		return g.refreshOrDeny(ctx)
	}

	if access != "" {
		if !token.IsExpired(access, token.DefaultSkew) {
			return allow()
		}
		if refresh != "" {
			g.log.Debug().Msg("access token expired, attempting refresh")
			return g.refreshOrDeny(ctx)
		}
	}

	g.auth.Logout(ctx)
	return deny(auth.LoginRoute)
}

func (g *AuthGuard) refreshOrDeny(ctx context.Context) Decision {
	pair, err := g.auth.Refresh(ctx)
	if err != nil || pair.AccessToken == "" {
		g.log.Debug().Err(err).Msg("refresh failed, denying navigation")
		g.auth.Logout(ctx)
		return deny(auth.LoginRoute)
	}
	return allow()
}

// RoleLanding resolves the landing route a denied user is redirected to.
type RoleLanding func(role session.Role) string

// RoleGuard matches the stored role against the route's requirement. Admins
// bypass all role checks.
type RoleGuard struct {
	store   session.Store
	landing RoleLanding
}

func NewRoleGuard(store session.Store, landing RoleLanding) *RoleGuard {
	if landing == nil {
		landing = func(session.Role) string { return "/client" }
	}
	return &RoleGuard{store: store, landing: landing}
}

func (g *RoleGuard) CanActivate(route Route) Decision {
	role := g.store.Role()
	if role == "" {
		return deny(auth.LoginRoute)
	}
	if role == session.RoleAdmin {
		return allow()
	}
	if route.Role != "" && role != route.Role {
		return deny(g.landing(role))
	}
	return allow()
}
