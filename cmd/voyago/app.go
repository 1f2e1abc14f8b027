package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/voyago-app/voyago-cli/api"
	"github.com/voyago-app/voyago-cli/auth"
	"github.com/voyago-app/voyago-cli/guards"
	"github.com/voyago-app/voyago-cli/internal/config"
	"github.com/voyago-app/voyago-cli/session"
	"github.com/voyago-app/voyago-cli/session/filestore"
	"github.com/voyago-app/voyago-cli/transport"
)

type app struct {
	cfg       config.Config
	store     session.Store
	auth      *auth.Service
	api       *api.Client
	authGuard *guards.AuthGuard
	roleGuard *guards.RoleGuard
}

func newApp(cfg config.Config) (*app, error) {
	store, err := filestore.New(cfg.GetDataFolder())
	if err != nil {
		return nil, errors.Wrap(err, "filestore.New")
	}

	timeout := time.Duration(cfg.GetHTTPTimeoutSeconds()) * time.Second
	authService, err := auth.NewService(
		cfg.GetAPIBaseURL(),
		store,
		auth.WithHTTPClient(&http.Client{Timeout: timeout}),
		auth.WithNavigator(func(route string) {
			log.Info().Str("route", route).Msg("session ended, continue at the login screen")
		}),
		auth.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "auth.NewService")
	}

	authTransport, err := transport.New(authService, transport.WithLogger(log.Logger))
	if err != nil {
		return nil, errors.Wrap(err, "transport.New")
	}

	apiClient, err := api.New(cfg.GetAPIBaseURL(), &http.Client{Transport: authTransport, Timeout: timeout})
	if err != nil {
		return nil, errors.Wrap(err, "api.New")
	}

	return &app{
		cfg:       cfg,
		store:     store,
		auth:      authService,
		api:       apiClient,
		authGuard: guards.NewAuthGuard(store, authService, log.Logger),
		roleGuard: guards.NewRoleGuard(store, func(role session.Role) string {
			return cfg.GetLandingRoute(string(role))
		}),
	}, nil
}

// Screen routes, mirroring the navigation surface: public auth screens,
// the client home and payment screens, and the admin dashboard.
var (
	routeClient    = guards.Route{Path: "/client", Role: session.RoleClient}
	routeClientPay = guards.Route{Path: "/client/pay", Role: session.RoleClient}
	routeAdmin     = guards.Route{Path: "/admin", Role: session.RoleAdmin}
)

// guardedRun passes the navigation attempt through the auth guard, then the
// role guard, before the screen mounts.
func (a *app) guardedRun(ctx context.Context, route guards.Route, screen func(context.Context) error) error {
	if decision := a.authGuard.CanActivate(ctx); !decision.Allowed {
		return errors.Errorf("not signed in (continue at %s)", decision.RedirectTo)
	}
	if decision := a.roleGuard.CanActivate(route); !decision.Allowed {
		return errors.Errorf("your role cannot open %s (continue at %s)", route.Path, decision.RedirectTo)
	}
	return screen(ctx)
}

func (a *app) dispatch(args []string) error {
	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	// Public screens
	case "login":
		return a.loginScreen(ctx, rest)
	case "register":
		return a.registerScreen(ctx, rest)
	case "forgot-password":
		return a.forgotPasswordScreen(ctx, rest)
	case "reset-password":
		return a.resetPasswordScreen(ctx, rest)
	case "logout":
		a.auth.Logout(ctx)
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return a.whoamiScreen()

	// Client screens
	case "flights":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.clientFlightsScreen(ctx) })
	case "hotels":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.clientHotelsScreen(ctx) })
	case "reservations":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.reservationsScreen(ctx, rest) })
	case "reserve-flight":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.reserveFlightScreen(ctx, rest) })
	case "reserve-hotel":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.reserveHotelScreen(ctx, rest) })
	case "cancel":
		return a.guardedRun(ctx, routeClient, func(ctx context.Context) error { return a.cancelScreen(ctx, rest) })
	case "pay":
		return a.guardedRun(ctx, routeClientPay, func(ctx context.Context) error { return a.payScreen(ctx, rest) })

	// Admin screens
	case "admin":
		if len(rest) == 0 {
			return errors.New("admin requires a sub-command: reservations, flights, hotels, users, stats")
		}
		sub, subArgs := rest[0], rest[1:]
		return a.guardedRun(ctx, routeAdmin, func(ctx context.Context) error {
			return a.adminDispatch(ctx, sub, subArgs)
		})
	}

	return errors.Errorf("unknown command %q (try: voyago help)", cmd)
}

func (a *app) adminDispatch(ctx context.Context, sub string, args []string) error {
	switch sub {
	case "reservations":
		return a.adminReservationsScreen(ctx, args)
	case "flights":
		return a.adminFlightsScreen(ctx, args)
	case "hotels":
		return a.adminHotelsScreen(ctx, args)
	case "users":
		return a.adminUsersScreen(ctx, args)
	case "stats":
		return a.adminStatsScreen(ctx, args)
	}
	return errors.Errorf("unknown admin sub-command %q", sub)
}

func (a *app) whoamiScreen() error {
	user := a.store.User()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.FullName, user.Email, a.store.Role())
	return nil
}
