// Package transport provides the authenticated http.RoundTripper: it
// attaches the bearer token to outgoing requests and drives the
// refresh-then-retry protocol on authorization failures.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/voyago-app/voyago-cli/auth"
	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
)

// SessionRefresher is the slice of the auth service the transport needs.
type SessionRefresher interface {
	AccessToken() string
	RefreshToken() string
	RefreshShared(ctx context.Context) (string, error)
	Logout(ctx context.Context)
}

// AuthTransport decorates a base RoundTripper with bearer credentials and a
// single retry after a successful token refresh. Concurrent authorization
// failures converge on one refresh call through the session's shared
// flight; their retries resume once it resolves, in scheduler order.
type AuthTransport struct {
	session SessionRefresher
	base    http.RoundTripper
	log     zerolog.Logger
}

var _ http.RoundTripper = (*AuthTransport)(nil)

// TransportOption defines a function type to modify the AuthTransport.
type TransportOption func(*AuthTransport)

// WithBase sets the underlying RoundTripper (defaults to
// http.DefaultTransport).
func WithBase(base http.RoundTripper) TransportOption {
	return func(t *AuthTransport) {
		t.base = base
	}
}

// WithLogger sets the transport logger.
func WithLogger(log zerolog.Logger) TransportOption {
	return func(t *AuthTransport) {
		t.log = log
	}
}

// New creates an AuthTransport over the given session.
func New(session SessionRefresher, options ...TransportOption) (*AuthTransport, error) {
	if session == nil {
		return nil, errors.New("[transport.New] session is required")
	}
	t := &AuthTransport{
		session: session,
		base:    http.DefaultTransport,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t, nil
}

// RoundTrip implements http.RoundTripper. The incoming request is never
// mutated; decorated clones go on the wire.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	isRefreshCall := auth.IsRefreshURL(req.URL)

	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	first := req.Clone(req.Context())
	first.Header.Set("X-Request-ID", requestID)
	accessToken := t.session.AccessToken()
	if accessToken != "" && !isRefreshCall {
		first.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := t.base.RoundTrip(first)
	if err != nil {
		return nil, err
	}

	// Anything but an authorization failure passes through unchanged, and
	// a failing refresh call is never retried.
	if (resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden) || isRefreshCall {
		return resp, nil
	}

	if t.session.RefreshToken() == "" {
		t.log.Debug().Str("url", req.URL.Path).Msg("authorization failure with no refresh token, logging out")
		t.session.Logout(req.Context())
		return resp, nil
	}

	// A request whose body was already consumed and cannot be rebuilt has
	// no recovery path; hand the failure back as-is.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, refreshErr := t.session.RefreshShared(req.Context())
	if refreshErr != nil {
		drainAndClose(resp)
		t.session.Logout(req.Context())
		return nil, errors.Wrap(refreshErr, "[AuthTransport.RoundTrip] refresh failed")
	}
	drainAndClose(resp)

	retry := req.Clone(req.Context())
	retry.Header.Set("X-Request-ID", requestID)
	retry.Header.Set("Authorization", "Bearer "+newToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, errors.Wrap(clierrors.ErrBodyNotReplayable, err.Error())
		}
		retry.Body = body
	}

	t.log.Debug().Str("url", req.URL.Path).Msg("retrying request with refreshed token")
	return t.base.RoundTrip(retry)
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
