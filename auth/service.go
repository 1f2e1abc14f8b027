// Package auth orchestrates the session lifecycle against the Voyago
// authentication endpoints: login, registration, logout, and proactive and
// reactive token renewal with single-flight coordination.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
	"github.com/voyago-app/voyago-cli/session"
	"github.com/voyago-app/voyago-cli/token"
)

// LoginRoute is where forced logouts navigate to.
const LoginRoute = "/login"

// Navigator is invoked when a session-ending failure forces a redirect.
type Navigator func(route string)

// Service owns the session lifecycle. All network operations take a context
// and suspend until the server answers; none of them block other goroutines.
type Service struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	navigate   Navigator
	log        zerolog.Logger

	// refreshGroup collapses concurrent renewal attempts into one network
	// call; every caller waiting on the flight receives the same token.
	refreshGroup singleflight.Group
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithHTTPClient sets the client used for the auth endpoints themselves.
// It must not route through the authenticated transport, or a failing
// refresh would recurse into itself.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithNavigator sets the forced-redirect callback.
func WithNavigator(nav Navigator) ServiceOption {
	return func(s *Service) {
		s.navigate = nav
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService initializes a Service with required dependencies. Optional
// configuration can be provided via options.
func NewService(baseURL string, store session.Store, options ...ServiceOption) (*Service, error) {
	if baseURL == "" {
		return nil, errors.New("[NewService] baseURL is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}

	service := &Service{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		navigate:   func(string) {},
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Login posts credentials and stores whatever the response carries: the
// token pair when an access token is present, the session summary when the
// full profile is present. Credential errors are not transient, so they
// propagate untouched with no retry.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.postJSON(ctx, LoginPath, req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Login] postJSON")
	}
	s.storeAuthResponse(&resp)
	return &resp, nil
}

// Register creates an account; same storage side effects as Login.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.postJSON(ctx, RegisterPath, req, &resp); err != nil {
		return nil, errors.Wrap(err, "[Register] postJSON")
	}
	s.storeAuthResponse(&resp)
	return &resp, nil
}

func (s *Service) storeAuthResponse(resp *AuthResponse) {
	if resp.AccessToken != "" {
		if err := s.store.SetTokens(resp.AccessToken, resp.RefreshToken); err != nil {
			s.log.Err(err).Msg("failed to store tokens")
		}
	}
	if resp.Role != "" && resp.UserID != 0 && resp.FullName != "" && resp.Email != "" {
		err := s.store.SetSession(resp.Role, session.UserSummary{
			UserID:   resp.UserID,
			FullName: resp.FullName,
			Email:    resp.Email,
		})
		if err != nil {
			s.log.Err(err).Msg("failed to store session summary")
		}
	}
}

// Logout notifies the server best-effort when a refresh token exists, then
// unconditionally clears the local session and navigates to the login
// route. Calling it twice is harmless.
func (s *Service) Logout(ctx context.Context) {
	if refreshToken := s.store.RefreshToken(); refreshToken != "" {
		if err := s.postJSON(ctx, LogoutPath, refreshTokenRequest{RefreshToken: refreshToken}, nil); err != nil {
			s.log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}
	if err := s.store.Clear(); err != nil {
		s.log.Err(err).Msg("failed to clear session store")
	}
	s.navigate(LoginRoute)
}

// IsAuthenticated reports whether an access token is present. It does not
// check expiry; the guard owns that decision.
func (s *Service) IsAuthenticated() bool {
	return s.store.AccessToken() != ""
}

func (s *Service) AccessToken() string {
	return s.store.AccessToken()
}

func (s *Service) RefreshToken() string {
	return s.store.RefreshToken()
}

// Refresh exchanges the stored refresh token for a new pair and stores it.
// It fails before any network call when no refresh token exists. Single
// flight is the caller's concern; use RefreshShared to join an in-flight
// renewal.
func (s *Service) Refresh(ctx context.Context) (*TokenPair, error) {
	refreshToken := s.store.RefreshToken()
	if refreshToken == "" {
		return nil, clierrors.ErrNoRefreshToken
	}

	var pair TokenPair
	if err := s.postJSON(ctx, RefreshPath, refreshTokenRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return nil, errors.Wrap(err, "[Refresh] postJSON")
	}

	if err := s.store.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "[Refresh] SetTokens")
	}
	s.log.Debug().Msg("token pair refreshed")
	return &pair, nil
}

// RefreshShared runs Refresh through the single-flight group: no matter how
// many goroutines call it concurrently, at most one refresh request is on
// the wire, and every caller receives the same renewed access token or the
// same error. The flight runs on the first caller's context.
func (s *Service) RefreshShared(ctx context.Context) (string, error) {
	v, err, _ := s.refreshGroup.Do("refresh", func() (any, error) {
		pair, err := s.Refresh(ctx)
		if err != nil {
			return nil, err
		}
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// RefreshIfNeeded is the proactive-renewal path, meant to be called
// opportunistically before issuing requests. It returns ErrNotLoggedIn when
// there is no access token at all, the current token when it is not close
// to expiry (no network call), and otherwise renews through the shared
// flight. A failed renewal forces logout and returns the error.
func (s *Service) RefreshIfNeeded(ctx context.Context) (string, error) {
	current := s.store.AccessToken()
	if current == "" {
		return "", clierrors.ErrNotLoggedIn
	}

	if !token.IsExpired(current, token.DefaultSkew) {
		return current, nil
	}

	s.log.Debug().Msg("access token expiring soon, refreshing proactively")
	accessToken, err := s.RefreshShared(ctx)
	if err != nil {
		s.Logout(ctx)
		return "", errors.Wrap(err, "[RefreshIfNeeded] refresh failed")
	}
	return accessToken, nil
}

// ForgotPassword requests reset instructions for the account's email.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := s.postJSON(ctx, ForgotPasswordPath, forgotPasswordRequest{Email: email}, &resp); err != nil {
		return "", errors.Wrap(err, "[ForgotPassword] postJSON")
	}
	return resp.Message, nil
}

// ResetPassword exchanges a reset token for a new password.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	var resp messageResponse
	if err := s.postJSON(ctx, ResetPasswordPath, resetPasswordRequest{Token: resetToken, NewPassword: newPassword}, &resp); err != nil {
		return "", errors.Wrap(err, "[ResetPassword] postJSON")
	}
	return resp.Message, nil
}

// IsRefreshURL reports whether u targets the refresh endpoint. The
// transport uses it to avoid decorating the refresh call with a stale
// bearer token or recursing into refresh-on-refresh-failure.
func IsRefreshURL(u *url.URL) bool {
	return strings.Contains(u.Path, "/auth/refresh")
}

func (s *Service) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "httpClient.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &clierrors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
