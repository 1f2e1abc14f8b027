package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/voyago-app/voyago-cli/auth"
	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
	"github.com/voyago-app/voyago-cli/session"
	"github.com/voyago-app/voyago-cli/session/storefakes"
)

const (
	testEmail    = "jane@example.com"
	testPassword = "password123"
	testFullName = "Jane Doe"
	testUserID   = int64(7)
)

// testFixture holds the service under test, its fake store, and counters
// for the fake server's endpoints.
type testFixture struct {
	store    *storefakes.FakeStore
	service  *auth.Service
	server   *httptest.Server
	navigate []string

	loginCalls   atomic.Int64
	refreshCalls atomic.Int64
	logoutCalls  atomic.Int64

	// refreshDelay makes the refresh endpoint slow so concurrent callers
	// overlap on one flight.
	refreshDelay time.Duration
	// failRefresh makes the refresh endpoint answer 401.
	failRefresh bool
	// failLogout makes the logout endpoint answer 500.
	failLogout bool
	// loginResponse is returned by the login and register endpoints.
	loginResponse auth.AuthResponse
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		store: storefakes.NewFakeStore(),
		loginResponse: auth.AuthResponse{
			AccessToken:  makeToken(t, time.Now().Add(time.Hour)),
			RefreshToken: "refresh-1",
			UserID:       testUserID,
			FullName:     testFullName,
			Email:        testEmail,
			Role:         session.RoleClient,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(auth.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls.Add(1)
		writeJSON(w, f.loginResponse)
	})
	mux.HandleFunc(auth.RegisterPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, f.loginResponse)
	})
	mux.HandleFunc(auth.RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		n := f.refreshCalls.Add(1)
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if f.failRefresh {
			http.Error(w, "refresh token revoked", http.StatusUnauthorized)
			return
		}
		writeJSON(w, auth.TokenPair{
			AccessToken:  makeToken(t, time.Now().Add(time.Hour)),
			RefreshToken: "refresh-" + strconv.FormatInt(n+1, 10),
		})
	})
	mux.HandleFunc(auth.LogoutPath, func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
		if f.failLogout {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	service, err := auth.NewService(
		f.server.URL,
		f.store,
		auth.WithNavigator(func(route string) { f.navigate = append(f.navigate, route) }),
	)
	require.NoError(t, err)
	f.service = service
	return f
}

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp": float64(exp.Unix()),
		"sub": "7",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return raw
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewServiceValidation(t *testing.T) {
	_, err := auth.NewService("", storefakes.NewFakeStore())
	require.Error(t, err)

	_, err = auth.NewService("http://localhost", nil)
	require.Error(t, err)
}

func TestLoginStoresTokensAndSession(t *testing.T) {
	f := setupTestFixture(t)

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, f.loginResponse.AccessToken, resp.AccessToken)

	require.Equal(t, f.loginResponse.AccessToken, f.store.AccessToken())
	require.Equal(t, "refresh-1", f.store.RefreshToken())
	require.Equal(t, session.RoleClient, f.store.Role())
	user := f.store.User()
	require.NotNil(t, user)
	require.Equal(t, testFullName, user.FullName)
	require.True(t, f.service.IsAuthenticated())
}

func TestLoginWithoutRefreshTokenLeavesSlotAlone(t *testing.T) {
	f := setupTestFixture(t)
	f.loginResponse.RefreshToken = ""

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	require.NotEmpty(t, f.store.AccessToken())
	require.Empty(t, f.store.RefreshToken())
}

func TestLoginWithoutProfileSkipsSessionSummary(t *testing.T) {
	f := setupTestFixture(t)
	f.loginResponse.Role = ""

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	require.NotEmpty(t, f.store.AccessToken())
	require.Empty(t, f.store.Role())
	require.Nil(t, f.store.User())
}

func TestLoginErrorPropagatesAndStoresNothing(t *testing.T) {
	store := storefakes.NewFakeStore()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	service, err := auth.NewService(server.URL, store)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginRequest{Email: testEmail, Password: "wrong"})
	require.Error(t, err)

	var httpErr *clierrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	require.Empty(t, store.AccessToken())
	require.False(t, service.IsAuthenticated())
}

func TestRegisterStoresTokens(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Register(context.Background(), auth.RegisterRequest{
		FullName: testFullName, Email: testEmail, Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, f.store.AccessToken())
	require.Equal(t, session.RoleClient, f.store.Role())
}

func TestLogoutIsUnconditional(t *testing.T) {
	f := setupTestFixture(t)
	f.failLogout = true
	require.NoError(t, f.store.SetTokens("access", "refresh"))

	f.service.Logout(context.Background())

	require.EqualValues(t, 1, f.logoutCalls.Load())
	require.Empty(t, f.store.AccessToken())
	require.Empty(t, f.store.RefreshToken())
	require.Equal(t, []string{auth.LoginRoute}, f.navigate)
}

func TestLogoutWithoutRefreshTokenSkipsServerCall(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens("access", ""))

	f.service.Logout(context.Background())
	f.service.Logout(context.Background())

	require.EqualValues(t, 0, f.logoutCalls.Load())
	require.Empty(t, f.store.AccessToken())
	require.Equal(t, []string{auth.LoginRoute, auth.LoginRoute}, f.navigate)
}

func TestRefreshWithoutTokenFailsLocally(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Refresh(context.Background())
	require.ErrorIs(t, err, clierrors.ErrNoRefreshToken)
	require.EqualValues(t, 0, f.refreshCalls.Load())
}

func TestRefreshStoresNewPair(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens("old-access", "refresh-1"))

	pair, err := f.service.Refresh(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Equal(t, pair.AccessToken, f.store.AccessToken())
	require.Equal(t, pair.RefreshToken, f.store.RefreshToken())
}

func TestRefreshFailurePropagates(t *testing.T) {
	f := setupTestFixture(t)
	f.failRefresh = true
	require.NoError(t, f.store.SetTokens("old-access", "refresh-1"))

	_, err := f.service.Refresh(context.Background())
	require.Error(t, err)
	var httpErr *clierrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
}

func TestRefreshSharedIsSingleFlight(t *testing.T) {
	f := setupTestFixture(t)
	f.refreshDelay = 100 * time.Millisecond
	require.NoError(t, f.store.SetTokens("old-access", "refresh-1"))

	const callers = 8
	tokens := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = f.service.RefreshShared(context.Background())
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, f.refreshCalls.Load(), "concurrent callers must share one refresh call")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, tokens[0], tokens[i], "all callers must receive the same renewed token")
	}
	require.Equal(t, tokens[0], f.store.AccessToken())
}

func TestRefreshIfNeededWhenLoggedOut(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.RefreshIfNeeded(context.Background())
	require.ErrorIs(t, err, clierrors.ErrNotLoggedIn)
	require.EqualValues(t, 0, f.refreshCalls.Load())
}

func TestRefreshIfNeededWithFreshTokenMakesNoCall(t *testing.T) {
	f := setupTestFixture(t)
	fresh := makeToken(t, time.Now().Add(time.Hour))
	require.NoError(t, f.store.SetTokens(fresh, "refresh-1"))

	tok, err := f.service.RefreshIfNeeded(context.Background())
	require.NoError(t, err)
	require.Equal(t, fresh, tok)
	require.EqualValues(t, 0, f.refreshCalls.Load())
}

func TestRefreshIfNeededRenewsExpiringToken(t *testing.T) {
	f := setupTestFixture(t)
	expiring := makeToken(t, time.Now().Add(5*time.Second)) // inside the 30s skew
	require.NoError(t, f.store.SetTokens(expiring, "refresh-1"))

	tok, err := f.service.RefreshIfNeeded(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, expiring, tok)
	require.EqualValues(t, 1, f.refreshCalls.Load())
	require.Equal(t, tok, f.store.AccessToken())
}

func TestRefreshIfNeededFailureForcesLogout(t *testing.T) {
	f := setupTestFixture(t)
	f.failRefresh = true
	expiring := makeToken(t, time.Now().Add(5*time.Second))
	require.NoError(t, f.store.SetTokens(expiring, "refresh-1"))

	_, err := f.service.RefreshIfNeeded(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, clierrors.ErrNotLoggedIn)
	require.Empty(t, f.store.AccessToken())
	require.Empty(t, f.store.RefreshToken())
	require.Equal(t, []string{auth.LoginRoute}, f.navigate)
}
