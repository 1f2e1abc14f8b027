package transport_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voyago-app/voyago-cli/auth"
	"github.com/voyago-app/voyago-cli/session/storefakes"
	"github.com/voyago-app/voyago-cli/transport"
)

const (
	goodToken    = "good-access-token"
	staleToken   = "stale-access-token"
	refreshToken = "refresh-token-1"
)

// testFixture wires a fake API server behind the authenticated transport.
// The protected endpoint accepts only goodToken; the refresh endpoint
// exchanges refreshToken for it.
type testFixture struct {
	store  *storefakes.FakeStore
	client *http.Client
	server *httptest.Server

	protectedCalls atomic.Int64
	refreshCalls   atomic.Int64
	refreshDelay   time.Duration
	failRefresh    bool

	mu        sync.Mutex
	seenAuth  []string
	seenReqID []string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{store: storefakes.NewFakeStore()}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/client/vols", func(w http.ResponseWriter, r *http.Request) {
		f.protectedCalls.Add(1)
		f.mu.Lock()
		f.seenAuth = append(f.seenAuth, r.Header.Get("Authorization"))
		f.seenReqID = append(f.seenReqID, r.Header.Get("X-Request-ID"))
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+goodToken {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/server-error", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc(auth.RefreshPath, func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		f.mu.Lock()
		f.seenAuth = append(f.seenAuth, r.Header.Get("Authorization"))
		f.mu.Unlock()
		if f.refreshDelay > 0 {
			time.Sleep(f.refreshDelay)
		}
		if f.failRefresh {
			http.Error(w, "refresh token revoked", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(auth.TokenPair{AccessToken: goodToken, RefreshToken: "refresh-token-2"})
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	service, err := auth.NewService(f.server.URL, f.store)
	require.NoError(t, err)

	authTransport, err := transport.New(service)
	require.NoError(t, err)
	f.client = &http.Client{Transport: authTransport}
	return f
}

func (f *testFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, f.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAttachesBearerAndRequestID(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens(goodToken, refreshToken))

	resp := f.get(t, "/api/client/vols")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Bearer "+goodToken, f.seenAuth[0])
	require.NotEmpty(t, f.seenReqID[0])
	require.EqualValues(t, 0, f.refreshCalls.Load())
}

func TestRefreshEndpointIsNeverDecorated(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens(staleToken, refreshToken))

	body := strings.NewReader(`{"refreshToken":"` + refreshToken + `"}`)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, f.server.URL+auth.RefreshPath, body)
	require.NoError(t, err)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, f.seenAuth[0], "refresh call must not carry a bearer token")
}

func TestFailingRefreshCallIsNotRetried(t *testing.T) {
	f := setupTestFixture(t)
	f.failRefresh = true
	require.NoError(t, f.store.SetTokens(staleToken, refreshToken))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, f.server.URL+auth.RefreshPath, strings.NewReader(`{}`))
	require.NoError(t, err)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.EqualValues(t, 1, f.refreshCalls.Load())
}

func TestNonAuthFailurePassesThrough(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens(goodToken, refreshToken))

	resp := f.get(t, "/api/server-error")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.EqualValues(t, 0, f.refreshCalls.Load())
}

func TestAuthFailureWithoutRefreshTokenLogsOut(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens(staleToken, ""))

	resp := f.get(t, "/api/client/vols")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.EqualValues(t, 0, f.refreshCalls.Load())
	require.Empty(t, f.store.AccessToken(), "forced logout must clear the store")
}

func TestAuthFailureRefreshesAndRetriesOnce(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.SetTokens(staleToken, refreshToken))

	resp := f.get(t, "/api/client/vols")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(body))

	require.EqualValues(t, 1, f.refreshCalls.Load())
	require.EqualValues(t, 2, f.protectedCalls.Load(), "original attempt plus one retry")
	require.Equal(t, goodToken, f.store.AccessToken())
	require.Equal(t, "Bearer "+goodToken, f.lastProtectedAuth())
	require.Equal(t, f.seenReqID[0], f.seenReqID[1], "retry keeps the original request id")
}

func (f *testFixture) lastProtectedAuth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.seenAuth) - 1; i >= 0; i-- {
		if f.seenAuth[i] != "" {
			return f.seenAuth[i]
		}
	}
	return ""
}

func TestRefreshFailureLogsOutAndPropagates(t *testing.T) {
	f := setupTestFixture(t)
	f.failRefresh = true
	require.NoError(t, f.store.SetTokens(staleToken, refreshToken))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, f.server.URL+"/api/client/vols", nil)
	require.NoError(t, err)
	_, err = f.client.Do(req) //nolint:bodyclose // the transport returns no response on refresh failure
	require.Error(t, err)

	require.EqualValues(t, 1, f.refreshCalls.Load())
	require.Empty(t, f.store.AccessToken())
	require.Empty(t, f.store.RefreshToken())
}

func TestConcurrentAuthFailuresShareOneRefresh(t *testing.T) {
	f := setupTestFixture(t)
	f.refreshDelay = 150 * time.Millisecond
	require.NoError(t, f.store.SetTokens(staleToken, refreshToken))

	const requests = 4
	statuses := make([]int, requests)
	errs := make([]error, requests)
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, f.server.URL+"/api/client/vols", nil)
			if err != nil {
				errs[i] = err
				return
			}
			resp, err := f.client.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, f.refreshCalls.Load(), "N concurrent 401s must produce exactly one refresh call")
	for i := 0; i < requests; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, http.StatusOK, statuses[i], "every queued request must retry with the renewed token")
	}
}
