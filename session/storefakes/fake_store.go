// Package storefakes provides an in-memory session.Store for tests.
package storefakes

import (
	"sync"

	"github.com/voyago-app/voyago-cli/session"
)

// FakeStore is an in-memory session.Store with the same empty-value-skips
// behavior as the file store.
type FakeStore struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	role         session.Role
	user         *session.UserSummary
}

var _ session.Store = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) SetSession(role session.Role, user session.UserSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.role = role
	f.user = &user
	return nil
}

func (f *FakeStore) SetTokens(accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if accessToken != "" {
		f.accessToken = accessToken
	}
	if refreshToken != "" {
		f.refreshToken = refreshToken
	}
	return nil
}

func (f *FakeStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accessToken = ""
	f.refreshToken = ""
	f.role = ""
	f.user = nil
	return nil
}

func (f *FakeStore) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accessToken
}

func (f *FakeStore) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshToken
}

func (f *FakeStore) Role() session.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.role
}

func (f *FakeStore) User() *session.UserSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}
