// Package filestore persists the session as a single JSON document on disk.
// Like browser local storage it survives restarts and is visible to every
// process sharing the data folder, with last-write-wins semantics. Each
// mutation rewrites the whole file through a rename, so readers never see a
// torn document.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/voyago-app/voyago-cli/session"
)

const fileName = "session.json"

type document struct {
	AccessToken  string               `json:"accessToken,omitempty"`
	RefreshToken string               `json:"refreshToken,omitempty"`
	Role         session.Role         `json:"role,omitempty"`
	User         *session.UserSummary `json:"user,omitempty"`
}

// Store is a file-backed session.Store.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ session.Store = (*Store)(nil)

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] MkdirAll")
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

func (s *Store) SetSession(role session.Role, user session.UserSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	doc.Role = role
	doc.User = &user
	return s.save(doc)
}

// SetTokens stores the token pair. An empty value leaves the existing slot
// untouched, so a refresh response without a refresh token does not wipe the
// one already stored.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	if accessToken != "" {
		doc.AccessToken = accessToken
	}
	if refreshToken != "" {
		doc.RefreshToken = refreshToken
	}
	return s.save(doc)
}

// Clear removes the session file, dropping all four keys together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Store.Clear] Remove")
	}
	return nil
}

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

func (s *Store) Role() session.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Role
}

func (s *Store) User() *session.UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

// load re-reads the file on every access so writes by other processes are
// observed, matching local storage semantics. A missing or corrupt file
// reads as a logged-out session.
func (s *Store) load() document {
	var doc document
	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}
	}
	return doc
}

func (s *Store) save(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "[Store.save] Marshal")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[Store.save] WriteFile")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "[Store.save] Rename")
	}
	return nil
}
