package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// UsersService is the admin user-management surface.
type UsersService struct {
	client *Client
}

const adminUsersPath = "/api/admin/users"

func (s *UsersService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.do(ctx, http.MethodGet, adminUsersPath, nil, nil, &users); err != nil {
		return nil, errors.Wrap(err, "[Users.List]")
	}
	return users, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", adminUsersPath, id), nil, nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Users.Get]")
	}
	return &user, nil
}

func (s *UsersService) Create(ctx context.Context, req UserCreateRequest) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodPost, adminUsersPath, nil, req, &user); err != nil {
		return nil, errors.Wrap(err, "[Users.Create]")
	}
	return &user, nil
}

func (s *UsersService) Update(ctx context.Context, id int64, req UserUpdateRequest) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adminUsersPath, id), nil, req, &user); err != nil {
		return nil, errors.Wrap(err, "[Users.Update]")
	}
	return &user, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	if err := s.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adminUsersPath, id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "[Users.Delete]")
	}
	return nil
}

// SetEnabled toggles an account. The server takes the value as a query
// parameter with an empty PATCH body.
func (s *UsersService) SetEnabled(ctx context.Context, id int64, value bool) (*User, error) {
	var user User
	query := url.Values{"value": []string{strconv.FormatBool(value)}}
	if err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/enabled", adminUsersPath, id), query, nil, &user); err != nil {
		return nil, errors.Wrap(err, "[Users.SetEnabled]")
	}
	return &user, nil
}
