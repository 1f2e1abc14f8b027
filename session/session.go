// Package session defines the client-side session state: the token pair, the
// user's role and a denormalized profile summary, all written by the auth
// service and read by guards and screens.
package session

// Role is the server-asserted role of the logged-in user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// UserSummary is the cached copy of the identity the server asserted at
// login. It is not re-verified against the token's claims; clearing the
// session is its only invalidation.
type UserSummary struct {
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Store persists the four session keys. Getters return zero values when a
// key is absent. Clear removes all four keys in one operation.
type Store interface {
	SetSession(role Role, user UserSummary) error
	SetTokens(accessToken, refreshToken string) error
	Clear() error
	AccessToken() string
	RefreshToken() string
	Role() Role
	User() *UserSummary
}
