package auth

import "github.com/voyago-app/voyago-cli/session"

// Endpoint paths under the API base URL.
const (
	LoginPath          = "/api/auth/login"
	RegisterPath       = "/api/auth/register"
	LogoutPath         = "/api/auth/logout"
	RefreshPath        = "/api/auth/refresh"
	ForgotPasswordPath = "/api/auth/forgot-password"
	ResetPasswordPath  = "/api/auth/reset-password"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the server's answer to login and register. The token pair
// and the profile fields are each optional; the service stores whatever is
// present.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	UserID       int64        `json:"userId"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	Role         session.Role `json:"role"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is the result of a refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}
