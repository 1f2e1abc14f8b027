// Package token reads the payload of a bearer token without verifying its
// signature. The server owns issuance and validation; the client only needs
// the expiry and identity claims to decide when to renew.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	clierrors "github.com/voyago-app/voyago-cli/internal/errors"
)

// DefaultSkew starts renewal slightly before hard expiry, so a request is
// never sent with a token that expires mid-flight.
const DefaultSkew = 30 * time.Second

// NowTimeFunc is the clock used for expiry comparisons (injectable for testing).
var NowTimeFunc = time.Now

// Claims is the decoded payload of an access token. Zero values mean the
// claim was absent.
type Claims struct {
	Exp   int64
	Sub   string
	Role  string
	Email string
	Raw   map[string]any
}

// HasExpiry reports whether the token carried an exp claim at all.
func (c *Claims) HasExpiry() bool {
	_, ok := c.Raw["exp"]
	return ok
}

// Decode extracts the claims of a raw token. It fails if the token does not
// have exactly three dot-separated segments or the middle segment is not
// base64url-encoded JSON. It never verifies the signature and never panics.
func Decode(raw string) (*Claims, error) {
	if len(strings.Split(raw, ".")) != 3 {
		return nil, errors.Wrap(clierrors.ErrInvalidToken, "[Decode] token must have three segments")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, clierrors.ErrInvalidToken.Error())
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrap(clierrors.ErrInvalidToken, "[Decode] error extracting claims")
	}

	claims := &Claims{Raw: mapClaims}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.Exp = int64(exp)
	}
	claims.Sub, _ = mapClaims["sub"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	return claims, nil
}

// IsExpired reports whether the token is expired or will be within skew.
// Undecodable tokens and tokens without an exp claim count as expired
// (fail-closed). This is the single expiry check used by the session
// service, the transport and the guards.
func IsExpired(raw string, skew time.Duration) bool {
	claims, err := Decode(raw)
	if err != nil || !claims.HasExpiry() {
		return true
	}
	return claims.Exp <= NowTimeFunc().Add(skew).Unix()
}
