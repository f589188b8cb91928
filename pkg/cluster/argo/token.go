package argo

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotJWT  = errors.New("token is not a JWT")
	ErrExpired = errors.New("token is expired")
)

// TokenExpiry reports when the Bearer token for the Argo server expires.
//
// The token is NOT verified here. Verification is the server's job;
// axon only wants to warn operators before the expiry bites.
//
// # Returns
//
// - time.Time: expiry ("exp" claim). Zero when the token has no expiry.
//
// - error: ErrNotJWT when the token does not parse as a JWT,
// ErrExpired when the expiry is in the past.
func TokenExpiry(token string, now time.Time) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrNotJWT
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, ErrNotJWT
	}
	if exp == nil {
		return time.Time{}, nil
	}
	if exp.Time.Before(now) {
		return exp.Time, ErrExpired
	}
	return exp.Time, nil
}
