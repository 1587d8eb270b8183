// Package token decodes bearer-token claims for local expiry estimation.
//
// Decoding is done without signature verification and must never feed an
// authorization decision; the issuing server remains the only authority on
// token validity. The claims read here are a scheduling heuristic only.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryBuffer is subtracted from a token's expiry when deciding
// whether it is still usable. A token inside the buffer is treated as expired
// so that it does not lapse mid-request due to network latency.
const DefaultExpiryBuffer = 5 * time.Second

// Claims holds the subset of token claims the session layer cares about.
// Zero values mean the claim was absent or the token was not decodable.
type Claims struct {
	// ExpiresAt is the token expiry. Zero when the token carries no exp claim.
	ExpiresAt time.Time
	// IssuedAt is the token issue time, when present.
	IssuedAt time.Time
	// Subject is the subject identifier, when present.
	Subject string
}

// HasExpiry reports whether the token carried an exp claim.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// Decode extracts claims from a bearer token without verifying its signature.
// Malformed or undecodable input yields zero Claims rather than an error:
// callers treat "no expiry claim" as "expired", so decode failure is a soft
// condition here.
func Decode(raw string) Claims {
	var mc jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &mc); err != nil {
		return Claims{}
	}

	var claims Claims
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if sub, err := mc.GetSubject(); err == nil {
		claims.Subject = sub
	}
	return claims
}

// Expired reports whether the token is expired, or will expire within buffer,
// as of now. Tokens without a parseable exp claim are always expired.
func Expired(raw string, buffer time.Duration, now time.Time) bool {
	claims := Decode(raw)
	if !claims.HasExpiry() {
		return true
	}
	return !now.Before(claims.ExpiresAt.Add(-buffer))
}
