package guesttoken

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// DefaultTTL is used when a token carries no expiry claim.
const DefaultTTL = time.Hour

// Claims are the decoded fields of a modification token. The backend signs
// these tokens; we only read them to pick the right cookie and to bound its
// lifetime. The signature is verified by the backend on every request, never
// here, so SubjectOrderID must not be used for authorization decisions.
type Claims struct {
	SubjectOrderID string `json:"sub"`
	ExpiresAt      int64  `json:"exp"`
}

// Decode extracts the claims from a signed token. It never fails loudly:
// malformed input of any kind yields false, which callers treat the same as
// an absent token.
func Decode(token string) (Claims, bool) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return Claims{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return Claims{}, false
	}

	claims := Claims{}
	err = json.Unmarshal(payload, &claims)
	if err != nil {
		return Claims{}, false
	}

	if claims.SubjectOrderID == "" {
		return Claims{}, false
	}

	return claims, true
}

// RemainingTTL returns how long the token remains usable, never negative,
// so the result is safe to feed straight into a cookie max-age.
func RemainingTTL(token string, now time.Time) time.Duration {
	claims, ok := Decode(token)
	if !ok {
		return 0
	}

	if claims.ExpiresAt == 0 {
		return DefaultTTL
	}

	remaining := time.Unix(claims.ExpiresAt, 0).Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}
