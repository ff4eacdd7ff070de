package guesttoken

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mintToken(payload string) string {
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".c2lnbmF0dXJl"
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name       string
		token      string
		expectOK   bool
		expectSub  string
		expectExpi int64
	}{
		{
			name:       "Valid token",
			token:      mintToken(`{"sub":"order_123","exp":1700000000}`),
			expectOK:   true,
			expectSub:  "order_123",
			expectExpi: 1700000000,
		},
		{
			name:      "Valid token without expiry claim",
			token:     mintToken(`{"sub":"order_123"}`),
			expectOK:  true,
			expectSub: "order_123",
		},
		{
			name:  "Empty token",
			token: "",
		},
		{
			name:  "Too few segments",
			token: "abc.def",
		},
		{
			name:  "Too many segments",
			token: "a.b.c.d",
		},
		{
			name:  "Payload is not base64",
			token: "head.!!!!.sig",
		},
		{
			name:  "Payload is not json",
			token: mintToken(`this is not json`),
		},
		{
			name:  "Payload lacks subject",
			token: mintToken(`{"exp":1700000000}`),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, ok := Decode(tc.token)
			assert.Equal(t, tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(t, tc.expectSub, claims.SubjectOrderID)
				assert.Equal(t, tc.expectExpi, claims.ExpiresAt)
			}
		})
	}
}

func TestRemainingTTL(t *testing.T) {
	now := time.Unix(1700000000, 0)

	t.Run("Future expiry", func(t *testing.T) {
		token := mintToken(`{"sub":"order_123","exp":1700000900}`)
		assert.Equal(t, 15*time.Minute, RemainingTTL(token, now))
	})

	t.Run("Expired token is clamped to zero", func(t *testing.T) {
		token := mintToken(`{"sub":"order_123","exp":1699999999}`)
		assert.Equal(t, time.Duration(0), RemainingTTL(token, now))
	})

	t.Run("Expiry exactly now is zero", func(t *testing.T) {
		token := mintToken(`{"sub":"order_123","exp":1700000000}`)
		assert.Equal(t, time.Duration(0), RemainingTTL(token, now))
	})

	t.Run("Missing expiry claim falls back to default", func(t *testing.T) {
		token := mintToken(`{"sub":"order_123"}`)
		assert.Equal(t, DefaultTTL, RemainingTTL(token, now))
	})

	t.Run("Malformed token has no TTL", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), RemainingTTL("garbage", now))
	})

	t.Run("TTL never exceeds time to expiry", func(t *testing.T) {
		for _, ahead := range []int64{0, 1, 60, 3600, 86400} {
			token := mintToken(fmt.Sprintf(`{"sub":"order_123","exp":%d}`, now.Unix()+ahead))
			ttl := RemainingTTL(token, now)
			assert.GreaterOrEqual(t, ttl, time.Duration(0))
			assert.LessOrEqual(t, ttl, time.Duration(ahead)*time.Second)
		}
	})
}
