package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/softloom/storefront/services/orderapi"
)

func TestResolve(t *testing.T) {
	expiresAt := time.Date(2026, 2, 27, 12, 30, 0, 0, time.UTC)
	serverTime := time.Date(2026, 2, 27, 12, 15, 0, 0, time.UTC)

	testCases := []struct {
		name             string
		in               orderapi.ModificationStatus
		expectStatus     orderapi.WindowStatus
		expectRemaining  int
	}{
		{
			name: "Backend allows with time remaining",
			in: orderapi.ModificationStatus{
				CanModify:        true,
				RemainingSeconds: 900,
				ExpiresAt:        expiresAt,
				ServerTime:       serverTime,
			},
			expectStatus:    orderapi.WindowActive,
			expectRemaining: 900,
		},
		{
			name: "Backend denies regardless of remaining time",
			in: orderapi.ModificationStatus{
				CanModify:        false,
				RemainingSeconds: 900,
			},
			expectStatus:    orderapi.WindowExpired,
			expectRemaining: 900,
		},
		{
			name: "Zero remaining is never active",
			in: orderapi.ModificationStatus{
				CanModify:        true,
				RemainingSeconds: 0,
			},
			expectStatus:    orderapi.WindowExpired,
			expectRemaining: 0,
		},
		{
			name: "Negative remaining is clamped",
			in: orderapi.ModificationStatus{
				CanModify:        true,
				RemainingSeconds: -5,
			},
			expectStatus:    orderapi.WindowExpired,
			expectRemaining: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window := Resolve(tc.in)
			assert.Equal(t, tc.expectStatus, window.Status)
			assert.Equal(t, tc.expectRemaining, window.RemainingSeconds)
			if window.Status == orderapi.WindowActive {
				assert.Greater(t, window.RemainingSeconds, 0)
			}
		})
	}
}
