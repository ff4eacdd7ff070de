package eligibility

import (
	"github.com/softloom/storefront/services/orderapi"
)

// Resolve reshapes the backend's modification verdict into the window the
// storefront renders. Eligibility is backend-declared; this never recomputes
// it from order state, because only the backend knows fulfillment and
// capture status. The result is advisory: every mutation must still
// tolerate a late server-side rejection.
func Resolve(status orderapi.ModificationStatus) orderapi.ModificationWindow {
	window := orderapi.ModificationWindow{
		Status:           orderapi.WindowExpired,
		ExpiresAt:        status.ExpiresAt,
		ServerTime:       status.ServerTime,
		RemainingSeconds: status.RemainingSeconds,
	}

	if window.RemainingSeconds < 0 {
		window.RemainingSeconds = 0
	}

	if status.CanModify && window.RemainingSeconds > 0 {
		window.Status = orderapi.WindowActive
	}

	return window
}
