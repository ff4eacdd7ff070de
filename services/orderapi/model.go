package orderapi

import "time"

// OrderLineItem is a confirmed line of the order as the backend knows it.
type OrderLineItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// OrderSnapshot is the read-mostly view of a backend order. Amounts are in
// minor units. Confirmed totals are never mutated locally; they are only
// refreshed by re-fetching after a successful backend mutation.
type OrderSnapshot struct {
	ID              string          `json:"id"`
	DisplayID       string          `json:"display_id"`
	CurrencyCode    string          `json:"currency_code"`
	RegionID        string          `json:"region_id"`
	Subtotal        int64           `json:"subtotal"`
	ShippingTotal   int64           `json:"shipping_total"`
	TaxTotal        int64           `json:"tax_total"`
	DiscountTotal   int64           `json:"discount_total"`
	Total           int64           `json:"total"`
	Items           []OrderLineItem `json:"items"`
	ShippingAddress Address         `json:"shipping_address"`
}

type ShippingOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type ShippingOptionList struct {
	Options         []ShippingOption `json:"shipping_options"`
	CurrentOptionID string           `json:"current_shipping_option_id"`
}

// ModificationStatus is the backend's own verdict on editability. The
// backend is the sole authority here; nothing client-side recomputes it.
type ModificationStatus struct {
	CanModify        bool      `json:"can_modify"`
	RemainingSeconds int       `json:"remaining_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
	ServerTime       time.Time `json:"server_time"`
}

type WindowStatus string

const (
	WindowActive  WindowStatus = "active"
	WindowExpired WindowStatus = "expired"
)

// ModificationWindow is derived fresh from ModificationStatus on every order
// fetch. It gates the UI only; the backend re-validates every mutation.
type ModificationWindow struct {
	Status           WindowStatus `json:"status"`
	ExpiresAt        time.Time    `json:"expires_at"`
	ServerTime       time.Time    `json:"server_time"`
	RemainingSeconds int          `json:"remaining_seconds"`
}

// GuestOrder is what the backend returns for a guest order fetch.
type GuestOrder struct {
	Order        OrderSnapshot
	Modification ModificationStatus
}

// PaymentIntentOrder is the lookup result when resolving an order from the
// payment processor's intent id right after checkout.
type PaymentIntentOrder struct {
	Order               OrderSnapshot
	ModificationToken   string
	RemainingSeconds    int
	ModificationAllowed bool
}

// NewTotal carries the recalculated order total after a line-item mutation.
type NewTotal struct {
	Total int64 `json:"new_total"`
}

// BatchOutcome reports how much of a batch committed before a failure
// interrupted the sequence. ItemsCommitted is load-bearing: it is the only
// way a caller learns that a batch partially applied.
type BatchOutcome struct {
	ItemsCommitted int
	Failure        *MutationError
}

func (o BatchOutcome) Succeeded() bool {
	return o.Failure == nil
}
