package orderedit

import "time"

type OpKind string

const (
	OpAdd            OpKind = "add"
	OpUpdateQuantity OpKind = "update_quantity"
)

// Operation is one backend mutation in a batch, already coalesced to its
// final quantity.
type Operation struct {
	Kind       OpKind `json:"kind"`
	VariantID  string `json:"variant_id,omitempty"`
	LineItemID string `json:"line_item_id,omitempty"`
	Quantity   int    `json:"quantity"`
}

// OrderDraft is the stored edit buffer for one order. It lives in the draft
// store between storefront requests and is deleted the moment a batch
// commits fully or the guest discards their edits.
type OrderDraft struct {
	OrderID      string
	CreatedAt    time.Time
	LastModified *time.Time
	Changes      PendingChanges `datastore:",noindex"`
}
