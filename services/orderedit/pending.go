package orderedit

import (
	"github.com/softloom/storefront/lib/myuuid"
	"github.com/softloom/storefront/services/orderapi"
)

// PendingItem is a line the guest wants added but that has not been sent to
// the backend yet. Its ID is a client-generated temporary identifier.
type PendingItem struct {
	ID        string `json:"id"`
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (p PendingItem) Subtotal() int64 {
	return p.UnitPrice * int64(p.Quantity)
}

// QuantityChange is a buffered delta against a confirmed line item.
type QuantityChange struct {
	LineItemID       string `json:"line_item_id"`
	VariantID        string `json:"variant_id"`
	OriginalQuantity int    `json:"original_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	UnitPrice        int64  `json:"unit_price"`
}

// PendingChanges is the not-yet-persisted edit buffer. It holds new items
// and quantity deltas until the guest saves, at which point FlattenToBatch
// turns the final accumulated state into backend operations. Intermediate
// clicks are coalesced; only final quantities ever reach the backend.
//
// QuantityChanges is kept as a slice rather than a map so that flattening
// is deterministic and the draft serializes cleanly into the store.
type PendingChanges struct {
	PendingItems    []PendingItem    `json:"pending_items"`
	QuantityChanges []QuantityChange `json:"quantity_changes"`
}

func NewPendingChanges() PendingChanges {
	return PendingChanges{}
}

func (pc PendingChanges) IsEmpty() bool {
	return len(pc.PendingItems) == 0 && len(pc.QuantityChanges) == 0
}

func (pc *PendingChanges) findChange(lineItemID string) (int, bool) {
	for i, change := range pc.QuantityChanges {
		if change.LineItemID == lineItemID {
			return i, true
		}
	}
	return 0, false
}

func (pc *PendingChanges) findPending(id string) (int, bool) {
	for i, item := range pc.PendingItems {
		if item.ID == id {
			return i, true
		}
	}
	return 0, false
}

func findConfirmedByVariant(confirmed []orderapi.OrderLineItem, variantID string) (orderapi.OrderLineItem, bool) {
	for _, item := range confirmed {
		if item.VariantID == variantID {
			return item, true
		}
	}
	return orderapi.OrderLineItem{}, false
}

// AddItem buffers "add quantity of variant". Routing rules:
//   - variant already confirmed on the order: increment a quantity override,
//     starting from the override if one exists, else from the confirmed
//     quantity; never create a duplicate pending line;
//   - variant already pending: merge by summing quantities;
//   - otherwise: new pending entry with a fresh temporary id.
func (pc *PendingChanges) AddItem(confirmed []orderapi.OrderLineItem, uuider myuuid.UUIDer, variantID string, title string, quantity int, unitPrice int64) {
	if quantity <= 0 {
		return
	}

	if confirmedItem, found := findConfirmedByVariant(confirmed, variantID); found {
		if i, exists := pc.findChange(confirmedItem.ID); exists {
			pc.QuantityChanges[i].NewQuantity += quantity
			pc.normalizeChange(confirmedItem.ID)
			return
		}

		pc.QuantityChanges = append(pc.QuantityChanges, QuantityChange{
			LineItemID:       confirmedItem.ID,
			VariantID:        confirmedItem.VariantID,
			OriginalQuantity: confirmedItem.Quantity,
			NewQuantity:      confirmedItem.Quantity + quantity,
			UnitPrice:        confirmedItem.UnitPrice,
		})
		return
	}

	for i, pending := range pc.PendingItems {
		if pending.VariantID == variantID {
			pc.PendingItems[i].Quantity += quantity
			return
		}
	}

	pc.PendingItems = append(pc.PendingItems, PendingItem{
		ID:        uuider.Create(),
		VariantID: variantID,
		Title:     title,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// RemovePendingItem drops a buffered new item. Nothing was ever sent to the
// backend for it, so removal is purely local.
func (pc *PendingChanges) RemovePendingItem(id string) {
	if i, found := pc.findPending(id); found {
		pc.PendingItems = append(pc.PendingItems[:i], pc.PendingItems[i+1:]...)
	}
}

// SetPendingQuantity updates a buffered item's quantity. Zero or below
// deletes the pending item outright: it was never sent, so there is nothing
// to remove server-side.
func (pc *PendingChanges) SetPendingQuantity(id string, quantity int) {
	i, found := pc.findPending(id)
	if !found {
		return
	}

	if quantity <= 0 {
		pc.RemovePendingItem(id)
		return
	}

	pc.PendingItems[i].Quantity = quantity
}

// SetConfirmedQuantity buffers a new target quantity for a confirmed line
// item. Negative targets are ignored; zero is allowed and means "queue a
// removal". Setting the target back to the original confirmed quantity
// removes the override: no-op changes must not linger.
func (pc *PendingChanges) SetConfirmedQuantity(confirmed []orderapi.OrderLineItem, lineItemID string, quantity int) {
	if quantity < 0 {
		return
	}

	var confirmedItem orderapi.OrderLineItem
	found := false
	for _, item := range confirmed {
		if item.ID == lineItemID {
			confirmedItem = item
			found = true
			break
		}
	}
	if !found {
		return
	}

	if i, exists := pc.findChange(lineItemID); exists {
		pc.QuantityChanges[i].NewQuantity = quantity
		pc.normalizeChange(lineItemID)
		return
	}

	if quantity == confirmedItem.Quantity {
		return
	}

	pc.QuantityChanges = append(pc.QuantityChanges, QuantityChange{
		LineItemID:       lineItemID,
		VariantID:        confirmedItem.VariantID,
		OriginalQuantity: confirmedItem.Quantity,
		NewQuantity:      quantity,
		UnitPrice:        confirmedItem.UnitPrice,
	})
}

// normalizeChange drops an override whose target equals the original
// quantity again.
func (pc *PendingChanges) normalizeChange(lineItemID string) {
	i, found := pc.findChange(lineItemID)
	if !found {
		return
	}

	if pc.QuantityChanges[i].NewQuantity == pc.QuantityChanges[i].OriginalQuantity {
		pc.QuantityChanges = append(pc.QuantityChanges[:i], pc.QuantityChanges[i+1:]...)
	}
}

// DiscardAll empties the buffer without touching the backend.
func (pc *PendingChanges) DiscardAll() {
	pc.PendingItems = nil
	pc.QuantityChanges = nil
}

// FlattenToBatch converts the accumulated state into the ordered operation
// list for the sequencer: one add per pending item, then one quantity update
// per override, each carrying its final quantity.
func (pc PendingChanges) FlattenToBatch() []Operation {
	operations := make([]Operation, 0, len(pc.PendingItems)+len(pc.QuantityChanges))

	for _, pending := range pc.PendingItems {
		operations = append(operations, Operation{
			Kind:      OpAdd,
			VariantID: pending.VariantID,
			Quantity:  pending.Quantity,
		})
	}

	for _, change := range pc.QuantityChanges {
		operations = append(operations, Operation{
			Kind:       OpUpdateQuantity,
			LineItemID: change.LineItemID,
			VariantID:  change.VariantID,
			Quantity:   change.NewQuantity,
		})
	}

	return operations
}

// removeCommitted drops the buffered entries whose operations already
// committed, leaving only the failed tail behind for retry.
func (pc *PendingChanges) removeCommitted(committed []Operation) {
	for _, op := range committed {
		switch op.Kind {
		case OpAdd:
			for i, pending := range pc.PendingItems {
				if pending.VariantID == op.VariantID {
					pc.PendingItems = append(pc.PendingItems[:i], pc.PendingItems[i+1:]...)
					break
				}
			}
		case OpUpdateQuantity:
			if i, found := pc.findChange(op.LineItemID); found {
				pc.QuantityChanges = append(pc.QuantityChanges[:i], pc.QuantityChanges[i+1:]...)
			}
		}
	}
}

type DisplaySource string

const (
	DisplayConfirmed DisplaySource = "confirmed"
	DisplayPending   DisplaySource = "pending"
)

// DisplayItem is one row of the unified items view: confirmed items with
// any buffered override applied, followed by pending items.
type DisplayItem struct {
	Source     DisplaySource `json:"source"`
	LineItemID string        `json:"line_item_id,omitempty"`
	PendingID  string        `json:"pending_id,omitempty"`
	VariantID  string        `json:"variant_id"`
	Title      string        `json:"title"`
	Quantity   int           `json:"quantity"`
	UnitPrice  int64         `json:"unit_price"`
	Subtotal   int64         `json:"subtotal"`
}

// ComputeDisplayItems merges confirmed and buffered state for rendering.
// A confirmed item overridden to zero quantity is hidden entirely.
func (pc PendingChanges) ComputeDisplayItems(confirmed []orderapi.OrderLineItem) []DisplayItem {
	items := make([]DisplayItem, 0, len(confirmed)+len(pc.PendingItems))

	for _, item := range confirmed {
		quantity := item.Quantity
		if i, found := pc.findChange(item.ID); found {
			quantity = pc.QuantityChanges[i].NewQuantity
		}
		if quantity == 0 {
			continue
		}

		items = append(items, DisplayItem{
			Source:     DisplayConfirmed,
			LineItemID: item.ID,
			VariantID:  item.VariantID,
			Title:      item.Title,
			Quantity:   quantity,
			UnitPrice:  item.UnitPrice,
			Subtotal:   item.UnitPrice * int64(quantity),
		})
	}

	for _, pending := range pc.PendingItems {
		items = append(items, DisplayItem{
			Source:    DisplayPending,
			PendingID: pending.ID,
			VariantID: pending.VariantID,
			Title:     pending.Title,
			Quantity:  pending.Quantity,
			UnitPrice: pending.UnitPrice,
			Subtotal:  pending.Subtotal(),
		})
	}

	return items
}
