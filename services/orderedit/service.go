package orderedit

import (
	"context"
	"fmt"

	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/lib/mypublisher"
	"github.com/softloom/storefront/lib/mystore"
	"github.com/softloom/storefront/lib/mytime"
	"github.com/softloom/storefront/lib/myuuid"
	"github.com/softloom/storefront/services/eligibility"
	"github.com/softloom/storefront/services/orderapi"
	"github.com/softloom/storefront/services/orderevents"
	"github.com/softloom/storefront/services/ordergateway"
)

type service struct {
	draftStore mystore.Store[OrderDraft]
	gateway    ordergateway.OrderGateway
	sequencer  *sequencer
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
	publisher  mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(draftStore mystore.Store[OrderDraft], gateway ordergateway.OrderGateway, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, publisher mypublisher.Publisher) *service {
	return &service{
		draftStore: draftStore,
		gateway:    gateway,
		sequencer:  newSequencer(gateway, logger),
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
		publisher:  publisher,
	}
}

type OrderStatusResponse struct {
	Order    orderapi.OrderSnapshot      `json:"order"`
	Window   orderapi.ModificationWindow `json:"modification"`
	Items    []DisplayItem               `json:"items"`
	HasDraft bool                        `json:"has_draft"`
}

type DraftResponse struct {
	Items        []DisplayItem `json:"items"`
	PendingCount int           `json:"pending_count"`
	ChangeCount  int           `json:"change_count"`
}

type CommitResponse struct {
	Committed      bool                     `json:"committed"`
	ItemsCommitted int                      `json:"items_committed"`
	ItemsQueued    int                      `json:"items_queued"`
	Retryable      bool                     `json:"retryable,omitempty"`
	Error          *eligibility.UserMessage `json:"error,omitempty"`
}

func (s *service) getOrderStatus(c context.Context, orderID string, token string) (OrderStatusResponse, error) {
	guestOrder, err := s.gateway.FetchOrder(c, orderID, token)
	if err != nil {
		return OrderStatusResponse{}, err
	}

	draft, _, err := s.loadDraft(c, orderID)
	if err != nil {
		return OrderStatusResponse{}, err
	}

	return OrderStatusResponse{
		Order:    guestOrder.Order,
		Window:   eligibility.Resolve(guestOrder.Modification),
		Items:    draft.Changes.ComputeDisplayItems(guestOrder.Order.Items),
		HasDraft: !draft.Changes.IsEmpty(),
	}, nil
}

func (s *service) loadDraft(c context.Context, orderID string) (OrderDraft, bool, error) {
	draft, found, err := s.draftStore.Get(c, orderID)
	if err != nil {
		return OrderDraft{}, false, fmt.Errorf("error fetching draft for order %s: %s", orderID, err)
	}
	if !found {
		return OrderDraft{
			OrderID:   orderID,
			CreatedAt: s.nower.Now(),
		}, false, nil
	}

	return draft, true, nil
}

type AddItemRequest struct {
	VariantID string `json:"variant_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (s *service) addItemToDraft(c context.Context, orderID string, token string, req AddItemRequest) (DraftResponse, error) {
	if req.VariantID == "" {
		return DraftResponse{}, orderapi.NewValidationFailure("variant_id is required")
	}
	if req.Quantity <= 0 {
		return DraftResponse{}, orderapi.NewValidationFailure(fmt.Sprintf("quantity must be positive, got %d", req.Quantity))
	}

	guestOrder, err := s.gateway.FetchOrder(c, orderID, token)
	if err != nil {
		return DraftResponse{}, err
	}

	var changes PendingChanges
	err = s.draftStore.RunInTransaction(c, func(c context.Context) error {
		draft, _, err := s.loadDraft(c, orderID)
		if err != nil {
			return err
		}

		draft.Changes.AddItem(guestOrder.Order.Items, s.uuider, req.VariantID, req.Title, req.Quantity, req.UnitPrice)
		changes = draft.Changes

		return s.storeDraft(c, draft)
	})
	if err != nil {
		return DraftResponse{}, err
	}

	s.logger.Log(c, orderID, mylog.SeverityInfo, "Buffered add of variant %s (qty %d) for order %s", req.VariantID, req.Quantity, orderID)

	return s.draftResponse(changes, guestOrder.Order.Items), nil
}

type SetQuantityRequest struct {
	LineItemID string `json:"line_item_id"`
	PendingID  string `json:"pending_id"`
	Quantity   int    `json:"quantity"`
}

func (s *service) setDraftQuantity(c context.Context, orderID string, token string, req SetQuantityRequest) (DraftResponse, error) {
	if (req.LineItemID == "") == (req.PendingID == "") {
		return DraftResponse{}, orderapi.NewValidationFailure("exactly one of line_item_id and pending_id is required")
	}

	guestOrder, err := s.gateway.FetchOrder(c, orderID, token)
	if err != nil {
		return DraftResponse{}, err
	}

	var changes PendingChanges
	err = s.draftStore.RunInTransaction(c, func(c context.Context) error {
		draft, _, err := s.loadDraft(c, orderID)
		if err != nil {
			return err
		}

		if req.PendingID != "" {
			draft.Changes.SetPendingQuantity(req.PendingID, req.Quantity)
		} else {
			draft.Changes.SetConfirmedQuantity(guestOrder.Order.Items, req.LineItemID, req.Quantity)
		}
		changes = draft.Changes

		return s.storeDraft(c, draft)
	})
	if err != nil {
		return DraftResponse{}, err
	}

	return s.draftResponse(changes, guestOrder.Order.Items), nil
}

func (s *service) storeDraft(c context.Context, draft OrderDraft) error {
	now := s.nower.Now()
	draft.LastModified = &now

	if draft.Changes.IsEmpty() {
		return s.draftStore.Delete(c, draft.OrderID)
	}

	err := s.draftStore.Put(c, draft.OrderID, draft)
	if err != nil {
		return fmt.Errorf("error storing draft for order %s: %s", draft.OrderID, err)
	}

	return nil
}

func (s *service) draftResponse(changes PendingChanges, confirmed []orderapi.OrderLineItem) DraftResponse {
	return DraftResponse{
		Items:        changes.ComputeDisplayItems(confirmed),
		PendingCount: len(changes.PendingItems),
		ChangeCount:  len(changes.QuantityChanges),
	}
}

// commitDraft flattens the buffered edits into one batch and runs it
// sequentially against the backend. On full success the draft is deleted;
// on partial failure the committed prefix is removed from the draft so a
// retry only replays the failed tail.
func (s *service) commitDraft(c context.Context, orderID string, token string) (orderapi.BatchOutcome, int, error) {
	draft, found, err := s.loadDraft(c, orderID)
	if err != nil {
		return orderapi.BatchOutcome{}, 0, err
	}
	if !found || draft.Changes.IsEmpty() {
		return orderapi.BatchOutcome{}, 0, nil
	}

	operations := draft.Changes.FlattenToBatch()
	outcome := s.sequencer.commit(c, orderID, token, operations)

	s.publishDiagnostic(c, orderevents.BatchCommitted{
		OrderUID:       orderID,
		ItemsCommitted: outcome.ItemsCommitted,
		ItemsQueued:    len(operations),
		FailureKind:    failureKind(outcome),
	})

	if outcome.Succeeded() {
		err = s.draftStore.Delete(c, orderID)
		if err != nil {
			return outcome, len(operations), fmt.Errorf("error clearing draft for order %s: %s", orderID, err)
		}

		s.logger.Log(c, orderID, mylog.SeverityInfo, "Committed %d operations for order %s", outcome.ItemsCommitted, orderID)

		return outcome, len(operations), nil
	}

	// Keep only the uncommitted tail for retry.
	draft.Changes.removeCommitted(operations[:outcome.ItemsCommitted])
	storeErr := s.draftStore.RunInTransaction(c, func(c context.Context) error {
		return s.storeDraft(c, draft)
	})
	if storeErr != nil {
		s.logger.Log(c, orderID, mylog.SeverityError, "Error trimming draft for order %s: %s", orderID, storeErr)
	}

	return outcome, len(operations), nil
}

func failureKind(outcome orderapi.BatchOutcome) string {
	if outcome.Failure == nil {
		return ""
	}

	return string(outcome.Failure.Kind)
}

// discardDraft empties the buffer. The decoded token is not proof of
// anything, so the backend must accept it before the draft is touched.
func (s *service) discardDraft(c context.Context, orderID string, token string) error {
	_, err := s.gateway.FetchOrder(c, orderID, token)
	if err != nil {
		return err
	}

	err = s.draftStore.Delete(c, orderID)
	if err != nil {
		return fmt.Errorf("error discarding draft for order %s: %s", orderID, err)
	}

	s.logger.Log(c, orderID, mylog.SeverityInfo, "Discarded draft for order %s", orderID)

	return nil
}

func (s *service) updateAddress(c context.Context, orderID string, token string, address orderapi.Address) (orderapi.OrderSnapshot, error) {
	err := address.Validate()
	if err != nil {
		return orderapi.OrderSnapshot{}, err
	}

	order, err := s.gateway.UpdateAddress(c, orderID, token, address)
	if err != nil {
		s.publishRejection(c, orderID, "update_address", err)
		return orderapi.OrderSnapshot{}, err
	}

	s.publishDiagnostic(c, orderevents.OrderModified{OrderUID: orderID, Operation: "update_address"})

	return order, nil
}

func (s *service) updateShippingMethod(c context.Context, orderID string, token string, shippingOptionID string) (orderapi.OrderSnapshot, error) {
	if shippingOptionID == "" {
		return orderapi.OrderSnapshot{}, orderapi.NewValidationFailure("shipping_option_id is required")
	}

	order, err := s.gateway.UpdateShippingMethod(c, orderID, token, shippingOptionID)
	if err != nil {
		s.publishRejection(c, orderID, "update_shipping_method", err)
		return orderapi.OrderSnapshot{}, err
	}

	s.publishDiagnostic(c, orderevents.OrderModified{OrderUID: orderID, Operation: "update_shipping_method"})

	return order, nil
}

func (s *service) cancelOrder(c context.Context, orderID string, token string, reason string) error {
	err := s.gateway.CancelOrder(c, orderID, token, reason)
	if err != nil {
		s.publishRejection(c, orderID, "cancel", err)
		return err
	}

	// Buffered edits are meaningless for a cancelled order.
	err = s.draftStore.Delete(c, orderID)
	if err != nil {
		s.logger.Log(c, orderID, mylog.SeverityError, "Error discarding draft after cancellation of order %s: %s", orderID, err)
	}

	s.publishDiagnostic(c, orderevents.OrderCancelled{OrderUID: orderID, Reason: reason})

	return nil
}

func (s *service) shippingOptions(c context.Context, orderID string, token string) (orderapi.ShippingOptionList, error) {
	return s.gateway.FetchShippingOptions(c, orderID, token)
}

func (s *service) publishRejection(c context.Context, orderID string, operation string, err error) {
	mutErr := orderapi.AsMutationError(err)
	s.publishDiagnostic(c, orderevents.ModificationRejected{
		OrderUID:    orderID,
		Operation:   operation,
		FailureKind: string(mutErr.Kind),
		BackendCode: mutErr.BackendCode,
	})
}

// publishDiagnostic is fire-and-forget: a failing telemetry sink must never
// change a mutation outcome.
func (s *service) publishDiagnostic(c context.Context, event mypublisher.Event) {
	err := s.publisher.Publish(c, orderevents.TopicName, event)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}
