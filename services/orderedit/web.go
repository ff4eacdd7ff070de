package orderedit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/softloom/storefront/lib/mycontext"
	"github.com/softloom/storefront/lib/myerrors"
	"github.com/softloom/storefront/lib/myhttp"
	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/lib/mypublisher"
	"github.com/softloom/storefront/lib/mystore"
	"github.com/softloom/storefront/lib/mytime"
	"github.com/softloom/storefront/lib/myuuid"
	"github.com/softloom/storefront/services/eligibility"
	"github.com/softloom/storefront/services/guestsession"
	"github.com/softloom/storefront/services/orderapi"
	"github.com/softloom/storefront/services/orderevents"
	"github.com/softloom/storefront/services/ordergateway"
)

type webService struct {
	logger  mylog.Logger
	service *service
	session *guestsession.Store
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(draftStore mystore.Store[OrderDraft], gateway ordergateway.OrderGateway, session *guestsession.Store, nower mytime.Nower, uuider myuuid.UUIDer, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("orderedit")

	return &webService{
		logger:  logger,
		service: newService(draftStore, gateway, nower, uuider, logger, publisher),
		session: session,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// Order-status and order-edit surface consumed by the storefront pages
	router.HandleFunc("/order/{orderUID}", s.orderStatusPage()).Methods("GET")
	router.HandleFunc("/order/{orderUID}/shipping-options", s.shippingOptionsPage()).Methods("GET")
	router.HandleFunc("/order/{orderUID}/address", s.updateAddressPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/shipping-method", s.updateShippingMethodPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/items/add", s.addItemPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/items/quantity", s.setQuantityPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/items/commit", s.commitPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/items/discard", s.discardPage()).Methods("POST")
	router.HandleFunc("/order/{orderUID}/cancel", s.cancelPage()).Methods("POST")

	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic: %s", err)
	}

	return nil
}

// userError is the only error body shape the storefront pages ever see.
type userError struct {
	Error     eligibility.UserMessage `json:"error"`
	Kind      orderapi.ErrorKind      `json:"kind"`
	Retryable bool                    `json:"retryable,omitempty"`
}

// resolveToken locates the guest token for the order. Absence is an
// immediate, network-free rejection.
func (s *webService) resolveToken(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	c := mycontext.ContextFromHTTPRequest(r)
	orderUID := mux.Vars(r)["orderUID"]

	token, _, ok := s.tokenFor(r, orderUID)
	if !ok {
		s.logger.Log(c, orderUID, mylog.SeverityInfo, "No guest token for order %s", orderUID)
		s.writeUserError(c, w, http.StatusForbidden, userError{
			Error: eligibility.ClassifyError("TOKEN_REQUIRED"),
			Kind:  orderapi.ErrorKindAuth,
		})
		return "", "", false
	}

	return orderUID, token, true
}

func (s *webService) tokenFor(r *http.Request, orderUID string) (string, guestsession.TokenSource, bool) {
	token, source := s.session.GetToken(r, orderUID)
	return token, source, source != guestsession.SourceNone
}

// writeMutationError maps a mutation failure onto a user-safe body. An
// authorization rejection additionally destroys the local session, always.
func (s *webService) writeMutationError(c context.Context, w http.ResponseWriter, orderUID string, err error) {
	mutErr := orderapi.AsMutationError(err)

	if mutErr.Kind == orderapi.ErrorKindAuth {
		s.session.ClearToken(w, orderUID)
	}

	httpStatus := mutErr.HTTPStatus
	if httpStatus < 400 || httpStatus > 499 {
		httpStatus = http.StatusBadGateway
	}

	s.logger.Log(c, orderUID, mylog.SeverityWarn, "Mutation failed for order %s: %s", orderUID, mutErr)

	s.writeUserError(c, w, httpStatus, userError{
		Error:     eligibility.ClassifyError(mutErr.BackendCode),
		Kind:      mutErr.Kind,
		Retryable: mutErr.Retryable,
	})
}

func (s *webService) writeUserError(c context.Context, w http.ResponseWriter, httpStatus int, body userError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityError, "Error writing error response: %s", err)
	}
}

func (s *webService) orderStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		resp, err := s.service.getOrderStatus(c, orderUID, token)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) shippingOptionsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		resp, err := s.service.shippingOptions(c, orderUID, token)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) updateAddressPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		address, err := orderapi.AddressFromRequest(r)
		if err != nil {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing address: %s", err)))
			return
		}

		order, err := s.service.updateAddress(c, orderUID, token, address)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) updateShippingMethodPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		req := struct {
			ShippingOptionID string `json:"shipping_option_id"`
		}{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		order, err := s.service.updateShippingMethod(c, orderUID, token, req.ShippingOptionID)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		req := AddItemRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		resp, err := s.service.addItemToDraft(c, orderUID, token, req)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		req := SetQuantityRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		resp, err := s.service.setDraftQuantity(c, orderUID, token, req)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) commitPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		outcome, queued, err := s.service.commitDraft(c, orderUID, token)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		if outcome.Succeeded() {
			responseWriter.Write(c, w, http.StatusOK, CommitResponse{
				Committed:      true,
				ItemsCommitted: outcome.ItemsCommitted,
				ItemsQueued:    queued,
			})
			return
		}

		// Partial commit: the caller must learn exactly how far the batch
		// got, alongside the user-safe failure.
		failure := outcome.Failure
		if failure.Kind == orderapi.ErrorKindAuth {
			s.session.ClearToken(w, orderUID)
		}

		httpStatus := failure.HTTPStatus
		if httpStatus < 400 || httpStatus > 499 {
			httpStatus = http.StatusBadGateway
		}

		message := eligibility.ClassifyError(failure.BackendCode)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		err = json.NewEncoder(w).Encode(CommitResponse{
			Committed:      false,
			ItemsCommitted: outcome.ItemsCommitted,
			ItemsQueued:    queued,
			Retryable:      failure.Retryable,
			Error:          &message,
		})
		if err != nil {
			s.logger.Log(c, orderUID, mylog.SeverityError, "Error writing commit response: %s", err)
		}
	}
}

func (s *webService) discardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		err := s.service.discardDraft(c, orderUID, token)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Pending changes discarded",
		})
	}
}

func (s *webService) cancelPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		orderUID, token, ok := s.resolveToken(w, r)
		if !ok {
			return
		}

		req := struct {
			Reason string `json:"reason"`
		}{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			responseWriter.WriteError(c, w, 6, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		err = s.service.cancelOrder(c, orderUID, token, req.Reason)
		if err != nil {
			s.writeMutationError(c, w, orderUID, err)
			return
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Order cancelled",
		})
	}
}
