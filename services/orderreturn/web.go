package orderreturn

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/softloom/storefront/lib/mycontext"
	"github.com/softloom/storefront/lib/myerrors"
	"github.com/softloom/storefront/lib/myhttp"
	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/lib/mypublisher"
	"github.com/softloom/storefront/services/guestsession"
	"github.com/softloom/storefront/services/orderevents"
	"github.com/softloom/storefront/services/ordergateway"
)

type webService struct {
	logger    mylog.Logger
	service   *service
	session   *guestsession.Store
	publisher mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(apiKey string, verifier PaymentIntentVerifier, gateway ordergateway.OrderGateway, session *guestsession.Store, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("orderreturn")
	verifier.UseAPIKey(apiKey)

	return &webService{
		logger:    logger,
		service:   newService(verifier, gateway, time.Sleep, logger),
		session:   session,
		publisher: publisher,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	// Landing route for the redirect back from the payment processor
	router.HandleFunc("/order/return", s.returnPage()).Methods("GET")

	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic: %s", err)
	}

	return nil
}

// returnPage bridges checkout and guest order management: it verifies the
// payment-intent from the redirect, resolves the order behind it, stores the
// modification token in an order-scoped cookie and sends the guest on to the
// order page.
func (s *webService) returnPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		paymentIntentID := r.URL.Query().Get("payment_intent")
		if paymentIntentID == "" {
			responseWriter.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("missing payment_intent parameter"))
			return
		}

		order, err := s.service.resolveOrder(c, paymentIntentID)
		if err != nil {
			responseWriter.WriteError(c, w, 2, err)
			return
		}

		orderID := order.Order.ID

		if order.ModificationToken != "" {
			err = s.session.SetToken(w, orderID, order.ModificationToken)
			if err != nil {
				s.logger.Log(c, orderID, mylog.SeverityWarn, "Error storing token for order %s: %s", orderID, err)
			}
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.GuestSessionStarted{
			OrderUID:         orderID,
			TokenSource:      "payment_intent",
			RemainingSeconds: order.RemainingSeconds,
		})
		if err != nil {
			s.logger.Log(c, orderID, mylog.SeverityWarn, "Error publishing session-started event: %s", err)
		}

		s.logger.Log(c, orderID, mylog.SeverityInfo, "Guest session started for order %s", orderID)

		http.Redirect(w, r, fmt.Sprintf("/order/%s", orderID), http.StatusSeeOther)
	}
}
