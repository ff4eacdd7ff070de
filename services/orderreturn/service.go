package orderreturn

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v74"

	"github.com/softloom/storefront/lib/myerrors"
	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/services/orderapi"
	"github.com/softloom/storefront/services/ordergateway"
)

const (
	// The backend creates the order asynchronously after payment capture, so
	// the first few lookups right after the redirect may 404.
	maxLookupAttempts = 5
	lookupRetryDelay  = 500 * time.Millisecond
)

type service struct {
	verifier PaymentIntentVerifier
	gateway  ordergateway.OrderGateway
	pause    func(d time.Duration)
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(verifier PaymentIntentVerifier, gateway ordergateway.OrderGateway, pause func(d time.Duration), logger mylog.Logger) *service {
	return &service{
		verifier: verifier,
		gateway:  gateway,
		pause:    pause,
		logger:   logger,
	}
}

// resolveOrder turns the payment-intent id from the checkout redirect into
// the guest order plus its modification token. The intent is verified with
// the payment processor first so a guessed id never resolves to an order.
func (s *service) resolveOrder(c context.Context, paymentIntentID string) (orderapi.PaymentIntentOrder, error) {
	intent, err := s.verifier.VerifyPaymentIntent(c, paymentIntentID)
	if err != nil {
		return orderapi.PaymentIntentOrder{}, myerrors.NewAuthenticationError(fmt.Errorf("error verifying payment-intent %s: %s", paymentIntentID, err))
	}

	if !paymentCompleted(intent.Status) {
		return orderapi.PaymentIntentOrder{}, myerrors.NewAuthenticationError(fmt.Errorf("payment-intent %s has status %s", paymentIntentID, intent.Status))
	}

	for attempt := 1; ; attempt++ {
		order, err := s.gateway.FetchOrderByPaymentIntent(c, paymentIntentID)
		if err == nil {
			return order, nil
		}

		if err != ordergateway.ErrOrderNotYetAvailable || attempt >= maxLookupAttempts {
			return orderapi.PaymentIntentOrder{}, err
		}

		s.logger.Log(c, paymentIntentID, mylog.SeverityInfo, "Order for payment-intent %s not yet available, attempt %d of %d", paymentIntentID, attempt, maxLookupAttempts)
		s.pause(lookupRetryDelay)
	}
}

func paymentCompleted(status stripe.PaymentIntentStatus) bool {
	return status == stripe.PaymentIntentStatusSucceeded ||
		status == stripe.PaymentIntentStatusRequiresCapture ||
		status == stripe.PaymentIntentStatusProcessing
}
