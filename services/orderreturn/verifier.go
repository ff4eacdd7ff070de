package orderreturn

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/softloom/storefront/lib/myerrors"
)

//go:generate mockgen -source=verifier.go -package orderreturn -destination verifier_mock.go PaymentIntentVerifier
type PaymentIntentVerifier interface {
	UseAPIKey(key string)
	VerifyPaymentIntent(ctx context.Context, paymentIntentID string) (stripe.PaymentIntent, error)
}

type stripeVerifier struct{}

func NewVerifier() PaymentIntentVerifier {
	return &stripeVerifier{}
}

func (v *stripeVerifier) UseAPIKey(apiKey string) {
	stripe.Key = apiKey
}

func (v *stripeVerifier) VerifyPaymentIntent(ctx context.Context, paymentIntentID string) (stripe.PaymentIntent, error) {
	intent, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return stripe.PaymentIntent{}, myerrors.NewInvalidInputError(fmt.Errorf("error fetching payment-intent: %s", err))
	}

	return *intent, nil
}
