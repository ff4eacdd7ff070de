package ordergateway

import (
	"context"

	"github.com/softloom/storefront/services/orderapi"
)

// OrderGateway is the protocol client for the commerce backend's guest
// order endpoints. Implementations attach the modification token as a
// request header (never a URL parameter) and normalize every response into
// the MutationError taxonomy. No operation is retried here: several backend
// operations are not idempotent, so retry policy belongs to the caller.
//
//go:generate mockgen -source=api.go -package ordergateway -destination gateway_mock.go OrderGateway
type OrderGateway interface {
	FetchOrder(c context.Context, orderID string, token string) (orderapi.GuestOrder, error)
	FetchShippingOptions(c context.Context, orderID string, token string) (orderapi.ShippingOptionList, error)
	FetchOrderByPaymentIntent(c context.Context, paymentIntentID string) (orderapi.PaymentIntentOrder, error)
	UpdateAddress(c context.Context, orderID string, token string, address orderapi.Address) (orderapi.OrderSnapshot, error)
	UpdateShippingMethod(c context.Context, orderID string, token string, shippingOptionID string) (orderapi.OrderSnapshot, error)
	AddLineItem(c context.Context, orderID string, token string, variantID string, quantity int) (orderapi.NewTotal, error)
	UpdateLineItemQuantity(c context.Context, orderID string, token string, lineItemID string, quantity int) (orderapi.NewTotal, error)
	CancelOrder(c context.Context, orderID string, token string, reason string) error
}
