package ordergateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/softloom/storefront/lib/myhttpclient"
	"github.com/softloom/storefront/lib/mylog"
	"github.com/softloom/storefront/services/orderapi"
)

const tokenHeaderName = "x-modification-token"

// ErrOrderNotYetAvailable is returned by FetchOrderByPaymentIntent while the
// backend has not yet materialized the order for a finished payment. Callers
// are expected to poll.
var ErrOrderNotYetAvailable = fmt.Errorf("order not yet available for payment-intent")

type client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewClient(baseURL string, sender myhttpclient.HTTPSender) OrderGateway {
	return &client{
		baseURL: baseURL,
		sender:  sender,
		logger:  mylog.New("ordergateway"),
	}
}

func (g *client) headers(token string) map[string]string {
	if token == "" {
		return map[string]string{}
	}

	return map[string]string{tokenHeaderName: token}
}

// backendError is the error body shape shared by all backend endpoints.
type backendError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

var eligibilityCodes = map[string]bool{
	"ORDER_FULFILLED":      true,
	"PAYMENT_CAPTURED":     true,
	"PAYMENT_AUTH_INVALID": true,
	"ORDER_NOT_EDITABLE":   true,
	"ORDER_STATE_CHANGED":  true,
}

// interpretFailure maps a non-2xx backend response onto the uniform
// taxonomy. The backend message is carried for logging only.
func (g *client) interpretFailure(c context.Context, orderID string, httpStatus int, body []byte) *orderapi.MutationError {
	payload := backendError{}
	// A malformed error body still classifies on status alone.
	_ = json.Unmarshal(body, &payload)

	g.logger.Log(c, orderID, mylog.SeverityWarn, "Backend rejected request: status:%d, code:%s, msg:%s", httpStatus, payload.Code, payload.Message)

	switch {
	case httpStatus == http.StatusUnauthorized || httpStatus == http.StatusForbidden:
		return orderapi.NewAuthFailure(httpStatus, payload.Code, payload.Message)
	case httpStatus == http.StatusPaymentRequired:
		return orderapi.NewPaymentFailure(payload.Retryable, payload.Code, payload.Message)
	case httpStatus == http.StatusConflict:
		return orderapi.NewConflict(payload.Code, payload.Message)
	case eligibilityCodes[payload.Code]:
		return orderapi.NewEligibilityFailure(payload.Code, payload.Message)
	default:
		return orderapi.NewGenericFailure(httpStatus, payload.Code, payload.Message)
	}
}

func (g *client) FetchOrder(c context.Context, orderID string, token string) (orderapi.GuestOrder, error) {
	u := fmt.Sprintf("%s/store/orders/%s", g.baseURL, orderID)

	httpStatus, respBody, err := g.sender.Send(c, http.MethodGet, u, g.headers(token), nil)
	if err != nil {
		return orderapi.GuestOrder{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.GuestOrder{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := struct {
		Order        orderapi.OrderSnapshot      `json:"order"`
		Modification orderapi.ModificationStatus `json:"modification"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.GuestOrder{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding order response: %s", err))
	}

	return orderapi.GuestOrder{
		Order:        resp.Order,
		Modification: resp.Modification,
	}, nil
}

func (g *client) FetchShippingOptions(c context.Context, orderID string, token string) (orderapi.ShippingOptionList, error) {
	u := fmt.Sprintf("%s/store/orders/%s/shipping-options", g.baseURL, orderID)

	httpStatus, respBody, err := g.sender.Send(c, http.MethodGet, u, g.headers(token), nil)
	if err != nil {
		return orderapi.ShippingOptionList{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.ShippingOptionList{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := orderapi.ShippingOptionList{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.ShippingOptionList{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding shipping-options response: %s", err))
	}

	return resp, nil
}

func (g *client) FetchOrderByPaymentIntent(c context.Context, paymentIntentID string) (orderapi.PaymentIntentOrder, error) {
	u := fmt.Sprintf("%s/store/orders/by-payment-intent?payment_intent_id=%s", g.baseURL, url.QueryEscape(paymentIntentID))

	httpStatus, respBody, err := g.sender.Send(c, http.MethodGet, u, g.headers(""), nil)
	if err != nil {
		return orderapi.PaymentIntentOrder{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if httpStatus == http.StatusNotFound {
		// The backend creates the order asynchronously after payment.
		return orderapi.PaymentIntentOrder{}, ErrOrderNotYetAvailable
	}
	if !isSuccess(httpStatus) {
		return orderapi.PaymentIntentOrder{}, g.interpretFailure(c, paymentIntentID, httpStatus, respBody)
	}

	resp := struct {
		Order               orderapi.OrderSnapshot `json:"order"`
		ModificationToken   string                 `json:"modification_token"`
		RemainingSeconds    int                    `json:"remaining_seconds"`
		ModificationAllowed bool                   `json:"modification_allowed"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.PaymentIntentOrder{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding by-payment-intent response: %s", err))
	}

	return orderapi.PaymentIntentOrder{
		Order:               resp.Order,
		ModificationToken:   resp.ModificationToken,
		RemainingSeconds:    resp.RemainingSeconds,
		ModificationAllowed: resp.ModificationAllowed,
	}, nil
}

func (g *client) UpdateAddress(c context.Context, orderID string, token string, address orderapi.Address) (orderapi.OrderSnapshot, error) {
	u := fmt.Sprintf("%s/store/orders/%s/address", g.baseURL, orderID)

	reqBody, err := json.Marshal(struct {
		Address orderapi.Address `json:"address"`
	}{Address: address})
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(0, "", fmt.Sprintf("error encoding address: %s", err))
	}

	httpStatus, respBody, err := g.sender.Send(c, http.MethodPost, u, g.headers(token), reqBody)
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.OrderSnapshot{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := struct {
		Order orderapi.OrderSnapshot `json:"order"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding address response: %s", err))
	}

	return resp.Order, nil
}

func (g *client) UpdateShippingMethod(c context.Context, orderID string, token string, shippingOptionID string) (orderapi.OrderSnapshot, error) {
	u := fmt.Sprintf("%s/store/orders/%s/shipping-method", g.baseURL, orderID)

	reqBody, err := json.Marshal(struct {
		ShippingOptionID string `json:"shipping_option_id"`
	}{ShippingOptionID: shippingOptionID})
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(0, "", fmt.Sprintf("error encoding shipping-method: %s", err))
	}

	httpStatus, respBody, err := g.sender.Send(c, http.MethodPost, u, g.headers(token), reqBody)
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.OrderSnapshot{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := struct {
		Order orderapi.OrderSnapshot `json:"order"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.OrderSnapshot{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding shipping-method response: %s", err))
	}

	return resp.Order, nil
}

func (g *client) AddLineItem(c context.Context, orderID string, token string, variantID string, quantity int) (orderapi.NewTotal, error) {
	u := fmt.Sprintf("%s/store/orders/%s/line-items", g.baseURL, orderID)

	if quantity <= 0 {
		return orderapi.NewTotal{}, orderapi.NewValidationFailure(fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	reqBody, err := json.Marshal(struct {
		VariantID string `json:"variant_id"`
		Quantity  int    `json:"quantity"`
	}{VariantID: variantID, Quantity: quantity})
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(0, "", fmt.Sprintf("error encoding line-item: %s", err))
	}

	httpStatus, respBody, err := g.sender.Send(c, http.MethodPost, u, g.headers(token), reqBody)
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.NewTotal{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := struct {
		Order struct {
			Total int64 `json:"total"`
		} `json:"order"`
	}{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding line-item response: %s", err))
	}

	return orderapi.NewTotal{Total: resp.Order.Total}, nil
}

func (g *client) UpdateLineItemQuantity(c context.Context, orderID string, token string, lineItemID string, quantity int) (orderapi.NewTotal, error) {
	u := fmt.Sprintf("%s/store/orders/%s/line-items/update", g.baseURL, orderID)

	if quantity < 0 {
		return orderapi.NewTotal{}, orderapi.NewValidationFailure(fmt.Sprintf("quantity must not be negative, got %d", quantity))
	}

	reqBody, err := json.Marshal(struct {
		LineItemID string `json:"line_item_id"`
		Quantity   int    `json:"quantity"`
	}{LineItemID: lineItemID, Quantity: quantity})
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(0, "", fmt.Sprintf("error encoding quantity update: %s", err))
	}

	httpStatus, respBody, err := g.sender.Send(c, http.MethodPost, u, g.headers(token), reqBody)
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return orderapi.NewTotal{}, g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	resp := orderapi.NewTotal{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return orderapi.NewTotal{}, orderapi.NewGenericFailure(httpStatus, "", fmt.Sprintf("error decoding quantity-update response: %s", err))
	}

	return resp, nil
}

func (g *client) CancelOrder(c context.Context, orderID string, token string, reason string) error {
	u := fmt.Sprintf("%s/store/orders/%s/cancel", g.baseURL, orderID)

	reqBody, err := json.Marshal(struct {
		Reason string `json:"reason"`
	}{Reason: reason})
	if err != nil {
		return orderapi.NewGenericFailure(0, "", fmt.Sprintf("error encoding cancellation: %s", err))
	}

	httpStatus, respBody, err := g.sender.Send(c, http.MethodPost, u, g.headers(token), reqBody)
	if err != nil {
		return orderapi.NewGenericFailure(0, "", err.Error())
	}
	if !isSuccess(httpStatus) {
		return g.interpretFailure(c, orderID, httpStatus, respBody)
	}

	return nil
}

func isSuccess(httpStatus int) bool {
	return httpStatus >= 200 && httpStatus < 300
}
