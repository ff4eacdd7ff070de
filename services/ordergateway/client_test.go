package ordergateway

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/softloom/storefront/lib/myhttpclient"
	"github.com/softloom/storefront/services/orderapi"
)

const (
	baseURL = "https://commerce.example.com"
	token   = "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJvcmRlcl8xIn0.c2ln"
)

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, OrderGateway, *myhttpclient.MockHTTPSender) {
	t.Helper()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	return context.TODO(), NewClient(baseURL, sender), sender
}

func tokenHeader() map[string]string {
	return map[string]string{"x-modification-token": token}
}

func TestFetchOrder(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, gateway, sender := setup(t, ctrl)

		// given
		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, baseURL+"/store/orders/order_1", tokenHeader(), nil).
			Return(200, []byte(`{
				"order": {"id":"order_1","currency_code":"eur","total":2500,
					"items":[{"id":"li_1","variant_id":"v1","quantity":1,"unit_price":1000,"subtotal":1000}]},
				"modification": {"can_modify":true,"remaining_seconds":900}
			}`), nil)

		// when
		got, err := gateway.FetchOrder(ctx, "order_1", token)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "order_1", got.Order.ID)
		assert.Equal(t, int64(2500), got.Order.Total)
		assert.Len(t, got.Order.Items, 1)
		assert.True(t, got.Modification.CanModify)
		assert.Equal(t, 900, got.Modification.RemainingSeconds)
	})

	t.Run("Token travels as header, never in the url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, url string, headers map[string]string, _ []byte) (int, []byte, error) {
				assert.NotContains(t, url, token)
				assert.Equal(t, token, headers["x-modification-token"])
				return 200, []byte(`{"order":{"id":"order_1"},"modification":{}}`), nil
			})

		_, err := gateway.FetchOrder(ctx, "order_1", token)
		assert.NoError(t, err)
	})

	t.Run("Malformed success body becomes generic failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(200, []byte(`not json`), nil)

		_, err := gateway.FetchOrder(ctx, "order_1", token)
		assert.Error(t, err)
		assert.Equal(t, orderapi.ErrorKindGeneric, orderapi.AsMutationError(err).Kind)
	})

	t.Run("Transport error becomes generic failure, never a raw error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, []byte{}, errors.New("connection refused"))

		_, err := gateway.FetchOrder(ctx, "order_1", token)
		assert.Error(t, err)
		assert.Equal(t, orderapi.ErrorKindGeneric, orderapi.AsMutationError(err).Kind)
	})
}

func TestFailureInterpretation(t *testing.T) {
	testCases := []struct {
		name            string
		httpStatus      int
		body            string
		expectKind      orderapi.ErrorKind
		expectRetryable bool
		expectCode      string
	}{
		{
			name:       "401 is an auth failure",
			httpStatus: 401,
			body:       `{"code":"TOKEN_EXPIRED","message":"token expired"}`,
			expectKind: orderapi.ErrorKindAuth,
			expectCode: "TOKEN_EXPIRED",
		},
		{
			name:       "403 is an auth failure",
			httpStatus: 403,
			body:       `{"code":"TOKEN_MISMATCH","message":"wrong order"}`,
			expectKind: orderapi.ErrorKindAuth,
			expectCode: "TOKEN_MISMATCH",
		},
		{
			name:            "402 carries the backend retryable flag",
			httpStatus:      402,
			body:            `{"code":"payment_error","message":"card declined","retryable":true}`,
			expectKind:      orderapi.ErrorKindPayment,
			expectRetryable: true,
			expectCode:      "payment_error",
		},
		{
			name:       "402 not retryable",
			httpStatus: 402,
			body:       `{"code":"payment_error","message":"authorization void","retryable":false}`,
			expectKind: orderapi.ErrorKindPayment,
			expectCode: "payment_error",
		},
		{
			name:       "409 is a conflict",
			httpStatus: 409,
			body:       `{"code":"ORDER_STATE_CHANGED","message":"order shipped meanwhile"}`,
			expectKind: orderapi.ErrorKindConflict,
			expectCode: "ORDER_STATE_CHANGED",
		},
		{
			name:       "400 with eligibility code",
			httpStatus: 400,
			body:       `{"code":"ORDER_FULFILLED","message":"already fulfilled"}`,
			expectKind: orderapi.ErrorKindEligibility,
			expectCode: "ORDER_FULFILLED",
		},
		{
			name:       "Other status is generic",
			httpStatus: 500,
			body:       `{"message":"boom"}`,
			expectKind: orderapi.ErrorKindGeneric,
		},
		{
			name:       "Unparseable error body still classifies on status",
			httpStatus: 401,
			body:       `<html>gateway timeout</html>`,
			expectKind: orderapi.ErrorKindAuth,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx, gateway, sender := setup(t, ctrl)

			sender.EXPECT().
				Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/line-items", tokenHeader(), gomock.Any()).
				Return(tc.httpStatus, []byte(tc.body), nil)

			_, err := gateway.AddLineItem(ctx, "order_1", token, "v1", 2)
			assert.Error(t, err)

			mutErr := orderapi.AsMutationError(err)
			assert.Equal(t, tc.expectKind, mutErr.Kind)
			assert.Equal(t, tc.expectRetryable, mutErr.Retryable)
			assert.Equal(t, tc.expectCode, mutErr.BackendCode)
			assert.Equal(t, tc.httpStatus, mutErr.HTTPStatus)
		})
	}
}

func TestMutations(t *testing.T) {

	t.Run("Update address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/address", tokenHeader(), gomock.Any()).
			Return(200, []byte(`{"order":{"id":"order_1","shipping_address":{"city":"Utrecht"}}}`), nil)

		got, err := gateway.UpdateAddress(ctx, "order_1", token, orderapi.Address{City: "Utrecht"})
		assert.NoError(t, err)
		assert.Equal(t, "Utrecht", got.ShippingAddress.City)
	})

	t.Run("Update shipping method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/shipping-method", tokenHeader(), []byte(`{"shipping_option_id":"so_express"}`)).
			Return(200, []byte(`{"order":{"id":"order_1","shipping_total":495}}`), nil)

		got, err := gateway.UpdateShippingMethod(ctx, "order_1", token, "so_express")
		assert.NoError(t, err)
		assert.Equal(t, int64(495), got.ShippingTotal)
	})

	t.Run("Add line item returns new total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/line-items", tokenHeader(), []byte(`{"variant_id":"v2","quantity":1}`)).
			Return(200, []byte(`{"order":{"total":3000}}`), nil)

		got, err := gateway.AddLineItem(ctx, "order_1", token, "v2", 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), got.Total)
	})

	t.Run("Add line item rejects non-positive quantity before any network call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, _ := setup(t, ctrl)

		_, err := gateway.AddLineItem(ctx, "order_1", token, "v2", 0)
		assert.Error(t, err)
		assert.Equal(t, orderapi.ErrorKindValidation, orderapi.AsMutationError(err).Kind)
	})

	t.Run("Update quantity returns new total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/line-items/update", tokenHeader(), []byte(`{"line_item_id":"li_1","quantity":3}`)).
			Return(200, []byte(`{"new_total":4500}`), nil)

		got, err := gateway.UpdateLineItemQuantity(ctx, "order_1", token, "li_1", 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(4500), got.Total)
	})

	t.Run("Update quantity to zero is a removal and is allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, gomock.Any(), tokenHeader(), []byte(`{"line_item_id":"li_1","quantity":0}`)).
			Return(200, []byte(`{"new_total":1500}`), nil)

		_, err := gateway.UpdateLineItemQuantity(ctx, "order_1", token, "li_1", 0)
		assert.NoError(t, err)
	})

	t.Run("Cancel order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/cancel", tokenHeader(), []byte(`{"reason":"changed my mind"}`)).
			Return(200, []byte(`{}`), nil)

		err := gateway.CancelOrder(ctx, "order_1", token, "changed my mind")
		assert.NoError(t, err)
	})

	t.Run("Cancel conflicts when order shipped meanwhile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, baseURL+"/store/orders/order_1/cancel", tokenHeader(), gomock.Any()).
			Return(409, []byte(`{"code":"ORDER_STATE_CHANGED","message":"already shipped"}`), nil)

		err := gateway.CancelOrder(ctx, "order_1", token, "too late")
		assert.Error(t, err)
		assert.Equal(t, orderapi.ErrorKindConflict, orderapi.AsMutationError(err).Kind)
	})
}

func TestFetchOrderByPaymentIntent(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, baseURL+"/store/orders/by-payment-intent?payment_intent_id=pi_123", map[string]string{}, nil).
			Return(200, []byte(`{"order":{"id":"order_1"},"modification_token":"`+token+`","remaining_seconds":900,"modification_allowed":true}`), nil)

		got, err := gateway.FetchOrderByPaymentIntent(ctx, "pi_123")
		assert.NoError(t, err)
		assert.Equal(t, "order_1", got.Order.ID)
		assert.Equal(t, token, got.ModificationToken)
		assert.True(t, got.ModificationAllowed)
	})

	t.Run("Not found means not yet created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, gateway, sender := setup(t, ctrl)

		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(404, []byte(`{}`), nil)

		_, err := gateway.FetchOrderByPaymentIntent(ctx, "pi_123")
		assert.ErrorIs(t, err, ErrOrderNotYetAvailable)
	})
}
