package eligibility

// UserMessage is the only error shape that may reach a rendered page. No
// message contains backend codes, timestamps or amounts.
type UserMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

const (
	ActionReload         = "reload"
	ActionRetry          = "retry"
	ActionRequestNewLink = "request_new_link"
	ActionContactSupport = "contact_support"
)

// The closed vocabulary of backend error codes. Lookup is case-sensitive;
// callers must not normalize case before calling ClassifyError.
var knownMessages = map[string]UserMessage{
	"ORDER_FULFILLED": {
		Title:   "Order already being prepared",
		Message: "Your order is already being prepared for shipment and can no longer be changed.",
		Action:  ActionContactSupport,
	},
	"PAYMENT_CAPTURED": {
		Title:   "Payment already processed",
		Message: "Your payment has been processed, so the order can no longer be changed.",
		Action:  ActionContactSupport,
	},
	"PAYMENT_AUTH_INVALID": {
		Title:   "Payment needs attention",
		Message: "We could not verify your payment authorization for this change. Please try again or contact support.",
		Action:  ActionContactSupport,
	},
	"UNAUTHORIZED": {
		Title:   "Access denied",
		Message: "You are not allowed to view or change this order. Use the link from your confirmation email.",
		Action:  ActionRequestNewLink,
	},
	"TOKEN_EXPIRED": {
		Title:   "Edit window closed",
		Message: "The time to edit this order has passed. Request a fresh link from your confirmation email.",
		Action:  ActionRequestNewLink,
	},
	"TOKEN_INVALID": {
		Title:   "Link no longer valid",
		Message: "This order link is no longer valid. Request a fresh link from your confirmation email.",
		Action:  ActionRequestNewLink,
	},
	"TOKEN_MISMATCH": {
		Title:   "Link does not match this order",
		Message: "This link belongs to a different order. Use the link from the confirmation email for this order.",
		Action:  ActionRequestNewLink,
	},
	"TOKEN_REQUIRED": {
		Title:   "Link required",
		Message: "To view or change this order, open the link from your confirmation email.",
		Action:  ActionRequestNewLink,
	},
	"RATE_LIMITED": {
		Title:   "Too many attempts",
		Message: "Please wait a moment before trying again.",
		Action:  ActionRetry,
	},
	"ORDER_NOT_EDITABLE": {
		Title:   "Order cannot be changed",
		Message: "This order can no longer be changed.",
		Action:  ActionContactSupport,
	},
	"ORDER_STATE_CHANGED": {
		Title:   "Order was updated elsewhere",
		Message: "This order changed while you were editing it. Reload the page to see its current state.",
		Action:  ActionReload,
	},
}

var fallbackMessage = UserMessage{
	Title:   "Order cannot be changed",
	Message: "We cannot change this order right now. Please try again later or contact support.",
	Action:  ActionContactSupport,
}

// ClassifyError is total: every input, including empty and unknown codes,
// yields a user-safe message. This is what keeps raw backend errors off the
// rendered page.
func ClassifyError(backendCode string) UserMessage {
	if message, known := knownMessages[backendCode]; known {
		return message
	}

	return fallbackMessage
}
