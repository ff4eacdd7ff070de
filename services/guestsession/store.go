package guestsession

import (
	"fmt"
	"net/http"

	"github.com/softloom/storefront/lib/mytime"
	"github.com/softloom/storefront/services/guesttoken"
)

const (
	cookiePrefix = "guest_order_"

	// Scoped to the order-management routes only, so a leaked cookie is
	// useless elsewhere on the site.
	cookiePath = "/order"

	queryParamName = "token"
)

type TokenSource string

const (
	SourceNone   TokenSource = ""
	SourceCookie TokenSource = "cookie"
	SourceURL    TokenSource = "url"
)

// Store maps an order id onto the modification token for that order,
// materialized as one cookie per order so concurrent guest sessions for
// different orders do not collide.
type Store struct {
	nower  mytime.Nower
	secure bool
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewStore(nower mytime.Nower, secure bool) *Store {
	return &Store{
		nower:  nower,
		secure: secure,
	}
}

func cookieName(orderID string) string {
	return cookiePrefix + orderID
}

// GetToken looks up the token for the given order: scoped cookie first, URL
// query parameter second. A token whose decoded subject does not match the
// requested order is silently treated as absent.
func (s *Store) GetToken(r *http.Request, orderID string) (string, TokenSource) {
	cookie, err := r.Cookie(cookieName(orderID))
	if err == nil && s.matchesOrder(cookie.Value, orderID) {
		return cookie.Value, SourceCookie
	}

	fromURL := r.URL.Query().Get(queryParamName)
	if fromURL != "" && s.matchesOrder(fromURL, orderID) {
		return fromURL, SourceURL
	}

	return "", SourceNone
}

func (s *Store) matchesOrder(token string, orderID string) bool {
	claims, ok := guesttoken.Decode(token)
	return ok && claims.SubjectOrderID == orderID
}

// SetToken stores the token in an order-scoped cookie. The cookie max-age is
// derived from the token's own remaining TTL so the cookie can never outlive
// the capability it carries. SameSite is Lax, not Strict, because the token
// arrives via a cross-site redirect from the payment processor.
func (s *Store) SetToken(w http.ResponseWriter, orderID string, token string) error {
	if !s.matchesOrder(token, orderID) {
		return fmt.Errorf("token is not scoped to order %s", orderID)
	}

	maxAge := int(guesttoken.RemainingTTL(token, s.nower.Now()).Seconds())
	if maxAge <= 0 {
		// In Go, MaxAge<0 serializes as Max-Age=0: delete immediately.
		maxAge = -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(orderID),
		Value:    token,
		Path:     cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// ClearToken destroys the session for the given order. Every call site that
// receives a 401/403 from the backend while using a guest token must invoke
// this: an authorization rejection always invalidates the local session.
func (s *Store) ClearToken(w http.ResponseWriter, orderID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(orderID),
		Value:    "",
		Path:     cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
