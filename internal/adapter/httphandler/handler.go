package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Services are the inbound ports served over HTTP.
type Services interface {
	port.ShopBrowser
	port.SuggestionFinder
	port.CartManager
	port.WishlistManager
	port.OrderPlacer
	port.NotificationReader
}

// NewHandler returns the routes of the storefront API bound to the
// visitor session.
func NewHandler(s Services) http.Handler {
	mux := http.NewServeMux()
	RegisterShop(mux, s, s)
	RegisterCart(mux, s)
	RegisterWishlist(mux, s)
	RegisterOrders(mux, s)
	RegisterNotifications(mux, s)
	return Session(AllowJSON(mux))
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func decodeJSON(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

// writeError maps a service error to a response status.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidCheckout):
		http.Error(w, reason(err, domain.ErrInvalidCheckout), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrEmptyCart):
		http.Error(w, domain.ErrEmptyCart.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		http.Error(w, domain.ErrSnapshotUnavailable.Error(), http.StatusServiceUnavailable)
		log.Error("session storage unavailable", "err", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
		log.Info("request cancelled", "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected error", "err", err)
	}
}

// reason cuts the operation prefixes off err, starting the message at
// the sentinel.
func reason(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}
