package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

type OrdersHandler struct {
	orders port.OrderPlacer
}

func RegisterOrders(mux *http.ServeMux, placer port.OrderPlacer) {
	h := OrdersHandler{placer}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
	mux.HandleFunc("GET /v1/orders", h.GetOrders)
}

func (h OrdersHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostCheckout"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	var req Checkout
	if !decodeJSON(w, r, log, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), sid, req.toDomain())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, toOrder(order))
}

func (h OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.GetOrders"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	writeJSON(w, log, http.StatusOK, toOrders(h.orders.Orders(r.Context(), sid)))
}

type NotificationsHandler struct {
	reader port.NotificationReader
}

func RegisterNotifications(mux *http.ServeMux, nr port.NotificationReader) {
	h := NotificationsHandler{nr}
	mux.HandleFunc("GET /v1/notifications", h.GetNotifications)
}

func (h NotificationsHandler) GetNotifications(
	w http.ResponseWriter, r *http.Request,
) {
	const op = "NotificationsHandler.GetNotifications"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	ns, err := h.reader.Notifications(r.Context(), sid)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toNotifications(ns))
}
