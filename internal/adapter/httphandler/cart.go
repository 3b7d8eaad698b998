package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(mux *http.ServeMux, cm port.CartManager) {
	h := CartHandler{cm}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	s, err := h.cart.Cart(r.Context(), sid)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCart(s))
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	s, err := h.cart.ClearCart(r.Context(), sid)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCart(s))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	var req AddCartItem
	if !decodeJSON(w, r, log, &req) {
		return
	}

	s, err := h.cart.AddToCart(r.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, log.With("productID", req.ProductID), err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCart(s))
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	var req UpdateCartItem
	if !decodeJSON(w, r, log, &req) {
		return
	}

	s, err := h.cart.UpdateQuantity(r.Context(), sid, r.PathValue("id"), req.Quantity)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCart(s))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	s, err := h.cart.RemoveFromCart(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCart(s))
}
