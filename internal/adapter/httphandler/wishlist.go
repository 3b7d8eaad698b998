package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/port"
)

type WishlistHandler struct {
	wishlist port.WishlistManager
}

func RegisterWishlist(mux *http.ServeMux, wm port.WishlistManager) {
	h := WishlistHandler{wm}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/items", h.PostItem)
	mux.HandleFunc("DELETE /v1/wishlist/items/{id}", h.DeleteItem)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	s, err := h.wishlist.Wishlist(r.Context(), sid)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toWishlist(s))
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostItem"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	var req AddWishlistItem
	if !decodeJSON(w, r, log, &req) {
		return
	}

	s, err := h.wishlist.AddToWishlist(r.Context(), sid, req.ProductID)
	if err != nil {
		writeError(w, log.With("productID", req.ProductID), err)
		return
	}
	writeJSON(w, log, http.StatusOK, toWishlist(s))
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteItem"
	sid := SessionID(r.Context())
	log := slog.With("op", op, "session", sid)

	s, err := h.wishlist.RemoveFromWishlist(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toWishlist(s))
}
