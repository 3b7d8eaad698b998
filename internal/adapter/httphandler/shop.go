package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/shop"
)

const productsPath = "/v1/products"

type ShopHandler struct {
	browser   port.ShopBrowser
	suggester port.SuggestionFinder
}

func RegisterShop(
	mux *http.ServeMux, b port.ShopBrowser, s port.SuggestionFinder,
) {
	h := ShopHandler{browser: b, suggester: s}
	mux.HandleFunc("GET "+productsPath, h.GetProducts)
	mux.HandleFunc("GET "+productsPath+"/{slug}", h.GetProduct)
	mux.HandleFunc("GET "+productsPath+"/{slug}/suggestions", h.GetSuggestions)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/brands", h.GetBrands)
	mux.HandleFunc("GET /v1/collections/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/collections/flash-sale", h.GetFlashSale)
}

func (h ShopHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetProducts"
	log := slog.With("op", op)

	q := shop.ParseQuery(r.URL.Query())
	page := h.browser.Browse(r.Context(), q)

	resp := ShopPage{
		Items:      toProducts(page.Items),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
	}
	if page.Page > 1 && page.Page <= page.TotalPages {
		resp.Prev = pageLink(q, page.Page-1)
	}
	if page.Page < page.TotalPages {
		resp.Next = pageLink(q, page.Page+1)
	}
	writeJSON(w, log, http.StatusOK, resp)
}

func pageLink(q domain.ShopQuery, page int) string {
	q.Page = page
	v := shop.Values(q)
	if len(v) == 0 {
		return productsPath
	}
	return productsPath + "?" + v.Encode()
}

func (h ShopHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetProduct"
	slug := r.PathValue("slug")
	log := slog.With("op", op, "slug", slug)

	d, err := h.browser.ProductDetails(r.Context(), slug)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toProductDetails(d))
}

func (h ShopHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetSuggestions"
	slug := r.PathValue("slug")
	log := slog.With("op", op, "slug", slug)

	ps, err := h.suggester.Suggestions(r.Context(), slug)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toProducts(ps))
}

func (h ShopHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetCategories"
	log := slog.With("op", op)
	writeJSON(w, log, http.StatusOK, toCategories(h.browser.Categories(r.Context())))
}

func (h ShopHandler) GetBrands(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetBrands"
	log := slog.With("op", op)

	brands := h.browser.Brands(r.Context())
	if brands == nil {
		brands = []string{}
	}
	writeJSON(w, log, http.StatusOK, brands)
}

func (h ShopHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetFeatured"
	log := slog.With("op", op)
	writeJSON(w, log, http.StatusOK, toProducts(h.browser.Featured(r.Context())))
}

func (h ShopHandler) GetFlashSale(w http.ResponseWriter, r *http.Request) {
	const op = "ShopHandler.GetFlashSale"
	log := slog.With("op", op)
	writeJSON(w, log, http.StatusOK, toProducts(h.browser.FlashSale(r.Context())))
}
