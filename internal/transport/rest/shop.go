package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/service/shop"
)

type shopService interface {
	Products() []domain.Product
	Checkout(ctx context.Context, in shop.PaymentInput) (shop.Order, error)
}

// ShopHandler serves the catalog, the cart and checkout.
type ShopHandler struct {
	svc    shopService
	states stateRegistry
	log    *slog.Logger
}

// NewShopHandler creates a ShopHandler.
func NewShopHandler(svc shopService, states stateRegistry, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{svc: svc, states: states, log: logger.With("handler", "shop")}
}

type cartRequest struct {
	ProductID *int `json:"productId"`
}

type cartResponse struct {
	Items []int            `json:"items"`
	Lines []domain.Product `json:"lines"`
	Total int              `json:"total"`
}

// Products handles GET /api/products.
func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"products": h.svc.Products()})
}

// Cart handles GET /api/cart.
func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r, http.StatusOK)
}

// AddToCart handles POST /api/cart. The id is not checked against the
// catalog; dangling ids are priced at zero and dropped on the next load.
func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if req.ProductID == nil {
		respondError(w, r, h.log, domain.NewValidationError("productId", "required"))
		return
	}

	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := st.AddToCart(r.Context(), *req.ProductID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.writeCart(w, r, http.StatusCreated)
}

// RemoveFromCart handles DELETE /api/cart/{index}. An index outside the cart
// removes nothing.
func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondError(w, r, h.log, domain.NewValidationError("index", "must be an integer"))
		return
	}

	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	removed, err := st.RemoveFromCart(r.Context(), index)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"removed": removed,
		"cart":    cartResponse{Items: st.Cart(), Lines: st.CartLines(), Total: st.CartTotal()},
	})
}

// ClearCart handles DELETE /api/cart.
func (h *ShopHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := st.ClearCart(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/checkout.
func (h *ShopHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req shop.PaymentInput
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	order, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *ShopHandler) writeCart(w http.ResponseWriter, r *http.Request, status int) {
	st, err := h.states.FromContext(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, cartResponse{Items: st.Cart(), Lines: st.CartLines(), Total: st.CartTotal()})
}
