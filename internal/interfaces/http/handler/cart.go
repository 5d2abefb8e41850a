package handler

import (
	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.PUT("/items", h.SetItem)
	cart.DELETE("/items/:productId", h.RemoveItem)
	cart.DELETE("", h.Clear)
}

// Get returns the caller's cart
func (h *CartHandler) Get(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.cartService.Get(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetItem upserts one cart line
func (h *CartHandler) SetItem(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.SetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	resp, err := h.cartService.SetItem(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes one cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), caller, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), caller); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
