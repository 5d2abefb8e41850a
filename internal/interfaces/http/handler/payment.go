package handler

import (
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(orderService *orderapp.Service) *PaymentHandler {
	return &PaymentHandler{orderService: orderService}
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payment", h.Pay)
}

// Pay settles a pending order with the mock payment method
func (h *PaymentHandler) Pay(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return
	}

	resp, err := h.orderService.Pay(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
