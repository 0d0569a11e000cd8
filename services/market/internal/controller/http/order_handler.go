package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUseCase   usecase.OrderUseCase
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewOrderHandler(orderUseCase usecase.OrderUseCase, paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUseCase:   orderUseCase,
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

// PurchaseLead godoc
// @Summary      Purchase lead
// @Description  Buy a published lead. Balances move and the lead is marked SOLD in one transaction.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        lead_id path string true "Lead ID"
// @Success      201  {object}  entity.Order
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /orders/{lead_id} [post]
func (h *OrderHandler) PurchaseLead(c *gin.Context) {
	userID, _ := currentUser(c)

	order, err := h.orderUseCase.PurchaseLead(c.Request.Context(), c.Param("lead_id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListMyOrders godoc
// @Summary      List own orders
// @Description  Orders of the authenticated manager grouped by lead type
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, _ := currentUser(c)

	groups, err := h.orderUseCase.ListOrdersByManager(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}

// GetOrder godoc
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := currentUser(c)

	order, err := h.orderUseCase.GetOrderForManager(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetOrderPayments godoc
// @Summary      List order payments
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/payments [get]
func (h *OrderHandler) GetOrderPayments(c *gin.Context) {
	userID, role := currentUser(c)

	payments, err := h.paymentUseCase.GetPaymentsByOrder(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments)})
}
