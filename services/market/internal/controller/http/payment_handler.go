package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

type WebhookRequest struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	Signature  string `json:"signature"`
}

// CreatePayment godoc
// @Summary      Create provider payment
// @Description  Create a payment for an owned order and return the provider URL
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        order_id path string true "Order ID"
// @Success      201  {object}  entity.PaymentIntent
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /payments/{order_id} [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	userID, _ := currentUser(c)

	intent, err := h.paymentUseCase.CreatePayment(c.Request.Context(), c.Param("order_id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, intent)
}

// Webhook godoc
// @Summary      Payment provider callback
// @Description  Applies a provider status to a payment. Authenticated by the shared secret in the body.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body WebhookRequest true "Provider callback"
// @Success      200  {object}  entity.Payment
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := h.paymentUseCase.HandleWebhook(c.Request.Context(), req.ExternalID, req.Status, req.Signature)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// RefundPayment godoc
// @Summary      Refund payment
// @Description  Reverse the marketer credit of a PAID payment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payment ID"
// @Success      200  {object}  entity.Payment
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/payments/{id}/refund [post]
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	adminID, _ := currentUser(c)

	payment, err := h.paymentUseCase.RefundPayment(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}
