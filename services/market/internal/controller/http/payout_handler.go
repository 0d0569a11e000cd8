package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PayoutHandler struct {
	payoutUseCase usecase.PayoutUseCase
	logger        *logger.Logger
}

func NewPayoutHandler(payoutUseCase usecase.PayoutUseCase, logger *logger.Logger) *PayoutHandler {
	return &PayoutHandler{
		payoutUseCase: payoutUseCase,
		logger:        logger,
	}
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"50.00"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RequestPayout godoc
// @Summary      Request payout
// @Description  Ask to withdraw funds. The balance is checked now and again at approval.
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AmountRequest true "Payout amount"
// @Success      201  {object}  entity.Payout
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /payouts [post]
func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	userID, _ := currentUser(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payout, err := h.payoutUseCase.RequestPayout(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, payout)
}

// ListMyPayouts godoc
// @Summary      List own payouts
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of payouts"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /payouts [get]
func (h *PayoutHandler) ListMyPayouts(c *gin.Context) {
	userID, _ := currentUser(c)
	limit, offset := pagination(c, 50)

	payouts, err := h.payoutUseCase.ListMyPayouts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts, "count": len(payouts)})
}

// GetPayout godoc
// @Summary      Get payout
// @Tags         payouts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payout ID"
// @Success      200  {object}  entity.Payout
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /payouts/{id} [get]
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	userID, role := currentUser(c)

	payout, err := h.payoutUseCase.GetPayout(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}

// ListPayouts godoc
// @Summary      List payouts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "PENDING, APPROVED, REJECTED or COMPLETED"
// @Param        user_id query string false "Owner"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/payouts [get]
func (h *PayoutHandler) ListPayouts(c *gin.Context) {
	limit, offset := pagination(c, 20)
	filter := entity.ListFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
		Limit:  limit,
		Offset: offset,
	}

	payouts, total, err := h.payoutUseCase.ListPayouts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payouts": payouts, "total": total})
}

// ApprovePayout godoc
// @Summary      Approve payout
// @Description  Debit the owner and mark the payout APPROVED
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payout ID"
// @Success      200  {object}  entity.Payout
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/payouts/{id}/approve [put]
func (h *PayoutHandler) ApprovePayout(c *gin.Context) {
	adminID, _ := currentUser(c)

	payout, err := h.payoutUseCase.ApprovePayout(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}

// RejectPayout godoc
// @Summary      Reject payout
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payout ID"
// @Param        request body RejectRequest true "Rejection reason"
// @Success      200  {object}  entity.Payout
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/payouts/{id}/reject [put]
func (h *PayoutHandler) RejectPayout(c *gin.Context) {
	adminID, _ := currentUser(c)

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payout, err := h.payoutUseCase.RejectPayout(c.Request.Context(), c.Param("id"), adminID, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}

// CompletePayout godoc
// @Summary      Complete payout
// @Description  Mark an APPROVED payout as paid out
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Payout ID"
// @Success      200  {object}  entity.Payout
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/payouts/{id}/complete [put]
func (h *PayoutHandler) CompletePayout(c *gin.Context) {
	adminID, _ := currentUser(c)

	payout, err := h.payoutUseCase.CompletePayout(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, payout)
}
