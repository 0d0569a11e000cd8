package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TopupHandler struct {
	topupUseCase usecase.TopupUseCase
	logger       *logger.Logger
}

func NewTopupHandler(topupUseCase usecase.TopupUseCase, logger *logger.Logger) *TopupHandler {
	return &TopupHandler{
		topupUseCase: topupUseCase,
		logger:       logger,
	}
}

// RequestTopup godoc
// @Summary      Request topup
// @Tags         topups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AmountRequest true "Topup amount"
// @Success      201  {object}  entity.Topup
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /topups [post]
func (h *TopupHandler) RequestTopup(c *gin.Context) {
	userID, _ := currentUser(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	topup, err := h.topupUseCase.RequestTopup(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, topup)
}

// ListMyTopups godoc
// @Summary      List own topups
// @Tags         topups
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of topups"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /topups [get]
func (h *TopupHandler) ListMyTopups(c *gin.Context) {
	userID, _ := currentUser(c)
	limit, offset := pagination(c, 50)

	topups, err := h.topupUseCase.ListMyTopups(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topups": topups, "count": len(topups)})
}

// GetTopup godoc
// @Summary      Get topup
// @Tags         topups
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Topup ID"
// @Success      200  {object}  entity.Topup
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /topups/{id} [get]
func (h *TopupHandler) GetTopup(c *gin.Context) {
	userID, role := currentUser(c)

	topup, err := h.topupUseCase.GetTopup(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, topup)
}

// ListTopups godoc
// @Summary      List topups
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "PENDING, APPROVED or REJECTED"
// @Param        user_id query string false "Owner"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/topups [get]
func (h *TopupHandler) ListTopups(c *gin.Context) {
	limit, offset := pagination(c, 20)
	filter := entity.ListFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
		Limit:  limit,
		Offset: offset,
	}

	topups, total, err := h.topupUseCase.ListTopups(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topups": topups, "total": total})
}

// ApproveTopup godoc
// @Summary      Approve topup
// @Description  Credit the owner and mark the topup APPROVED
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Topup ID"
// @Success      200  {object}  entity.Topup
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/topups/{id}/approve [put]
func (h *TopupHandler) ApproveTopup(c *gin.Context) {
	adminID, _ := currentUser(c)

	topup, err := h.topupUseCase.ApproveTopup(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, topup)
}

// RejectTopup godoc
// @Summary      Reject topup
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Topup ID"
// @Param        request body RejectRequest true "Rejection reason"
// @Success      200  {object}  entity.Topup
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/topups/{id}/reject [put]
func (h *TopupHandler) RejectTopup(c *gin.Context) {
	adminID, _ := currentUser(c)

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	topup, err := h.topupUseCase.RejectTopup(c.Request.Context(), c.Param("id"), adminID, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, topup)
}
