package http

import (
	"net/http"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin endpoints that have no owner-facing twin.
type AdminHandler struct {
	leadUseCase  usecase.LeadUseCase
	orderUseCase usecase.OrderUseCase
	auditUseCase usecase.AuditUseCase
	logger       *logger.Logger
}

func NewAdminHandler(leadUseCase usecase.LeadUseCase, orderUseCase usecase.OrderUseCase, auditUseCase usecase.AuditUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		leadUseCase:  leadUseCase,
		orderUseCase: orderUseCase,
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

type LeadStatusRequest struct {
	Status string `json:"status" binding:"required" example:"SOLD"`
}

// UpdateLeadStatus godoc
// @Summary      Force lead status
// @Description  Move a lead forward along NEW, PUBLISHED, SOLD
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lead ID"
// @Param        request body LeadStatusRequest true "Target status"
// @Success      200  {object}  entity.Lead
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/leads/{id}/status [put]
func (h *AdminHandler) UpdateLeadStatus(c *gin.Context) {
	adminID, _ := currentUser(c)

	var req LeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := h.leadUseCase.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// CancelOrder godoc
// @Summary      Cancel order
// @Description  Mark an order CANCELLED. Balances are not reversed.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/orders/{id}/cancel [put]
func (h *AdminHandler) CancelOrder(c *gin.Context) {
	adminID, _ := currentUser(c)

	order, err := h.orderUseCase.CancelOrder(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListAudit godoc
// @Summary      List audit log
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        entity query string false "Entity name, e.g. order"
// @Param        entity_id query string false "Entity ID"
// @Param        user_id query string false "Actor"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/audit [get]
func (h *AdminHandler) ListAudit(c *gin.Context) {
	limit, offset := pagination(c, 20)
	filter := entity.AuditFilter{
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		UserID:   c.Query("user_id"),
		Limit:    limit,
		Offset:   offset,
	}

	logs, err := h.auditUseCase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
