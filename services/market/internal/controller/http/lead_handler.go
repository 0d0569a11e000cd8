package http

import (
	"net/http"
	"strconv"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LeadHandler struct {
	leadUseCase usecase.LeadUseCase
	logger      *logger.Logger
}

func NewLeadHandler(leadUseCase usecase.LeadUseCase, logger *logger.Logger) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
		logger:      logger,
	}
}

type CreateLeadRequest struct {
	LeadTypeID  string          `json:"lead_type_id" binding:"required"`
	City        string          `json:"city"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"100.00"`
	Phone       string          `json:"phone" binding:"required"`
	FullName    string          `json:"full_name"`
	ConsentText string          `json:"consent_text" binding:"required"`
}

// CreateLead godoc
// @Summary      Create lead
// @Description  Create a lead with its private contact part and consent record. The lead starts as NEW.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateLeadRequest true "Lead data"
// @Success      201  {object}  entity.Lead
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	userID, _ := currentUser(c)

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lead, err := h.leadUseCase.CreateLead(c.Request.Context(), userID, usecase.CreateLeadInput{
		LeadTypeID:  req.LeadTypeID,
		City:        req.City,
		Price:       req.Price,
		Phone:       req.Phone,
		FullName:    req.FullName,
		ConsentText: req.ConsentText,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// PublishLead godoc
// @Summary      Publish lead
// @Description  Move an owned lead from NEW to PUBLISHED
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lead ID"
// @Success      200  {object}  entity.Lead
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /leads/{id}/publish [post]
func (h *LeadHandler) PublishLead(c *gin.Context) {
	userID, _ := currentUser(c)

	lead, err := h.leadUseCase.PublishLead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ListPublished godoc
// @Summary      List published leads
// @Description  Paginated public view of purchasable leads, optionally filtered by city
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        city query string false "City substring"
// @Success      200  {object}  entity.LeadPage
// @Router       /leads [get]
func (h *LeadHandler) ListPublished(c *gin.Context) {
	filter := entity.LeadFilter{City: c.Query("city")}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	page, err := h.leadUseCase.ListPublished(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListMyLeads godoc
// @Summary      List own leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /leads/mine [get]
func (h *LeadHandler) ListMyLeads(c *gin.Context) {
	userID, _ := currentUser(c)

	leads, err := h.leadUseCase.ListMyLeads(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads, "count": len(leads)})
}

// GetFullInfo godoc
// @Summary      Get lead with contact data
// @Description  Available to the owning marketer, the manager holding the successful order, or an admin
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Lead ID"
// @Success      200  {object}  entity.Lead
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /leads/{id}/full [get]
func (h *LeadHandler) GetFullInfo(c *gin.Context) {
	userID, role := currentUser(c)

	lead, err := h.leadUseCase.GetFullInfo(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}
