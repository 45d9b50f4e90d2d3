package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/application/collection"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

// DebtorHandler handles debtor HTTP requests
type DebtorHandler struct {
	BaseHandler
	debtorService *collection.DebtorService
}

// NewDebtorHandler creates a new debtor handler
func NewDebtorHandler(debtorService *collection.DebtorService) *DebtorHandler {
	return &DebtorHandler{
		debtorService: debtorService,
	}
}

// DebtorListQuery represents query parameters for debtor listing
type DebtorListQuery struct {
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List returns the debtors visible to the caller
func (h *DebtorHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query DebtorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	input := collection.ListDebtorsInput{
		Keyword:  query.Keyword,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.TenantID != "" {
		id, err := uuid.Parse(query.TenantID)
		if err != nil {
			h.BadRequest(c, "Invalid tenant ID")
			return
		}
		input.TenantID = &id
	}

	result, err := h.debtorService.List(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Debtors, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single debtor
func (h *DebtorHandler) GetByID(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid debtor ID")
		return
	}

	debtor, err := h.debtorService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, debtor)
}
