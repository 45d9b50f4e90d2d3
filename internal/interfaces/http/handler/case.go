package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/application/collection"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

// CaseHandler handles case lifecycle HTTP requests
type CaseHandler struct {
	BaseHandler
	caseService *collection.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *collection.CaseService) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
	}
}

// CaseListQuery represents query parameters for case listing
type CaseListQuery struct {
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
	DebtorID string `form:"debtor_id" binding:"omitempty,uuid"`
	Status   string `form:"status"`
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AdvanceCaseRequest represents the request body for a status transition
type AdvanceCaseRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Note         string `json:"note" binding:"omitempty,max=2000"`
}

// List returns the cases visible to the caller
func (h *CaseHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query CaseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	input := collection.ListCasesInput{
		Status:   query.Status,
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
	if query.DebtorID != "" {
		id, err := uuid.Parse(query.DebtorID)
		if err != nil {
			h.BadRequest(c, "Invalid debtor ID")
			return
		}
		input.DebtorID = &id
	}

	result, err := h.caseService.List(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Cases, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single case including its transition history
func (h *CaseHandler) GetByID(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	result, err := h.caseService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Advance moves a case to a new lifecycle status
func (h *CaseHandler) Advance(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	var req AdvanceCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.caseService.Advance(c.Request.Context(), actor, id, collection.AdvanceCaseInput{
		TargetStatus: req.TargetStatus,
		Note:         req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History returns the append-only transition history of a case
func (h *CaseHandler) History(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case ID")
		return
	}

	entries, err := h.caseService.History(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
