package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/application/collection"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant management HTTP requests
type TenantHandler struct {
	BaseHandler
	tenantService *collection.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *collection.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// List returns the tenants visible to the caller
func (h *TenantHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query TenantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tenantService.List(c.Request.Context(), actor, collection.ListTenantsInput{
		Keyword:      query.Keyword,
		Page:         query.Page,
		PageSize:     query.PageSize,
		AssignedToMe: query.AssignedToMe,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Tenants, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single tenant with its summary figures
func (h *TenantHandler) GetByID(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Create onboards a new creditor tenant
func (h *TenantHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), actor, collection.CreateTenantInput{
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		ContactEmail:   req.ContactEmail,
		PayoutIBAN:     req.PayoutIBAN,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// Update changes a tenant's master data
func (h *TenantHandler) Update(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), actor, id, collection.UpdateTenantInput{
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		ContactEmail:   req.ContactEmail,
		PayoutIBAN:     req.PayoutIBAN,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Delete offboards a tenant. Rejected while debtors or cases still
// reference it.
func (h *TenantHandler) Delete(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
