package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkasso/backend/internal/application/collection"
	"github.com/inkasso/backend/internal/interfaces/http/middleware"
)

// AssignmentHandler handles agent-tenant assignment HTTP requests.
// All operations are restricted to platform admins by the service layer.
type AssignmentHandler struct {
	BaseHandler
	assignmentService *collection.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *collection.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// AssignAgentRequest represents the request body for assigning an agent
type AssignAgentRequest struct {
	AgentID string `json:"agent_id" binding:"required,uuid"`
}

// ListForTenant returns the agents assigned to a tenant
func (h *AssignmentHandler) ListForTenant(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	assignments, err := h.assignmentService.ListForTenant(c.Request.Context(), actor, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, assignments)
}

// Assign grants an agent access to a tenant
func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		h.BadRequest(c, "Invalid agent ID")
		return
	}

	assignment, err := h.assignmentService.Assign(c.Request.Context(), actor, agentID, tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, assignment)
}

// Unassign revokes an agent's access to a tenant
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	agentID, err := uuid.Parse(c.Param("agentId"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID")
		return
	}

	if err := h.assignmentService.Unassign(c.Request.Context(), actor, agentID, tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
