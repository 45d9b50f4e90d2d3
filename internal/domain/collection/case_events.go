package collection

import (
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Case domain event types
const (
	EventTypeCaseCreated       = "CaseCreated"
	EventTypeCaseStatusChanged = "CaseStatusChanged"
)

// CaseCreatedEvent is published when a case is created
type CaseCreatedEvent struct {
	shared.BaseDomainEvent
	Reference string          `json:"reference"`
	Principal decimal.Decimal `json:"principal"`
	Status    CaseStatus      `json:"status"`
}

// NewCaseCreatedEvent creates a new CaseCreatedEvent
func NewCaseCreatedEvent(c *Case) *CaseCreatedEvent {
	return &CaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCaseCreated, AggregateTypeCase, c.ID, c.TenantID),
		Reference:       c.Reference,
		Principal:       c.Principal,
		Status:          c.Status,
	}
}

// CaseStatusChangedEvent is published when a case moves to a new status
type CaseStatusChangedEvent struct {
	shared.BaseDomainEvent
	FromStatus CaseStatus `json:"from_status"`
	ToStatus   CaseStatus `json:"to_status"`
	Override   bool       `json:"override"`
}

// NewCaseStatusChangedEvent creates a new CaseStatusChangedEvent
func NewCaseStatusChangedEvent(c *Case, from, to CaseStatus, override bool) *CaseStatusChangedEvent {
	return &CaseStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCaseStatusChanged, AggregateTypeCase, c.ID, c.TenantID),
		FromStatus:      from,
		ToStatus:        to,
		Override:        override,
	}
}
