package collection

import (
	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
)

// Aggregate type constants for collection
const (
	AggregateTypeTenant = "Tenant"
	AggregateTypeDebtor = "Debtor"
	AggregateTypeCase   = "Case"
)

// Tenant domain event types
const (
	EventTypeTenantCreated = "TenantCreated"
	EventTypeTenantUpdated = "TenantUpdated"
	EventTypeTenantDeleted = "TenantDeleted"
)

// TenantCreatedEvent is published when a tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Name           string `json:"name"`
	RegistrationNo string `json:"registration_no"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Name:            tenant.Name,
		RegistrationNo:  tenant.RegistrationNo,
	}
}

// TenantUpdatedEvent is published when a tenant is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	Name           string `json:"name"`
	RegistrationNo string `json:"registration_no"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(tenant *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Name:            tenant.Name,
		RegistrationNo:  tenant.RegistrationNo,
	}
}

// TenantDeletedEvent is published when a tenant is deleted
type TenantDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewTenantDeletedEvent creates a new TenantDeletedEvent
func NewTenantDeletedEvent(tenantID uuid.UUID, name string) *TenantDeletedEvent {
	return &TenantDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantDeleted, AggregateTypeTenant, tenantID, tenantID),
		Name:            name,
	}
}
