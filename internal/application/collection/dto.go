package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/collection"
)

// TenantSummaryDTO carries the aggregate figures attached to a tenant
type TenantSummaryDTO struct {
	DebtorCount int64  `json:"debtor_count"`
	OpenCases   int64  `json:"open_cases"`
	TotalVolume string `json:"total_volume"`
}

// TenantDTO represents tenant data transfer object
type TenantDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	RegistrationNo string           `json:"registration_no"`
	ContactEmail   string           `json:"contact_email"`
	PayoutIBAN     string           `json:"payout_iban"`
	Summary        TenantSummaryDTO `json:"summary"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TenantListResult represents a paginated tenant list
type TenantListResult struct {
	Tenants    []TenantDTO `json:"tenants"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	Name           string
	RegistrationNo string
	ContactEmail   string
	PayoutIBAN     string
}

// UpdateTenantInput contains input for updating a tenant
type UpdateTenantInput struct {
	Name           string
	RegistrationNo string
	ContactEmail   string
	PayoutIBAN     string
}

// ListTenantsInput contains input for listing tenants
type ListTenantsInput struct {
	Keyword  string
	Page     int
	PageSize int
	// AssignedToMe intersects the result with the caller's own
	// agent-assignment set. Display filter, not an authorization scope.
	AssignedToMe bool
}

// DebtorDTO represents debtor data transfer object
type DebtorDTO struct {
	ID          uuid.UUID            `json:"id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	DisplayName string               `json:"display_name"`
	FirstName   string               `json:"first_name,omitempty"`
	LastName    string               `json:"last_name,omitempty"`
	CompanyName string               `json:"company_name,omitempty"`
	Email       string               `json:"email,omitempty"`
	Phone       string               `json:"phone,omitempty"`
	City        string               `json:"city,omitempty"`
	Country     string               `json:"country,omitempty"`
	RiskClass   collection.RiskClass `json:"risk_class"`
	Outstanding string               `json:"outstanding"`
	CreatedAt   time.Time            `json:"created_at"`
}

// DebtorListResult represents a paginated debtor list
type DebtorListResult struct {
	Debtors    []DebtorDTO `json:"debtors"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// ListDebtorsInput contains input for listing debtors
type ListDebtorsInput struct {
	TenantID *uuid.UUID
	Keyword  string
	Page     int
	PageSize int
}

// CaseHistoryEntryDTO represents a single status transition
type CaseHistoryEntryDTO struct {
	ID         uuid.UUID `json:"id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorRole  string    `json:"actor_role"`
	Note       string    `json:"note,omitempty"`
	Override   bool      `json:"override"`
	CreatedAt  time.Time `json:"created_at"`
}

// CaseDTO represents case data transfer object
type CaseDTO struct {
	ID             uuid.UUID             `json:"id"`
	TenantID       uuid.UUID             `json:"tenant_id"`
	DebtorID       uuid.UUID             `json:"debtor_id"`
	Reference      string                `json:"reference"`
	Principal      string                `json:"principal"`
	Fees           string                `json:"fees"`
	Interest       string                `json:"interest"`
	TotalAmount    string                `json:"total_amount"`
	Currency       string                `json:"currency"`
	Status         string                `json:"status"`
	Closed         bool                  `json:"closed"`
	CourtFileRef   string                `json:"court_file_ref,omitempty"`
	NextActionDate *time.Time            `json:"next_action_date,omitempty"`
	History        []CaseHistoryEntryDTO `json:"history,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// CaseListResult represents a paginated case list
type CaseListResult struct {
	Cases      []CaseDTO `json:"cases"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// ListCasesInput contains input for listing cases
type ListCasesInput struct {
	TenantID *uuid.UUID
	DebtorID *uuid.UUID
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

// AdvanceCaseInput contains input for a case status transition
type AdvanceCaseInput struct {
	TargetStatus string
	Note         string
}

// AssignmentDTO represents an agent-tenant assignment
type AssignmentDTO struct {
	ID        uuid.UUID `json:"id"`
	AgentID   uuid.UUID `json:"agent_id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Mappers

func toTenantDTO(tenant *collection.Tenant, summary collection.TenantSummary) TenantDTO {
	return TenantDTO{
		ID:             tenant.ID,
		Name:           tenant.Name,
		RegistrationNo: tenant.RegistrationNo,
		ContactEmail:   tenant.ContactEmail,
		PayoutIBAN:     tenant.PayoutIBAN,
		Summary: TenantSummaryDTO{
			DebtorCount: summary.DebtorCount,
			OpenCases:   summary.OpenCases,
			TotalVolume: summary.TotalVolume.StringFixed(2),
		},
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

func toDebtorDTO(debtor *collection.Debtor) DebtorDTO {
	return DebtorDTO{
		ID:          debtor.ID,
		TenantID:    debtor.TenantID,
		DisplayName: debtor.DisplayName(),
		FirstName:   debtor.FirstName,
		LastName:    debtor.LastName,
		CompanyName: debtor.CompanyName,
		Email:       debtor.Email,
		Phone:       debtor.Phone,
		City:        debtor.City,
		Country:     debtor.Country,
		RiskClass:   debtor.RiskClass,
		Outstanding: debtor.Outstanding.StringFixed(2),
		CreatedAt:   debtor.CreatedAt,
	}
}

func toCaseDTO(c *collection.Case, includeHistory bool) CaseDTO {
	dto := CaseDTO{
		ID:             c.ID,
		TenantID:       c.TenantID,
		DebtorID:       c.DebtorID,
		Reference:      c.Reference,
		Principal:      c.Principal.StringFixed(2),
		Fees:           c.Fees.StringFixed(2),
		Interest:       c.Interest.StringFixed(2),
		TotalAmount:    c.TotalAmount().StringFixed(2),
		Currency:       string(c.Currency),
		Status:         string(c.Status),
		Closed:         c.IsClosed(),
		CourtFileRef:   c.CourtFileRef,
		NextActionDate: c.NextActionDate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if includeHistory {
		dto.History = make([]CaseHistoryEntryDTO, 0, len(c.History))
		for _, entry := range c.History {
			dto.History = append(dto.History, toCaseHistoryEntryDTO(entry))
		}
	}
	return dto
}

func toCaseHistoryEntryDTO(entry collection.CaseHistoryEntry) CaseHistoryEntryDTO {
	return CaseHistoryEntryDTO{
		ID:         entry.ID,
		FromStatus: string(entry.FromStatus),
		ToStatus:   string(entry.ToStatus),
		ActorRole:  entry.ActorRole,
		Note:       entry.Note,
		Override:   entry.Override,
		CreatedAt:  entry.CreatedAt,
	}
}
