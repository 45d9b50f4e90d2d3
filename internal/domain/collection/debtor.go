package collection

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RiskClass grades a debtor's expected collectability
type RiskClass string

const (
	RiskClassLow    RiskClass = "LOW"
	RiskClassMedium RiskClass = "MEDIUM"
	RiskClassHigh   RiskClass = "HIGH"
)

// IsValid checks if the risk class is defined
func (r RiskClass) IsValid() bool {
	switch r {
	case RiskClassLow, RiskClassMedium, RiskClassHigh:
		return true
	}
	return false
}

// Debtor represents the party owing money under one or more cases.
// Debtors are created by the intake collaborator; this core reads them for
// scoping and blocks tenant deletion while any debtor references the tenant.
type Debtor struct {
	shared.TenantAggregateRoot
	FirstName   string
	LastName    string
	CompanyName string // Set for corporate debtors
	Email       string
	Phone       string
	Street      string
	PostalCode  string
	City        string
	Country     string // ISO 3166-1 alpha-2
	RiskClass   RiskClass
	// Outstanding is the aggregate open balance across the debtor's cases,
	// maintained by the store
	Outstanding decimal.Decimal
}

// NewDebtor creates a new debtor under the given tenant
func NewDebtor(tenantID uuid.UUID, firstName, lastName, companyName string) (*Debtor, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	companyName = strings.TrimSpace(companyName)

	if lastName == "" && companyName == "" {
		return nil, shared.NewDomainError("INVALID_DEBTOR_NAME", "Debtor requires a last name or a company name")
	}

	return &Debtor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FirstName:           firstName,
		LastName:            lastName,
		CompanyName:         companyName,
		RiskClass:           RiskClassMedium,
		Outstanding:         decimal.Zero,
	}, nil
}

// DisplayName returns the company name for corporate debtors,
// otherwise the person's full name
func (d *Debtor) DisplayName() string {
	if d.CompanyName != "" {
		return d.CompanyName
	}
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// SetRiskClass updates the debtor's risk classification
func (d *Debtor) SetRiskClass(riskClass RiskClass) error {
	if !riskClass.IsValid() {
		return shared.NewDomainError("INVALID_RISK_CLASS", "Unknown risk class")
	}

	d.RiskClass = riskClass
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetContact updates the debtor's contact fields
func (d *Debtor) SetContact(email, phone string) error {
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	d.Email = strings.ToLower(strings.TrimSpace(email))
	d.Phone = strings.TrimSpace(phone)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetAddress updates the debtor's postal address
func (d *Debtor) SetAddress(street, postalCode, city, country string) {
	d.Street = strings.TrimSpace(street)
	d.PostalCode = strings.TrimSpace(postalCode)
	d.City = strings.TrimSpace(city)
	d.Country = strings.ToUpper(strings.TrimSpace(country))
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}
