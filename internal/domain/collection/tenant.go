package collection

import (
	"regexp"
	"strings"
	"time"

	"github.com/inkasso/backend/internal/domain/shared"
)

// Tenant represents a creditor organization whose receivables are collected.
// It is the aggregate root for tenant lifecycle operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Name           string
	RegistrationNo string // Business-registry identifier, unique across tenants
	ContactEmail   string
	PayoutIBAN     string // Account the collected funds are paid out to
}

// NewTenant creates a new tenant with the required fields
func NewTenant(name, registrationNo, contactEmail, payoutIBAN string) (*Tenant, error) {
	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	if err := validateRegistrationNo(registrationNo); err != nil {
		return nil, err
	}
	if err := validateContactEmail(contactEmail); err != nil {
		return nil, err
	}
	if err := validateIBAN(payoutIBAN); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		RegistrationNo:    strings.TrimSpace(registrationNo),
		ContactEmail:      strings.ToLower(strings.TrimSpace(contactEmail)),
		PayoutIBAN:        normalizeIBAN(payoutIBAN),
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Update replaces the tenant's mutable fields.
// Registration-number uniqueness is checked by the lifecycle service.
func (t *Tenant) Update(name, registrationNo, contactEmail, payoutIBAN string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	if err := validateRegistrationNo(registrationNo); err != nil {
		return err
	}
	if err := validateContactEmail(contactEmail); err != nil {
		return err
	}
	if err := validateIBAN(payoutIBAN); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.RegistrationNo = strings.TrimSpace(registrationNo)
	t.ContactEmail = strings.ToLower(strings.TrimSpace(contactEmail))
	t.PayoutIBAN = normalizeIBAN(payoutIBAN)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// Validation functions

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func validateRegistrationNo(registrationNo string) error {
	registrationNo = strings.TrimSpace(registrationNo)
	if registrationNo == "" {
		return shared.NewDomainError("INVALID_REGISTRATION_NO", "Registration number cannot be empty")
	}
	if len(registrationNo) > 100 {
		return shared.NewDomainError("INVALID_REGISTRATION_NO", "Registration number cannot exceed 100 characters")
	}
	return nil
}

func validateContactEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_CONTACT_EMAIL", "Contact email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_CONTACT_EMAIL", "Contact email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_CONTACT_EMAIL", "Invalid contact email format")
	}

	return nil
}

// IBAN: two-letter country code, two check digits, up to 30 alphanumerics
var ibanRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

// ValidIBAN reports whether the value is a structurally valid IBAN
// after normalization. It checks shape only, not the checksum.
func ValidIBAN(iban string) bool {
	return ibanRegex.MatchString(normalizeIBAN(iban))
}

func validateIBAN(iban string) error {
	normalized := normalizeIBAN(iban)
	if normalized == "" {
		return shared.NewDomainError("INVALID_IBAN", "Payout IBAN cannot be empty")
	}
	if !ibanRegex.MatchString(normalized) {
		return shared.NewDomainError("INVALID_IBAN", "Invalid payout IBAN format")
	}
	return nil
}

func normalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}
