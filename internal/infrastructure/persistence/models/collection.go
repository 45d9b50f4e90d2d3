package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/shared/valueobject"
)

// TenantModel is the persistence model for the Tenant aggregate.
type TenantModel struct {
	AggregateModel
	Name           string `gorm:"type:varchar(200);not null"`
	RegistrationNo string `gorm:"type:varchar(100);not null;uniqueIndex"`
	ContactEmail   string `gorm:"type:varchar(200);not null"`
	PayoutIBAN     string `gorm:"type:varchar(34);not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *collection.Tenant {
	tenant := &collection.Tenant{
		Name:           m.Name,
		RegistrationNo: m.RegistrationNo,
		ContactEmail:   m.ContactEmail,
		PayoutIBAN:     m.PayoutIBAN,
	}
	m.PopulateAggregateRoot(&tenant.BaseAggregateRoot)
	return tenant
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *collection.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.RegistrationNo = t.RegistrationNo
	m.ContactEmail = t.ContactEmail
	m.PayoutIBAN = t.PayoutIBAN
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant
func TenantModelFromDomain(t *collection.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// DebtorModel is the persistence model for the Debtor aggregate.
type DebtorModel struct {
	TenantAggregateModel
	FirstName   string               `gorm:"type:varchar(100)"`
	LastName    string               `gorm:"type:varchar(100);index"`
	CompanyName string               `gorm:"type:varchar(200);index"`
	Email       string               `gorm:"type:varchar(200)"`
	Phone       string               `gorm:"type:varchar(50)"`
	Street      string               `gorm:"type:varchar(200)"`
	PostalCode  string               `gorm:"type:varchar(20)"`
	City        string               `gorm:"type:varchar(100)"`
	Country     string               `gorm:"type:varchar(2)"`
	RiskClass   collection.RiskClass `gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	Outstanding decimal.Decimal      `gorm:"type:decimal(14,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (DebtorModel) TableName() string {
	return "debtors"
}

// ToDomain converts the persistence model to a domain Debtor
func (m *DebtorModel) ToDomain() *collection.Debtor {
	debtor := &collection.Debtor{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		CompanyName: m.CompanyName,
		Email:       m.Email,
		Phone:       m.Phone,
		Street:      m.Street,
		PostalCode:  m.PostalCode,
		City:        m.City,
		Country:     m.Country,
		RiskClass:   m.RiskClass,
		Outstanding: m.Outstanding,
	}
	m.PopulateTenantAggregateRoot(&debtor.TenantAggregateRoot)
	return debtor
}

// FromDomain populates the persistence model from a domain Debtor
func (m *DebtorModel) FromDomain(d *collection.Debtor) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.FirstName = d.FirstName
	m.LastName = d.LastName
	m.CompanyName = d.CompanyName
	m.Email = d.Email
	m.Phone = d.Phone
	m.Street = d.Street
	m.PostalCode = d.PostalCode
	m.City = d.City
	m.Country = d.Country
	m.RiskClass = d.RiskClass
	m.Outstanding = d.Outstanding
}

// DebtorModelFromDomain creates a new persistence model from a domain Debtor
func DebtorModelFromDomain(d *collection.Debtor) *DebtorModel {
	m := &DebtorModel{}
	m.FromDomain(d)
	return m
}

// CaseModel is the persistence model for the Case aggregate.
// History rows live in case_history and are loaded separately.
type CaseModel struct {
	TenantAggregateModel
	DebtorID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	Reference      string                `gorm:"type:varchar(100);not null;index"`
	Principal      decimal.Decimal       `gorm:"type:decimal(14,2);not null"`
	Fees           decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	Interest       decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	Currency       valueobject.Currency  `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status         collection.CaseStatus `gorm:"type:varchar(20);not null;index"`
	CourtFileRef   string                `gorm:"type:varchar(100)"`
	NextActionDate *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (CaseModel) TableName() string {
	return "cases"
}

// ToDomain converts the persistence model to a domain Case
func (m *CaseModel) ToDomain() *collection.Case {
	c := &collection.Case{
		DebtorID:       m.DebtorID,
		Reference:      m.Reference,
		Principal:      m.Principal,
		Fees:           m.Fees,
		Interest:       m.Interest,
		Currency:       m.Currency,
		Status:         m.Status,
		CourtFileRef:   m.CourtFileRef,
		NextActionDate: m.NextActionDate,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Case
func (m *CaseModel) FromDomain(c *collection.Case) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.DebtorID = c.DebtorID
	m.Reference = c.Reference
	m.Principal = c.Principal
	m.Fees = c.Fees
	m.Interest = c.Interest
	m.Currency = c.Currency
	m.Status = c.Status
	m.CourtFileRef = c.CourtFileRef
	m.NextActionDate = c.NextActionDate
}

// CaseModelFromDomain creates a new persistence model from a domain Case
func CaseModelFromDomain(c *collection.Case) *CaseModel {
	m := &CaseModel{}
	m.FromDomain(c)
	return m
}

// CaseHistoryModel is the persistence model for case transition history.
// Rows are append-only.
type CaseHistoryModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key"`
	CaseID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	FromStatus collection.CaseStatus `gorm:"type:varchar(20);not null"`
	ToStatus   collection.CaseStatus `gorm:"type:varchar(20);not null"`
	ActorRole  string                `gorm:"type:varchar(20);not null"`
	Note       string                `gorm:"type:text"`
	Override   bool                  `gorm:"not null;default:false"`
	CreatedAt  time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CaseHistoryModel) TableName() string {
	return "case_history"
}

// ToDomain converts the persistence model to a domain history entry
func (m *CaseHistoryModel) ToDomain() collection.CaseHistoryEntry {
	return collection.CaseHistoryEntry{
		ID:         m.ID,
		CaseID:     m.CaseID,
		FromStatus: m.FromStatus,
		ToStatus:   m.ToStatus,
		ActorRole:  m.ActorRole,
		Note:       m.Note,
		Override:   m.Override,
		CreatedAt:  m.CreatedAt,
	}
}

// CaseHistoryModelFromDomain creates a new persistence model from a domain history entry
func CaseHistoryModelFromDomain(e collection.CaseHistoryEntry) *CaseHistoryModel {
	return &CaseHistoryModel{
		ID:         e.ID,
		CaseID:     e.CaseID,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorRole:  e.ActorRole,
		Note:       e.Note,
		Override:   e.Override,
		CreatedAt:  e.CreatedAt,
	}
}
