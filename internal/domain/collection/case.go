package collection

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CaseStatus represents the collection-process stage of a case
type CaseStatus string

// Forward path of the collection process, in order.
// MB is the court payment order (Mahnbescheid), VB the enforcement order
// (Vollstreckungsbescheid), GV the court bailiff (Gerichtsvollzieher),
// EV the debtor's statutory disclosure of assets (Vermoegensauskunft).
const (
	CaseStatusDraft           CaseStatus = "DRAFT"
	CaseStatusNew             CaseStatus = "NEW"
	CaseStatusReminder1       CaseStatus = "REMINDER_1"
	CaseStatusReminder2       CaseStatus = "REMINDER_2"
	CaseStatusPrepareMB       CaseStatus = "PREPARE_MB"
	CaseStatusMBRequested     CaseStatus = "MB_REQUESTED"
	CaseStatusMBIssued        CaseStatus = "MB_ISSUED"
	CaseStatusPrepareVB       CaseStatus = "PREPARE_VB"
	CaseStatusVBRequested     CaseStatus = "VB_REQUESTED"
	CaseStatusVBIssued        CaseStatus = "VB_ISSUED"
	CaseStatusTitleObtained   CaseStatus = "TITLE_OBTAINED"
	CaseStatusEnforcementPrep CaseStatus = "ENFORCEMENT_PREP"
	CaseStatusGVMandated      CaseStatus = "GV_MANDATED"
	CaseStatusEVTaken         CaseStatus = "EV_TAKEN"
)

// Side states branching off the forward path
const (
	CaseStatusAddressResearch CaseStatus = "ADDRESS_RESEARCH"
	CaseStatusMBObjection     CaseStatus = "MB_OBJECTION"
)

// Terminal absorbing states, reachable from any non-terminal state
const (
	CaseStatusPaid          CaseStatus = "PAID"
	CaseStatusSettled       CaseStatus = "SETTLED"
	CaseStatusInsolvency    CaseStatus = "INSOLVENCY"
	CaseStatusUncollectible CaseStatus = "UNCOLLECTIBLE"
)

// TerminalCaseStatuses lists the absorbing outcome states
var TerminalCaseStatuses = []CaseStatus{
	CaseStatusPaid, CaseStatusSettled, CaseStatusInsolvency, CaseStatusUncollectible,
}

// AllCaseStatuses lists every defined case status
var AllCaseStatuses = []CaseStatus{
	CaseStatusDraft, CaseStatusNew, CaseStatusReminder1, CaseStatusReminder2,
	CaseStatusPrepareMB, CaseStatusMBRequested, CaseStatusMBIssued,
	CaseStatusPrepareVB, CaseStatusVBRequested, CaseStatusVBIssued,
	CaseStatusTitleObtained, CaseStatusEnforcementPrep, CaseStatusGVMandated,
	CaseStatusEVTaken, CaseStatusAddressResearch, CaseStatusMBObjection,
	CaseStatusPaid, CaseStatusSettled, CaseStatusInsolvency, CaseStatusUncollectible,
}

// caseTransitions is the adjacency table for non-terminal transitions.
// Terminal states are reachable from any non-terminal state and are
// handled in CanTransitionTo, not listed here.
var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseStatusDraft:           {CaseStatusNew},
	CaseStatusNew:             {CaseStatusReminder1},
	CaseStatusReminder1:       {CaseStatusReminder2},
	CaseStatusReminder2:       {CaseStatusPrepareMB, CaseStatusAddressResearch},
	CaseStatusAddressResearch: {CaseStatusReminder2, CaseStatusPrepareMB},
	CaseStatusPrepareMB:       {CaseStatusMBRequested},
	CaseStatusMBRequested:     {CaseStatusMBIssued, CaseStatusMBObjection},
	CaseStatusMBIssued:        {CaseStatusPrepareVB, CaseStatusMBObjection},
	CaseStatusMBObjection:     {CaseStatusPrepareVB},
	CaseStatusPrepareVB:       {CaseStatusVBRequested},
	CaseStatusVBRequested:     {CaseStatusVBIssued},
	CaseStatusVBIssued:        {CaseStatusTitleObtained},
	CaseStatusTitleObtained:   {CaseStatusEnforcementPrep},
	CaseStatusEnforcementPrep: {CaseStatusGVMandated},
	CaseStatusGVMandated:      {CaseStatusEVTaken},
	CaseStatusEVTaken:         {},
}

// IsValid checks if the status is a defined CaseStatus
func (s CaseStatus) IsValid() bool {
	if s.IsTerminal() {
		return true
	}
	_, ok := caseTransitions[s]
	return ok
}

// IsTerminal returns true for absorbing outcome states
func (s CaseStatus) IsTerminal() bool {
	switch s {
	case CaseStatusPaid, CaseStatusSettled, CaseStatusInsolvency, CaseStatusUncollectible:
		return true
	}
	return false
}

// String returns the string representation of CaseStatus
func (s CaseStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Terminal states are reachable from any non-terminal state; a terminal
// state allows no further transitions.
func (s CaseStatus) CanTransitionTo(target CaseStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target.IsTerminal() {
		return true
	}
	for _, next := range caseTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ErrCaseClosed is returned when a non-admin actor mutates a case
// in a terminal state
var ErrCaseClosed = shared.NewDomainError("CASE_CLOSED", "Case is closed")

// CaseHistoryEntry records a single status transition. History is
// append-only; entries are never updated or deleted.
type CaseHistoryEntry struct {
	ID         uuid.UUID  `json:"id"`
	CaseID     uuid.UUID  `json:"case_id"`
	FromStatus CaseStatus `json:"from_status"`
	ToStatus   CaseStatus `json:"to_status"`
	ActorRole  string     `json:"actor_role"`
	Note       string     `json:"note"`
	Override   bool       `json:"override"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Case represents a single receivable under active collection.
// It is the aggregate root for case lifecycle operations. A case is never
// physically deleted; closed outcomes are terminal statuses.
type Case struct {
	shared.TenantAggregateRoot
	DebtorID       uuid.UUID
	Reference      string // Creditor-side invoice or file reference
	Principal      decimal.Decimal
	Fees           decimal.Decimal
	Interest       decimal.Decimal
	Currency       valueobject.Currency
	Status         CaseStatus
	CourtFileRef   string
	NextActionDate *time.Time
	History        []CaseHistoryEntry
}

// NewCase creates a new case in status NEW under the debtor's tenant.
// The owning tenant must match the debtor's tenant; a mismatch is a
// data-integrity fault, not an input error.
func NewCase(tenantID uuid.UUID, debtor *Debtor, reference string, principal valueobject.Money) (*Case, error) {
	return newCase(tenantID, debtor, reference, principal, CaseStatusNew)
}

// NewDraftCase creates a new case in status DRAFT
func NewDraftCase(tenantID uuid.UUID, debtor *Debtor, reference string, principal valueobject.Money) (*Case, error) {
	return newCase(tenantID, debtor, reference, principal, CaseStatusDraft)
}

func newCase(tenantID uuid.UUID, debtor *Debtor, reference string, principal valueobject.Money, status CaseStatus) (*Case, error) {
	if debtor == nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Debtor cannot be nil")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT_ID", "Tenant ID cannot be empty")
	}
	if tenantID != debtor.TenantID {
		return nil, shared.NewDomainError("DATA_INTEGRITY", "Case tenant does not match debtor tenant")
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Case reference cannot be empty")
	}
	if len(reference) > 100 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Case reference cannot exceed 100 characters")
	}
	if !principal.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRINCIPAL", "Principal amount must be positive")
	}

	c := &Case{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DebtorID:            debtor.ID,
		Reference:           reference,
		Principal:           principal.Amount(),
		Fees:                decimal.Zero,
		Interest:            decimal.Zero,
		Currency:            principal.Currency(),
		Status:              status,
		History:             make([]CaseHistoryEntry, 0),
	}

	c.AddDomainEvent(NewCaseCreatedEvent(c))

	return c, nil
}

// TotalAmount returns principal plus accrued fees and interest
func (c *Case) TotalAmount() decimal.Decimal {
	return c.Principal.Add(c.Fees).Add(c.Interest)
}

// IsClosed returns true if the case is in a terminal status
func (c *Case) IsClosed() bool {
	return c.Status.IsTerminal()
}

// Advance moves the case to the target status on behalf of the given role.
//
// Terminal targets are accepted from any non-terminal state. Other targets
// must follow the process graph. ADMIN may force-correct to any defined
// status, including out of a terminal state; such transitions are recorded
// in history with the override flag set.
func (c *Case) Advance(target CaseStatus, actorRole identity.Role, note string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown case status: %s", target))
	}

	override := false
	if !c.Status.CanTransitionTo(target) {
		if actorRole != identity.RoleAdmin {
			if c.Status.IsTerminal() {
				return ErrCaseClosed
			}
			return shared.NewDomainError("INVALID_TRANSITION",
				fmt.Sprintf("Cannot transition case from %s to %s", c.Status, target))
		}
		if target == c.Status {
			return shared.NewDomainError("INVALID_TRANSITION", "Case is already in this status")
		}
		override = true
	}

	entry := CaseHistoryEntry{
		ID:         uuid.New(),
		CaseID:     c.ID,
		FromStatus: c.Status,
		ToStatus:   target,
		ActorRole:  actorRole.Label(),
		Note:       note,
		Override:   override,
		CreatedAt:  time.Now(),
	}

	previous := c.Status
	c.Status = target
	c.History = append(c.History, entry)
	c.UpdatedAt = entry.CreatedAt
	c.IncrementVersion()

	c.AddDomainEvent(NewCaseStatusChangedEvent(c, previous, target, override))

	return nil
}

// SetCourtFileRef records the court's file reference for the case
func (c *Case) SetCourtFileRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if len(ref) > 100 {
		return shared.NewDomainError("INVALID_COURT_FILE_REF", "Court file reference cannot exceed 100 characters")
	}

	c.CourtFileRef = ref
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNextActionDate schedules the next action on the case
func (c *Case) SetNextActionDate(date *time.Time) {
	c.NextActionDate = date
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// AddFees adds collection fees to the case
func (c *Case) AddFees(amount valueobject.Money) error {
	if amount.Currency() != c.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Fee currency does not match case currency")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Fee amount cannot be negative")
	}

	c.Fees = c.Fees.Add(amount.Amount())
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// AddInterest adds accrued interest to the case
func (c *Case) AddInterest(amount valueobject.Money) error {
	if amount.Currency() != c.Currency {
		return shared.NewDomainError("CURRENCY_MISMATCH", "Interest currency does not match case currency")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Interest amount cannot be negative")
	}

	c.Interest = c.Interest.Add(amount.Amount())
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
