package collection

import (
	"context"

	"github.com/google/uuid"
	domaincollection "github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/stretchr/testify/mock"
)

// MockTenantRepository is a mock implementation of collection.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domaincollection.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *domaincollection.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) DeleteGuarded(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincollection.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincollection.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter domaincollection.TenantFilter) ([]*domaincollection.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domaincollection.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) ExistsByRegistrationNo(ctx context.Context, registrationNo string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, registrationNo, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) Summaries(ctx context.Context, tenantIDs []uuid.UUID) (map[uuid.UUID]domaincollection.TenantSummary, error) {
	args := m.Called(ctx, tenantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]domaincollection.TenantSummary), args.Error(1)
}

// MockCaseRepository is a mock implementation of collection.CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *domaincollection.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Update(ctx context.Context, c *domaincollection.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) UpdateStatus(ctx context.Context, c *domaincollection.Case, entry domaincollection.CaseHistoryEntry) error {
	args := m.Called(ctx, c, entry)
	return args.Error(0)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincollection.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincollection.Case), args.Error(1)
}

func (m *MockCaseRepository) FindAll(ctx context.Context, filter domaincollection.CaseFilter) ([]*domaincollection.Case, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domaincollection.Case), args.Get(1).(int64), args.Error(2)
}

func (m *MockCaseRepository) FindHistory(ctx context.Context, caseID uuid.UUID) ([]domaincollection.CaseHistoryEntry, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domaincollection.CaseHistoryEntry), args.Error(1)
}

func (m *MockCaseRepository) CountOpenByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCaseRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDebtorRepository is a mock implementation of collection.DebtorRepository
type MockDebtorRepository struct {
	mock.Mock
}

func (m *MockDebtorRepository) Create(ctx context.Context, debtor *domaincollection.Debtor) error {
	args := m.Called(ctx, debtor)
	return args.Error(0)
}

func (m *MockDebtorRepository) Update(ctx context.Context, debtor *domaincollection.Debtor) error {
	args := m.Called(ctx, debtor)
	return args.Error(0)
}

func (m *MockDebtorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincollection.Debtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincollection.Debtor), args.Error(1)
}

func (m *MockDebtorRepository) FindAll(ctx context.Context, filter domaincollection.DebtorFilter) ([]*domaincollection.Debtor, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domaincollection.Debtor), args.Get(1).(int64), args.Error(2)
}

func (m *MockDebtorRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of identity.AgentAssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Create(ctx context.Context, assignment *identity.AgentAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, agentID, tenantID uuid.UUID) error {
	args := m.Called(ctx, agentID, tenantID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Exists(ctx context.Context, agentID, tenantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, agentID, tenantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) ListTenantIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*identity.AgentAssignment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.AgentAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
