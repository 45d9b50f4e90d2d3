package collection

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/application/access"
	domaincollection "github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestActor(t *testing.T, role identity.Role, tenantID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("actor@example.com", "Password1", "", role, tenantID)
	require.NoError(t, err)
	return user
}

func newStoredTenant(t *testing.T, registrationNo string) *domaincollection.Tenant {
	t.Helper()
	tenant, err := domaincollection.NewTenant("Acme GmbH", registrationNo, "x@acme.de", "DE89370400440532013000")
	require.NoError(t, err)
	return tenant
}

func newTenantServiceUnderTest() (*TenantService, *MockTenantRepository, *MockAssignmentRepository) {
	tenantRepo := new(MockTenantRepository)
	assignmentRepo := new(MockAssignmentRepository)
	resolver := access.NewResolver(assignmentRepo, zap.NewNop())
	service := NewTenantService(tenantRepo, assignmentRepo, resolver, zap.NewNop())
	return service, tenantRepo, assignmentRepo
}

func TestTenantServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates tenant", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)

		tenantRepo.On("ExistsByRegistrationNo", ctx, "REG123", uuid.Nil).Return(false, nil)
		tenantRepo.On("Create", ctx, mock.AnythingOfType("*collection.Tenant")).Return(nil)

		dto, err := service.Create(ctx, admin, CreateTenantInput{
			Name:           "Acme GmbH",
			RegistrationNo: "REG123",
			ContactEmail:   "x@acme.de",
			PayoutIBAN:     "DE89370400440532013000",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, dto.ID)
		assert.Equal(t, "REG123", dto.RegistrationNo)
		assert.Equal(t, dto.CreatedAt, dto.UpdatedAt)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		service, _, _ := newTenantServiceUnderTest()
		for _, role := range []identity.Role{identity.RoleAgent, identity.RoleClient} {
			var tenantID *uuid.UUID
			if role.RequiresTenant() {
				id := uuid.New()
				tenantID = &id
			}
			actor := newTestActor(t, role, tenantID)

			_, err := service.Create(ctx, actor, CreateTenantInput{
				Name: "Acme GmbH", RegistrationNo: "REG123",
				ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
			})
			require.Error(t, err, string(role))
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "FORBIDDEN", domainErr.Code)
		}
	})

	t.Run("duplicate registration number is a conflict", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)

		tenantRepo.On("ExistsByRegistrationNo", ctx, "REG123", uuid.Nil).Return(true, nil)

		_, err := service.Create(ctx, admin, CreateTenantInput{
			Name: "Other GmbH", RegistrationNo: "REG123",
			ContactEmail: "y@other.de", PayoutIBAN: "DE89370400440532013000",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("race lost on unique index is a conflict", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)

		tenantRepo.On("ExistsByRegistrationNo", ctx, "REG123", uuid.Nil).Return(false, nil)
		tenantRepo.On("Create", ctx, mock.AnythingOfType("*collection.Tenant")).Return(shared.ErrAlreadyExists)

		_, err := service.Create(ctx, admin, CreateTenantInput{
			Name: "Acme GmbH", RegistrationNo: "REG123",
			ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("invalid input", func(t *testing.T) {
		service, _, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)

		_, err := service.Create(ctx, admin, CreateTenantInput{
			Name: "", RegistrationNo: "REG123",
			ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
		})
		assert.Error(t, err)
	})
}

func TestTenantServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeping own registration number succeeds", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		tenant := newStoredTenant(t, "REG123")

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		tenantRepo.On("ExistsByRegistrationNo", ctx, "REG123", tenant.ID).Return(false, nil)
		tenantRepo.On("Update", ctx, tenant).Return(nil)
		tenantRepo.On("Summaries", ctx, []uuid.UUID{tenant.ID}).
			Return(map[uuid.UUID]domaincollection.TenantSummary{}, nil)

		dto, err := service.Update(ctx, admin, tenant.ID, UpdateTenantInput{
			Name: "Acme AG", RegistrationNo: "REG123",
			ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme AG", dto.Name)
	})

	t.Run("taking another tenant's number is a conflict", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		tenant := newStoredTenant(t, "REG123")

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		tenantRepo.On("ExistsByRegistrationNo", ctx, "REG999", tenant.ID).Return(true, nil)

		_, err := service.Update(ctx, admin, tenant.ID, UpdateTenantInput{
			Name: "Acme GmbH", RegistrationNo: "REG999",
			ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("absent tenant is not found", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		id := uuid.New()

		tenantRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, admin, id, UpdateTenantInput{
			Name: "Acme GmbH", RegistrationNo: "REG123",
			ContactEmail: "x@acme.de", PayoutIBAN: "DE89370400440532013000",
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTenantServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deletes empty tenant", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		id := uuid.New()

		tenantRepo.On("DeleteGuarded", ctx, id).Return(nil)

		assert.NoError(t, service.Delete(ctx, admin, id))
	})

	t.Run("tenant with dependents is a conflict", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		id := uuid.New()

		tenantRepo.On("DeleteGuarded", ctx, id).Return(domaincollection.ErrTenantHasDependents)
		tenantRepo.On("CountDependents", ctx, id).Return(int64(3), int64(7), nil)

		err := service.Delete(ctx, admin, id)
		assert.ErrorIs(t, err, domaincollection.ErrTenantHasDependents)
		tenantRepo.AssertCalled(t, "CountDependents", ctx, id)
	})

	t.Run("dependent count failure does not mask the conflict", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		id := uuid.New()

		tenantRepo.On("DeleteGuarded", ctx, id).Return(domaincollection.ErrTenantHasDependents)
		tenantRepo.On("CountDependents", ctx, id).Return(int64(0), int64(0), assert.AnError)

		err := service.Delete(ctx, admin, id)
		assert.ErrorIs(t, err, domaincollection.ErrTenantHasDependents)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		service, _, _ := newTenantServiceUnderTest()
		agent := newTestActor(t, identity.RoleAgent, nil)

		err := service.Delete(ctx, agent, uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestTenantServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("agent sees exactly the assigned tenants", func(t *testing.T) {
		service, tenantRepo, assignmentRepo := newTenantServiceUnderTest()
		agent := newTestActor(t, identity.RoleAgent, nil)
		t1 := newStoredTenant(t, "REG1")
		t2 := newStoredTenant(t, "REG2")
		assigned := []uuid.UUID{t1.ID, t2.ID}

		assignmentRepo.On("ListTenantIDs", ctx, agent.ID).Return(assigned, nil)
		tenantRepo.On("FindAll", ctx, mock.MatchedBy(func(f domaincollection.TenantFilter) bool {
			return len(f.IDs) == 2
		})).Return([]*domaincollection.Tenant{t1, t2}, int64(2), nil)
		tenantRepo.On("Summaries", ctx, assigned).Return(map[uuid.UUID]domaincollection.TenantSummary{
			t1.ID: {TenantID: t1.ID, OpenCases: 3, DebtorCount: 2},
		}, nil)

		result, err := service.List(ctx, agent, ListTenantsInput{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
		require.Len(t, result.Tenants, 2)
		assert.Equal(t, int64(3), result.Tenants[0].Summary.OpenCases)
	})

	t.Run("agent without assignments gets an empty list, not an error", func(t *testing.T) {
		service, tenantRepo, assignmentRepo := newTenantServiceUnderTest()
		agent := newTestActor(t, identity.RoleAgent, nil)

		assignmentRepo.On("ListTenantIDs", ctx, agent.ID).Return([]uuid.UUID{}, nil)
		tenantRepo.On("FindAll", ctx, mock.MatchedBy(func(f domaincollection.TenantFilter) bool {
			return f.IDs != nil && len(f.IDs) == 0
		})).Return([]*domaincollection.Tenant{}, int64(0), nil)
		tenantRepo.On("Summaries", ctx, []uuid.UUID{}).
			Return(map[uuid.UUID]domaincollection.TenantSummary{}, nil)

		result, err := service.List(ctx, agent, ListTenantsInput{})
		require.NoError(t, err)
		assert.Empty(t, result.Tenants)
	})

	t.Run("client without home tenant fails loudly", func(t *testing.T) {
		service, _, _ := newTenantServiceUnderTest()
		tenantID := uuid.New()
		client := newTestActor(t, identity.RoleClient, &tenantID)
		client.TenantID = nil

		_, err := service.List(ctx, client, ListTenantsInput{})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("admin with assigned_to_me intersects own assignments", func(t *testing.T) {
		service, tenantRepo, assignmentRepo := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		t1 := newStoredTenant(t, "REG1")

		assignmentRepo.On("ListTenantIDs", ctx, admin.ID).Return([]uuid.UUID{t1.ID}, nil)
		tenantRepo.On("FindAll", ctx, mock.MatchedBy(func(f domaincollection.TenantFilter) bool {
			return len(f.IDs) == 1 && f.IDs[0] == t1.ID
		})).Return([]*domaincollection.Tenant{t1}, int64(1), nil)
		tenantRepo.On("Summaries", ctx, []uuid.UUID{t1.ID}).
			Return(map[uuid.UUID]domaincollection.TenantSummary{}, nil)

		result, err := service.List(ctx, admin, ListTenantsInput{AssignedToMe: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
	})
}

func TestTenantServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("absent tenant is not found", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		admin := newTestActor(t, identity.RoleAdmin, nil)
		id := uuid.New()

		tenantRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, admin, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("agent denied for unassigned tenant", func(t *testing.T) {
		service, tenantRepo, assignmentRepo := newTenantServiceUnderTest()
		agent := newTestActor(t, identity.RoleAgent, nil)
		tenant := newStoredTenant(t, "REG123")

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		assignmentRepo.On("ListTenantIDs", ctx, agent.ID).Return([]uuid.UUID{uuid.New()}, nil)

		_, err := service.GetByID(ctx, agent, tenant.ID)
		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})

	t.Run("client reads own tenant", func(t *testing.T) {
		service, tenantRepo, _ := newTenantServiceUnderTest()
		tenant := newStoredTenant(t, "REG123")
		client := newTestActor(t, identity.RoleClient, &tenant.ID)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		tenantRepo.On("Summaries", ctx, []uuid.UUID{tenant.ID}).
			Return(map[uuid.UUID]domaincollection.TenantSummary{}, nil)

		dto, err := service.GetByID(ctx, client, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, dto.ID)
	})
}
