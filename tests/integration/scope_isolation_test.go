package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkasso/backend/internal/application/access"
	"github.com/inkasso/backend/internal/domain/collection"
	"github.com/inkasso/backend/internal/domain/identity"
	"github.com/inkasso/backend/internal/domain/shared"
	"github.com/inkasso/backend/internal/domain/shared/valueobject"
	"github.com/inkasso/backend/internal/infrastructure/persistence"
)

// TestScopeIsolation_Integration verifies that scope resolution plus the
// repository filters keep data of different tenants apart, with real
// assignments in the database.
func TestScopeIsolation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	debtorRepo := persistence.NewGormDebtorRepository(testDB.DB)
	caseRepo := persistence.NewGormCaseRepository(testDB.DB)
	userRepo := persistence.NewGormUserRepository(testDB.DB)
	assignmentRepo := persistence.NewGormAgentAssignmentRepository(testDB.DB)
	resolver := access.NewResolver(assignmentRepo, zap.NewNop())
	ctx := context.Background()

	// Two tenants, each with one debtor and one open case
	tenantA, err := collection.NewTenant("Alpha Inkasso GmbH", "HRB 20001", "a@alpha.de", "DE89370400440532013000")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Create(ctx, tenantA))

	tenantB, err := collection.NewTenant("Beta Forderungen AG", "HRB 20002", "b@beta.de", "DE89370400440532013000")
	require.NoError(t, err)
	require.NoError(t, tenantRepo.Create(ctx, tenantB))

	seedCase := func(t *testing.T, tenant *collection.Tenant, reference string) *collection.Case {
		t.Helper()
		debtor, err := collection.NewDebtor(tenant.ID, "Debtor", "Of "+tenant.Name, "")
		require.NoError(t, err)
		require.NoError(t, debtorRepo.Create(ctx, debtor))
		c, err := collection.NewCase(tenant.ID, debtor, reference, valueobject.NewMoneyEURFromFloat(120))
		require.NoError(t, err)
		require.NoError(t, caseRepo.Create(ctx, c))
		return c
	}
	caseA := seedCase(t, tenantA, "INV-A-001")
	caseB := seedCase(t, tenantB, "INV-B-001")

	t.Run("Client scope is the home tenant only", func(t *testing.T) {
		client, err := identity.NewUser("client@alpha.de", "Password123", "Alpha Client", identity.RoleClient, &tenantA.ID)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, client))

		scope, err := resolver.ResolveTenantScope(ctx, client)
		require.NoError(t, err)
		assert.False(t, scope.All)

		cases, total, err := caseRepo.FindAll(ctx, collection.NewCaseFilter().WithTenantIDs(scope.IDs()))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, cases, 1)
		assert.Equal(t, caseA.ID, cases[0].ID)

		// Direct access to the other tenant's case is denied
		err = resolver.AuthorizeEntity(ctx, client, caseB.TenantID)
		assert.ErrorIs(t, err, shared.ErrAccessDenied)
	})

	t.Run("Agent scope follows assignments", func(t *testing.T) {
		agent, err := identity.NewUser("agent@inkasso.de", "Password123", "Shared Agent", identity.RoleAgent, nil)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, agent))

		// No assignments yet: the scope is empty and matches nothing
		scope, err := resolver.ResolveTenantScope(ctx, agent)
		require.NoError(t, err)
		assert.False(t, scope.All)

		_, total, err := caseRepo.FindAll(ctx, collection.NewCaseFilter().WithTenantIDs(scope.IDs()))
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)

		// Assigning tenant B makes its data visible
		assignment, err := identity.NewAgentAssignment(agent.ID, tenantB.ID)
		require.NoError(t, err)
		require.NoError(t, assignmentRepo.Create(ctx, assignment))

		scope, err = resolver.ResolveTenantScope(ctx, agent)
		require.NoError(t, err)

		cases, total, err := caseRepo.FindAll(ctx, collection.NewCaseFilter().WithTenantIDs(scope.IDs()))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, cases, 1)
		assert.Equal(t, caseB.ID, cases[0].ID)

		assert.NoError(t, resolver.AuthorizeEntity(ctx, agent, tenantB.ID))
		assert.ErrorIs(t, resolver.AuthorizeEntity(ctx, agent, tenantA.ID), shared.ErrAccessDenied)

		// Removing the assignment revokes visibility immediately
		require.NoError(t, assignmentRepo.Delete(ctx, agent.ID, tenantB.ID))

		scope, err = resolver.ResolveTenantScope(ctx, agent)
		require.NoError(t, err)
		_, total, err = caseRepo.FindAll(ctx, collection.NewCaseFilter().WithTenantIDs(scope.IDs()))
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("Admin scope is unrestricted", func(t *testing.T) {
		admin, err := identity.NewUser("admin@inkasso.de", "Password123", "Admin", identity.RoleAdmin, nil)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, admin))

		scope, err := resolver.ResolveTenantScope(ctx, admin)
		require.NoError(t, err)
		assert.True(t, scope.All)
		assert.Nil(t, scope.IDs())

		_, total, err := caseRepo.FindAll(ctx, collection.NewCaseFilter().WithTenantIDs(scope.IDs()))
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("Duplicate assignment is rejected", func(t *testing.T) {
		agent, err := identity.NewUser("agent2@inkasso.de", "Password123", "Second Agent", identity.RoleAgent, nil)
		require.NoError(t, err)
		require.NoError(t, userRepo.Create(ctx, agent))

		assignment, err := identity.NewAgentAssignment(agent.ID, tenantA.ID)
		require.NoError(t, err)
		require.NoError(t, assignmentRepo.Create(ctx, assignment))

		duplicate, err := identity.NewAgentAssignment(agent.ID, tenantA.ID)
		require.NoError(t, err)
		err = assignmentRepo.Create(ctx, duplicate)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		exists, err := assignmentRepo.Exists(ctx, agent.ID, tenantA.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		tenantIDs, err := assignmentRepo.ListTenantIDs(ctx, agent.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{tenantA.ID}, tenantIDs)
	})
}
