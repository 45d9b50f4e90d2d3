package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkasso/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the actor role in the system.
// The set of roles is closed; scope resolution switches over it exhaustively.
type Role string

const (
	RoleAdmin  Role = "ADMIN"  // Platform operator, sees all tenants
	RoleAgent  Role = "AGENT"  // Collection agent, sees assigned tenants
	RoleClient Role = "CLIENT" // Creditor employee, sees own tenant only
	RoleDebtor Role = "DEBTOR" // Debtor portal user, sees own cases only
)

// AllRoles lists every valid role
var AllRoles = []Role{RoleAdmin, RoleAgent, RoleClient, RoleDebtor}

// IsValid checks whether the role is one of the defined roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleClient, RoleDebtor:
		return true
	}
	return false
}

// RequiresTenant returns true if actors with this role must be bound
// to exactly one home tenant
func (r Role) RequiresTenant() bool {
	return r == RoleClient || r == RoleDebtor
}

// Label returns the human-readable role label used in audit records
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleAgent:
		return "Agent"
	case RoleClient:
		return "Client"
	case RoleDebtor:
		return "Debtor"
	}
	return string(r)
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an authenticated actor.
// It is the aggregate root for identity operations.
type User struct {
	shared.BaseAggregateRoot
	Email          string
	PasswordHash   string
	DisplayName    string
	Role           Role
	Status         UserStatus
	TenantID       *uuid.UUID // Home tenant, required for CLIENT and DEBTOR
	DebtorID       *uuid.UUID // Linked debtor party, required for DEBTOR
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates a new user with the given role.
// Tenant binding is validated against the role: CLIENT and DEBTOR must carry
// a home tenant, ADMIN and AGENT must not.
func NewUser(email, password, displayName string, role Role, tenantID *uuid.UUID) (*User, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if displayName != "" && len(displayName) > 200 {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}
	if err := validateTenantBinding(role, tenantID); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		DisplayName:       strings.TrimSpace(displayName),
		Role:              role,
		Status:            UserStatusActive,
		TenantID:          tenantID,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewDebtorUser creates a debtor portal user bound to a tenant and debtor party
func NewDebtorUser(email, password, displayName string, tenantID, debtorID uuid.UUID) (*User, error) {
	if debtorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEBTOR_ID", "Debtor ID cannot be empty")
	}

	user, err := NewUser(email, password, displayName, RoleDebtor, &tenantID)
	if err != nil {
		return nil, err
	}

	user.DebtorID = &debtorID
	return user, nil
}

// HomeTenantID returns the user's home tenant, or uuid.Nil if unbound
func (u *User) HomeTenantID() uuid.UUID {
	if u.TenantID == nil {
		return uuid.Nil
	}
	return *u.TenantID
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(displayName string) error {
	if displayName != "" && len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate deactivates the user account
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDeactivatedEvent(u))

	return nil
}

// Activate reactivates a deactivated or locked user account
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Lock locks the user account for the given duration
func (u *User) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("USER_DEACTIVATED", "Cannot lock a deactivated user")
	}

	u.Status = UserStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		u.LockedUntil = &lockedUntil
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account was locked as a result.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}

	return false
}

// IsLocked returns true if user is locked and the lock has not expired
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}

	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}

	return true
}

// CanLogin returns true if the user may authenticate
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	if u.IsLocked() {
		return false
	}
	return true
}

// Validation functions

func validateTenantBinding(role Role, tenantID *uuid.UUID) error {
	if role.RequiresTenant() {
		if tenantID == nil || *tenantID == uuid.Nil {
			return shared.NewDomainError("TENANT_REQUIRED", "This role requires a home tenant")
		}
		return nil
	}
	if tenantID != nil {
		return shared.NewDomainError("TENANT_NOT_ALLOWED", "This role cannot be bound to a tenant")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
