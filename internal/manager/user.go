package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// UserManager owns the participant registry: registration, profiles, KYC
// status, and roles. It also implements the Authorizer capability consumed by
// the ledger components.
type UserManager struct {
	repo     repository.Repository
	notifier Notifier
	clock    domain.Clock

	// bootstrapAdmins are identities granted the admin role by
	// configuration. A fresh process has no registered users, so without a
	// seed no admin could ever exist to approve the first one.
	bootstrapAdmins map[domain.Identity]struct{}
}

// NewUserManager creates a new UserManager instance.
func NewUserManager(repo repository.Repository, notifier Notifier, clock domain.Clock, bootstrapAdmins []domain.Identity) *UserManager {
	seeds := make(map[domain.Identity]struct{}, len(bootstrapAdmins))
	for _, id := range bootstrapAdmins {
		seeds[id] = struct{}{}
	}
	return &UserManager{
		repo:            repo,
		notifier:        notifier,
		clock:           clock,
		bootstrapAdmins: seeds,
	}
}

// Register creates a user record for the caller. KYC starts pending and the
// role starts regular; both are changed by admins only.
func (m *UserManager) Register(ctx context.Context, caller domain.Identity, username, email, walletAddress string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.Errorf(domain.KindInvalidArgument, "username is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.Errorf(domain.KindInvalidArgument, "email is required")
	}

	role := domain.RoleUser
	if _, ok := m.bootstrapAdmins[caller]; ok {
		role = domain.RoleAdmin
	}
	user := &domain.User{
		ID:            caller,
		Username:      username,
		Email:         email,
		WalletAddress: walletAddress,
		KYCStatus:     domain.KYCPending,
		Role:          role,
		CreatedAt:     m.clock(),
	}
	if err := m.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by identity. Reads are public.
func (m *UserManager) GetUser(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return m.repo.GetUser(ctx, id)
}

// ListUsers returns all registered users. Admin only.
func (m *UserManager) ListUsers(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	admin, err := m.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.Errorf(domain.KindUnauthorized, "listing users requires the admin role")
	}
	return m.repo.ListUsers(ctx)
}

// UpdateProfile replaces the caller's own profile.
func (m *UserManager) UpdateProfile(ctx context.Context, caller domain.Identity, profile *domain.Profile) (*domain.User, error) {
	user, err := m.repo.GetUser(ctx, caller)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	if err := m.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetKYCStatus changes a user's KYC status. Admin only; the subject is
// notified.
func (m *UserManager) SetKYCStatus(ctx context.Context, caller, subject domain.Identity, status domain.KYCStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, domain.Errorf(domain.KindInvalidArgument, "unknown kyc status: %s", status)
	}
	admin, err := m.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.Errorf(domain.KindUnauthorized, "changing KYC status requires the admin role")
	}

	user, err := m.repo.GetUser(ctx, subject)
	if err != nil {
		return nil, err
	}
	user.KYCStatus = status
	if err := m.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	m.notifier.Notify(ctx, subject, domain.NotifyKYC, fmt.Sprintf("Your KYC status changed to %s", status))
	return user, nil
}

// SetRole changes a user's role. Admin only; the subject is notified.
func (m *UserManager) SetRole(ctx context.Context, caller, subject domain.Identity, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.Errorf(domain.KindInvalidArgument, "unknown role: %s", role)
	}
	admin, err := m.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.Errorf(domain.KindUnauthorized, "changing roles requires the admin role")
	}

	user, err := m.repo.GetUser(ctx, subject)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := m.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	m.notifier.Notify(ctx, subject, domain.NotifyAdmin, fmt.Sprintf("Your role changed to %s", role))
	return user, nil
}

// IsAdmin implements Authorizer. Bootstrap admins hold the role whether or
// not they have registered yet.
func (m *UserManager) IsAdmin(ctx context.Context, id domain.Identity) (bool, error) {
	if _, ok := m.bootstrapAdmins[id]; ok {
		return true, nil
	}
	user, err := m.repo.GetUser(ctx, id)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

// IsOwnerOrAdmin implements Authorizer.
func (m *UserManager) IsOwnerOrAdmin(ctx context.Context, caller, owner domain.Identity) (bool, error) {
	if caller == owner {
		return true, nil
	}
	return m.IsAdmin(ctx, caller)
}

// IsKYCApproved implements Authorizer. Unregistered identities are not
// approved.
func (m *UserManager) IsKYCApproved(ctx context.Context, id domain.Identity) (bool, error) {
	user, err := m.repo.GetUser(ctx, id)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.KYCStatus == domain.KYCApproved, nil
}
