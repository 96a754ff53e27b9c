package manager

import (
	"context"

	"github.com/fracshare/rwaledger/internal/domain"
)

// Authorizer is the single authorization capability consumed by every ledger
// component. Ownership and role checks are centralized here instead of being
// duplicated per module.
//
// A returned error means the collaborator could not decide; per the execution
// model the calling operation must reject outright, never partially commit.
type Authorizer interface {
	// IsAdmin reports whether the identity holds the admin role.
	IsAdmin(ctx context.Context, id domain.Identity) (bool, error)

	// IsOwnerOrAdmin reports whether caller is the given owner or an admin.
	IsOwnerOrAdmin(ctx context.Context, caller, owner domain.Identity) (bool, error)

	// IsKYCApproved reports whether the identity has passed the KYC gate.
	IsKYCApproved(ctx context.Context, id domain.Identity) (bool, error)
}

// requireKYC rejects with a PreconditionFailed error unless id is
// KYC-approved. The who argument names the role being checked so failures
// read well ("buyer", "recipient", "caller").
func requireKYC(ctx context.Context, auth Authorizer, id domain.Identity, who string) error {
	approved, err := auth.IsKYCApproved(ctx, id)
	if err != nil {
		return domain.Errorf(domain.KindInternal, "kyc check for %s failed: %v", who, err)
	}
	if !approved {
		return domain.Errorf(domain.KindPreconditionFailed, "%s %s is not KYC approved", who, id)
	}
	return nil
}
