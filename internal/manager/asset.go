package manager

import (
	"context"
	"fmt"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// AssetManager handles business logic for the asset registry: creation,
// review, supply accounting, and field updates. It exclusively owns the asset
// arena; the token ledger reserves supply through AllocateSupply rather than
// touching asset records itself.
type AssetManager struct {
	repo     repository.Repository
	auth     Authorizer
	notifier Notifier
	clock    domain.Clock
}

// NewAssetManager creates a new AssetManager instance.
func NewAssetManager(repo repository.Repository, auth Authorizer, notifier Notifier, clock domain.Clock) *AssetManager {
	return &AssetManager{
		repo:     repo,
		auth:     auth,
		notifier: notifier,
		clock:    clock,
	}
}

// CreateAsset registers a new asset owned by the caller. The caller must be
// KYC approved. The asset starts pending review with its full token supply
// available.
func (m *AssetManager) CreateAsset(ctx context.Context, caller domain.Identity, asset *domain.Asset) error {
	if err := validateAssetEconomics(asset); err != nil {
		return err
	}
	if err := requireKYC(ctx, m.auth, caller, "caller"); err != nil {
		return err
	}

	asset.OwnerID = caller
	asset.Status = domain.AssetPending
	asset.AvailableTokens = asset.TotalTokens
	asset.CreatedAt = m.clock()
	return m.repo.CreateAsset(ctx, asset)
}

// GetAsset retrieves an asset by id. Reads are public.
func (m *AssetManager) GetAsset(ctx context.Context, id uint64) (*domain.Asset, error) {
	return m.repo.GetAsset(ctx, id)
}

// ListAssets retrieves assets with optional filtering. Reads are public and
// unfiltered by caller.
func (m *AssetManager) ListAssets(ctx context.Context, filter *repository.AssetFilter) ([]*domain.Asset, error) {
	return m.repo.ListAssets(ctx, filter)
}

// UpdateAsset applies a partial update. Only the asset's owner or an admin
// may apply one; unknown ids and denied callers are distinct failures.
//
// Status may only move along the approved sale path (approved → active,
// funding, or sold). Review transitions go through ApproveAsset/RejectAsset.
func (m *AssetManager) UpdateAsset(ctx context.Context, caller domain.Identity, id uint64, patch *domain.AssetPatch) (*domain.Asset, error) {
	asset, err := m.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed, err := m.auth.IsOwnerOrAdmin(ctx, caller, asset.OwnerID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !allowed {
		return nil, domain.Errorf(domain.KindUnauthorized, "caller %s may not update asset %d", caller, id)
	}

	if err := applyAssetPatch(asset, patch); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// applyAssetPatch merges non-nil patch fields into asset, enforcing the
// supply invariant and the status transition rules.
func applyAssetPatch(asset *domain.Asset, patch *domain.AssetPatch) error {
	if patch == nil {
		return domain.Errorf(domain.KindInvalidArgument, "update payload is required")
	}

	if patch.TotalTokens != nil {
		// Shrinking supply below what has already been minted would
		// orphan issued lots.
		issued := asset.Issued()
		if *patch.TotalTokens < issued {
			return domain.Errorf(domain.KindInvariantViolation,
				"total_tokens %d is below the %d tokens already issued", *patch.TotalTokens, issued)
		}
		asset.TotalTokens = *patch.TotalTokens
		asset.AvailableTokens = *patch.TotalTokens - issued
	}

	if patch.Status != nil {
		next := *patch.Status
		if !next.Valid() {
			return domain.Errorf(domain.KindInvalidArgument, "unknown asset status: %s", next)
		}
		if err := validateStatusTransition(asset.Status, next); err != nil {
			return err
		}
		asset.Status = next
	}

	if patch.Name != nil {
		asset.Name = *patch.Name
	}
	if patch.Description != nil {
		asset.Description = *patch.Description
	}
	if patch.Category != nil {
		asset.Category = *patch.Category
	}
	if patch.Location != nil {
		asset.Location = *patch.Location
	}
	if patch.Images != nil {
		asset.Images = patch.Images
	}
	if patch.Documents != nil {
		asset.Documents = patch.Documents
	}
	if patch.TotalValue != nil {
		asset.TotalValue = *patch.TotalValue
	}
	if patch.TokenPrice != nil {
		asset.TokenPrice = *patch.TokenPrice
	}
	if patch.APY != nil {
		asset.APY = *patch.APY
	}
	if patch.LaunchDate != nil {
		asset.LaunchDate = patch.LaunchDate
	}
	if patch.FundingDeadline != nil {
		asset.FundingDeadline = patch.FundingDeadline
	}
	if patch.MonthlyIncome != nil {
		asset.MonthlyIncome = patch.MonthlyIncome
	}
	if patch.RiskRating != nil {
		asset.RiskRating = patch.RiskRating
	}
	if patch.KeyMetrics != nil {
		asset.KeyMetrics = patch.KeyMetrics
	}
	return nil
}

// ApproveAsset moves a pending asset to approved. Admin only; the owner is
// notified.
func (m *AssetManager) ApproveAsset(ctx context.Context, caller domain.Identity, id uint64) (*domain.Asset, error) {
	return m.review(ctx, caller, id, domain.AssetApproved)
}

// RejectAsset moves a pending asset to rejected. Admin only; the owner is
// notified.
func (m *AssetManager) RejectAsset(ctx context.Context, caller domain.Identity, id uint64) (*domain.Asset, error) {
	return m.review(ctx, caller, id, domain.AssetRejected)
}

func (m *AssetManager) review(ctx context.Context, caller domain.Identity, id uint64, verdict domain.AssetStatus) (*domain.Asset, error) {
	admin, err := m.auth.IsAdmin(ctx, caller)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !admin {
		return nil, domain.Errorf(domain.KindUnauthorized, "reviewing assets requires the admin role")
	}

	asset, err := m.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.Status != domain.AssetPending {
		return nil, domain.Errorf(domain.KindPreconditionFailed, "asset %d has already been reviewed (status %s)", id, asset.Status)
	}

	asset.Status = verdict
	if err := m.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}

	verb := "approved"
	if verdict == domain.AssetRejected {
		verb = "rejected"
	}
	m.notifier.Notify(ctx, asset.OwnerID, domain.NotifyAdmin, fmt.Sprintf("Your asset '%s' has been %s", asset.Name, verb))
	return asset, nil
}

// DeleteAsset removes an asset. Owner or admin only. An asset that still
// backs minted lots cannot be deleted: the lots are permanent issuance
// records and must never dangle.
func (m *AssetManager) DeleteAsset(ctx context.Context, caller domain.Identity, id uint64) error {
	asset, err := m.repo.GetAsset(ctx, id)
	if err != nil {
		return err
	}
	allowed, err := m.auth.IsOwnerOrAdmin(ctx, caller, asset.OwnerID)
	if err != nil {
		return domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !allowed {
		return domain.Errorf(domain.KindUnauthorized, "caller %s may not delete asset %d", caller, id)
	}

	lots, err := m.repo.ListTokens(ctx, &repository.TokenFilter{AssetID: &id})
	if err != nil {
		return err
	}
	if len(lots) > 0 {
		return domain.Errorf(domain.KindInvariantViolation, "asset %d still backs %d token lots", id, len(lots))
	}

	return m.repo.DeleteAsset(ctx, id)
}

// AllocateSupply reserves amount tokens of an asset's remaining supply,
// decrementing available_tokens. Called by the token ledger at mint time so
// that supply accounting stays inside the registry.
func (m *AssetManager) AllocateSupply(ctx context.Context, assetID, amount uint64) (*domain.Asset, error) {
	asset, err := m.repo.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	switch asset.Status {
	case domain.AssetPending, domain.AssetRejected:
		return nil, domain.Errorf(domain.KindPreconditionFailed, "asset %d is not approved for issuance (status %s)", assetID, asset.Status)
	}
	if amount > asset.AvailableTokens {
		return nil, domain.Errorf(domain.KindInvariantViolation,
			"amount %d exceeds available supply %d of asset %d", amount, asset.AvailableTokens, assetID)
	}

	asset.AvailableTokens -= amount
	if err := m.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}
