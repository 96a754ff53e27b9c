package manager

import (
	"context"
	"fmt"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// TokenManager owns the token ledger: minting lots against an asset's supply
// and reassigning lot ownership. Supply accounting goes through the asset
// registry's AllocateSupply so each component stays the single writer of its
// own arena.
type TokenManager struct {
	repo      repository.Repository
	auth      Authorizer
	assets    *AssetManager
	notifier  Notifier
	portfolio PortfolioIndex
	clock     domain.Clock
}

// NewTokenManager creates a new TokenManager instance.
func NewTokenManager(repo repository.Repository, auth Authorizer, assets *AssetManager, notifier Notifier, portfolio PortfolioIndex, clock domain.Clock) *TokenManager {
	return &TokenManager{
		repo:      repo,
		auth:      auth,
		assets:    assets,
		notifier:  notifier,
		portfolio: portfolio,
		clock:     clock,
	}
}

// Mint issues a new lot of amount tokens against an asset, assigned to owner.
// The caller (not necessarily the owner) must be KYC approved. The asset must
// exist and have at least amount tokens of unissued supply; the supply is
// decremented atomically with lot creation.
func (m *TokenManager) Mint(ctx context.Context, caller domain.Identity, assetID uint64, owner domain.Identity, amount, price uint64) (*domain.Token, error) {
	if amount == 0 {
		return nil, domain.Errorf(domain.KindInvalidArgument, "amount must be positive")
	}
	if err := requireKYC(ctx, m.auth, caller, "caller"); err != nil {
		return nil, err
	}

	asset, err := m.assets.AllocateSupply(ctx, assetID, amount)
	if err != nil {
		return nil, err
	}

	token := &domain.Token{
		AssetID:   assetID,
		OwnerID:   owner,
		Amount:    amount,
		Price:     price,
		Status:    domain.TokenAvailable,
		CreatedAt: m.clock(),
	}
	if err := m.repo.CreateToken(ctx, token); err != nil {
		return nil, err
	}

	m.notifier.Notify(ctx, owner, domain.NotifyInvestment,
		fmt.Sprintf("Minted token lot #%d (%d tokens) for asset '%s'", token.ID, amount, asset.Name))
	m.portfolio.Reindex(ctx, owner)
	return token, nil
}

// GetToken retrieves a lot by id. Reads are public.
func (m *TokenManager) GetToken(ctx context.Context, id uint64) (*domain.Token, error) {
	return m.repo.GetToken(ctx, id)
}

// ListTokens retrieves lots with optional filtering. Reads are public.
func (m *TokenManager) ListTokens(ctx context.Context, filter *repository.TokenFilter) ([]*domain.Token, error) {
	return m.repo.ListTokens(ctx, filter)
}

// Transfer reassigns a lot to a new owner and marks it sold. The recipient
// must be KYC approved and the caller must be the current owner or an admin.
// The recipient is notified and both portfolios are reindexed.
func (m *TokenManager) Transfer(ctx context.Context, caller domain.Identity, tokenID uint64, newOwner domain.Identity) (*domain.Token, error) {
	token, err := m.repo.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if err := requireKYC(ctx, m.auth, newOwner, "recipient"); err != nil {
		return nil, err
	}
	allowed, err := m.auth.IsOwnerOrAdmin(ctx, caller, token.OwnerID)
	if err != nil {
		return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
	}
	if !allowed {
		return nil, domain.Errorf(domain.KindUnauthorized, "caller %s may not transfer token %d", caller, tokenID)
	}

	previousOwner := token.OwnerID
	token.OwnerID = newOwner
	token.Status = domain.TokenSold
	if err := m.repo.UpdateToken(ctx, token); err != nil {
		return nil, err
	}

	m.notifier.Notify(ctx, newOwner, domain.NotifyInvestment,
		fmt.Sprintf("You received token lot #%d for asset #%d", token.ID, token.AssetID))
	m.portfolio.Reindex(ctx, previousOwner, newOwner)
	return token, nil
}
