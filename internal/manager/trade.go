package manager

import (
	"context"
	"fmt"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/repository"
)

// CreateTradeInput carries the agreed terms of a new trade.
type CreateTradeInput struct {
	BuyerID  domain.Identity
	SellerID domain.Identity
	TokenID  uint64
	AssetID  uint64
	Quantity uint64
	Price    uint64
	Currency domain.Currency
}

// TradeManager owns the trade lifecycle: creation of bilaterally agreed
// transfers and their settlement. Completion hands the referenced lot to the
// buyer through the token ledger's public transfer operation; if that
// sub-step fails the whole settlement fails with nothing committed.
type TradeManager struct {
	repo     repository.Repository
	auth     Authorizer
	tokens   *TokenManager
	notifier Notifier
	clock    domain.Clock
}

// NewTradeManager creates a new TradeManager instance.
func NewTradeManager(repo repository.Repository, auth Authorizer, tokens *TokenManager, notifier Notifier, clock domain.Clock) *TradeManager {
	return &TradeManager{
		repo:     repo,
		auth:     auth,
		tokens:   tokens,
		notifier: notifier,
		clock:    clock,
	}
}

// CreateTrade records a pending trade. The caller must be one of the parties
// or an admin. Both parties must be KYC approved, the
// referenced lot must exist, belong to the named asset, and be held by the
// seller, and the quantity must fit within the lot.
func (m *TradeManager) CreateTrade(ctx context.Context, caller domain.Identity, input CreateTradeInput) (*domain.Trade, error) {
	if input.Quantity == 0 {
		return nil, domain.Errorf(domain.KindInvalidArgument, "quantity must be positive")
	}
	if !input.Currency.Valid() {
		return nil, domain.Errorf(domain.KindInvalidArgument, "unknown currency: %s", input.Currency)
	}
	if input.BuyerID == input.SellerID {
		return nil, domain.Errorf(domain.KindInvalidArgument, "buyer and seller must differ")
	}
	if caller != input.BuyerID && caller != input.SellerID {
		admin, err := m.auth.IsAdmin(ctx, caller)
		if err != nil {
			return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
		}
		if !admin {
			return nil, domain.Errorf(domain.KindUnauthorized, "caller %s is not a party to the trade", caller)
		}
	}
	if err := requireKYC(ctx, m.auth, input.BuyerID, "buyer"); err != nil {
		return nil, err
	}
	if err := requireKYC(ctx, m.auth, input.SellerID, "seller"); err != nil {
		return nil, err
	}

	token, err := m.tokens.GetToken(ctx, input.TokenID)
	if err != nil {
		return nil, err
	}
	if token.AssetID != input.AssetID {
		return nil, domain.Errorf(domain.KindInvalidArgument,
			"token %d belongs to asset %d, not %d", input.TokenID, token.AssetID, input.AssetID)
	}
	if token.OwnerID != input.SellerID {
		return nil, domain.Errorf(domain.KindPreconditionFailed,
			"seller %s does not hold token %d", input.SellerID, input.TokenID)
	}
	if input.Quantity > token.Amount {
		return nil, domain.Errorf(domain.KindInvariantViolation,
			"quantity %d exceeds lot size %d", input.Quantity, token.Amount)
	}

	trade := &domain.Trade{
		BuyerID:   input.BuyerID,
		SellerID:  input.SellerID,
		TokenID:   input.TokenID,
		AssetID:   input.AssetID,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Currency:  input.Currency,
		Status:    domain.TradePending,
		Filled:    0,
		CreatedAt: m.clock(),
	}
	if err := m.repo.CreateTrade(ctx, trade); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Trade #%d created for token #%d", trade.ID, trade.TokenID)
	m.notifier.Notify(ctx, trade.BuyerID, domain.NotifyTrade, msg)
	m.notifier.Notify(ctx, trade.SellerID, domain.NotifyTrade, msg)
	return trade, nil
}

// GetTrade retrieves a trade by id. Reads are public.
func (m *TradeManager) GetTrade(ctx context.Context, id uint64) (*domain.Trade, error) {
	return m.repo.GetTrade(ctx, id)
}

// ListTrades retrieves trades with optional filtering. Reads are public.
func (m *TradeManager) ListTrades(ctx context.Context, filter *repository.TradeFilter) ([]*domain.Trade, error) {
	return m.repo.ListTrades(ctx, filter)
}

// UpdateStatus moves a trade through its lifecycle. The caller must be the
// buyer, the seller, or an admin. A finalized trade accepts no further
// updates, and filled may never exceed the agreed quantity.
//
// Transitioning to completed settles the trade: the referenced lot is
// transferred to the buyer on the seller's behalf before the trade record is
// touched, so a failed transfer (revoked buyer KYC, seller no longer holding
// the lot) leaves the trade pending with no partial commit.
func (m *TradeManager) UpdateStatus(ctx context.Context, caller domain.Identity, id uint64, status domain.TradeStatus, filled uint64) (*domain.Trade, error) {
	if !status.Valid() {
		return nil, domain.Errorf(domain.KindInvalidArgument, "unknown trade status: %s", status)
	}

	trade, err := m.repo.GetTrade(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := trade.Party(caller)
	if !allowed {
		admin, err := m.auth.IsAdmin(ctx, caller)
		if err != nil {
			return nil, domain.Errorf(domain.KindInternal, "authorization check failed: %v", err)
		}
		allowed = admin
	}
	if !allowed {
		return nil, domain.Errorf(domain.KindUnauthorized, "caller %s is not a party to trade %d", caller, id)
	}

	if trade.Status.Terminal() {
		return nil, domain.Errorf(domain.KindPreconditionFailed, "trade %d is already finalized (%s)", id, trade.Status)
	}
	if filled > trade.Quantity {
		return nil, domain.Errorf(domain.KindInvariantViolation,
			"filled %d exceeds trade quantity %d", filled, trade.Quantity)
	}

	if status == domain.TradeCompleted {
		// Settle: hand the lot to the buyer, acting for the seller who
		// agreed to the trade at creation time.
		if _, err := m.tokens.Transfer(ctx, trade.SellerID, trade.TokenID, trade.BuyerID); err != nil {
			return nil, err
		}
		filled = trade.Quantity
	}

	trade.Status = status
	trade.Filled = filled
	if err := m.repo.UpdateTrade(ctx, trade); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Trade #%d status updated to %s", id, status)
	m.notifier.Notify(ctx, trade.BuyerID, domain.NotifyTrade, msg)
	m.notifier.Notify(ctx, trade.SellerID, domain.NotifyTrade, msg)
	return trade, nil
}
