package domain

import "github.com/shopspring/decimal"

// Portfolio is the denormalized per-identity view of held lots and the assets
// they reference, rebuilt downstream of ledger mutations. It is a read model,
// never authoritative: the token ledger is the source of truth.
type Portfolio struct {
	UserID   Identity        `json:"user_id"`
	TokenIDs []uint64        `json:"token_ids"`
	AssetIDs []uint64        `json:"asset_ids"`
	Value    decimal.Decimal `json:"value"`
}

// Stats is an aggregate snapshot of the marketplace.
type Stats struct {
	TotalAssets     int             `json:"total_assets"`
	ApprovedAssets  int             `json:"approved_assets"`
	TotalValue      decimal.Decimal `json:"total_value_locked"`
	TokensIssued    uint64          `json:"tokens_issued"`
	PendingTrades   int             `json:"pending_trades"`
	CompletedTrades int             `json:"completed_trades"`
	CancelledTrades int             `json:"cancelled_trades"`
	AverageAPY      decimal.Decimal `json:"average_apy"`
}
