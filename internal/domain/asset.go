package domain

import "time"

// AssetStatus is the lifecycle state of a tokenized asset.
//
// Pending assets await admin review. Approval moves them to Approved, from
// which the owner may advance them through the sale states (Active, Funding,
// Sold). Rejected is terminal.
type AssetStatus string

const (
	AssetPending  AssetStatus = "pending"
	AssetApproved AssetStatus = "approved"
	AssetRejected AssetStatus = "rejected"
	AssetActive   AssetStatus = "active"
	AssetFunding  AssetStatus = "funding"
	AssetSold     AssetStatus = "sold"
)

// Valid reports whether s is a known asset status.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetPending, AssetApproved, AssetRejected, AssetActive, AssetFunding, AssetSold:
		return true
	}
	return false
}

// KeyMetrics carries optional investment metrics for an asset listing.
type KeyMetrics struct {
	CapRate         *float64 `json:"cap_rate,omitempty"`
	OccupancyRate   *float64 `json:"occupancy_rate,omitempty"`
	LocationScore   *float64 `json:"location_score,omitempty"`
	LiquidityRating *string  `json:"liquidity_rating,omitempty"`
}

// Asset is one real-world asset divided into a fixed supply of fungible
// tokens. AvailableTokens tracks the unissued remainder of TotalTokens and
// never exceeds it.
type Asset struct {
	ID              uint64      `json:"id"`
	OwnerID         Identity    `json:"owner_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Location        string      `json:"location"`
	Images          []string    `json:"images"`
	Documents       []string    `json:"documents"`
	TotalValue      uint64      `json:"total_value"`
	TokenPrice      uint64      `json:"token_price"`
	TotalTokens     uint64      `json:"total_tokens"`
	AvailableTokens uint64      `json:"available_tokens"`
	APY             float64     `json:"apy"`
	Status          AssetStatus `json:"status"`
	LaunchDate      *string     `json:"launch_date,omitempty"`
	FundingDeadline *string     `json:"funding_deadline,omitempty"`
	MonthlyIncome   *uint64     `json:"monthly_income,omitempty"`
	RiskRating      *string     `json:"risk_rating,omitempty"`
	KeyMetrics      *KeyMetrics `json:"key_metrics,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Issued returns the number of tokens already minted against the asset.
func (a *Asset) Issued() uint64 {
	return a.TotalTokens - a.AvailableTokens
}

// AssetPatch is a partial update to an asset. Nil fields are left unchanged.
type AssetPatch struct {
	Name            *string      `json:"name,omitempty"`
	Description     *string      `json:"description,omitempty"`
	Category        *string      `json:"category,omitempty"`
	Location        *string      `json:"location,omitempty"`
	Images          []string     `json:"images,omitempty"`
	Documents       []string     `json:"documents,omitempty"`
	TotalValue      *uint64      `json:"total_value,omitempty"`
	TokenPrice      *uint64      `json:"token_price,omitempty"`
	TotalTokens     *uint64      `json:"total_tokens,omitempty"`
	APY             *float64     `json:"apy,omitempty"`
	Status          *AssetStatus `json:"status,omitempty"`
	LaunchDate      *string      `json:"launch_date,omitempty"`
	FundingDeadline *string      `json:"funding_deadline,omitempty"`
	MonthlyIncome   *uint64      `json:"monthly_income,omitempty"`
	RiskRating      *string      `json:"risk_rating,omitempty"`
	KeyMetrics      *KeyMetrics  `json:"key_metrics,omitempty"`
}
