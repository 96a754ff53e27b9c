package domain

import "time"

// TokenStatus is the state of a token lot.
type TokenStatus string

const (
	TokenAvailable TokenStatus = "available"
	TokenSold      TokenStatus = "sold"

	// TokenLocked is reserved for a future escrow/reservation flow; no
	// current operation produces it.
	TokenLocked TokenStatus = "locked"
)

// Token is a lot: a discrete minted quantity of one asset's tokens held by a
// single identity. Lots are permanent issuance records and are never deleted,
// even after resale.
type Token struct {
	ID        uint64      `json:"id"`
	AssetID   uint64      `json:"asset_id"`
	OwnerID   Identity    `json:"owner_id"`
	Amount    uint64      `json:"amount"`
	Price     uint64      `json:"price"`
	Status    TokenStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
