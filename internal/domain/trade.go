package domain

import "time"

// TradeStatus is the lifecycle state of a trade. Completed and Cancelled are
// terminal: once reached, no further status update is accepted.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeCompleted TradeStatus = "completed"
	TradeCancelled TradeStatus = "cancelled"
)

// Valid reports whether s is a known trade status.
func (s TradeStatus) Valid() bool {
	switch s {
	case TradePending, TradeCompleted, TradeCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transition.
func (s TradeStatus) Terminal() bool {
	return s == TradeCompleted || s == TradeCancelled
}

// Currency is the settlement currency of a trade.
type Currency string

const (
	CurrencyICP Currency = "ICP"
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyICP, CurrencyUSD, CurrencyINR:
		return true
	}
	return false
}

// Trade is a bilaterally pre-agreed transfer of one token lot between two
// identities. Filled tracks the settled quantity and never exceeds Quantity.
type Trade struct {
	ID        uint64      `json:"id"`
	BuyerID   Identity    `json:"buyer_id"`
	SellerID  Identity    `json:"seller_id"`
	TokenID   uint64      `json:"token_id"`
	AssetID   uint64      `json:"asset_id"`
	Quantity  uint64      `json:"quantity"`
	Price     uint64      `json:"price"`
	Currency  Currency    `json:"currency"`
	Status    TradeStatus `json:"status"`
	Filled    uint64      `json:"filled"`
	CreatedAt time.Time   `json:"created_at"`
}

// Party reports whether id is the buyer or the seller of the trade.
func (t *Trade) Party(id Identity) bool {
	return t.BuyerID == id || t.SellerID == id
}
