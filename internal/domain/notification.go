package domain

import "time"

// NotificationKind categorizes a notification for client-side filtering.
type NotificationKind string

const (
	NotifyTrade      NotificationKind = "trade"
	NotifyInvestment NotificationKind = "investment"
	NotifyKYC        NotificationKind = "kyc"
	NotifyAdmin      NotificationKind = "admin"
	NotifyOther      NotificationKind = "other"
)

// Notification is a fire-and-forget message to a participant, recorded when
// the ledger mutates state on their behalf or affecting them.
type Notification struct {
	ID        uint64           `json:"id"`
	UserID    Identity         `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
