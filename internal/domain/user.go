package domain

import "time"

// KYCStatus is the external approval state of an identity. Only Approved
// identities may issue, receive, or trade tokens.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// Valid reports whether s is a known KYC status.
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCPending, KYCApproved, KYCRejected:
		return true
	}
	return false
}

// Role is the coarse authorization level of an identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile carries optional self-describing fields for a user.
type Profile struct {
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// User is a registered participant. Registration starts with KYC pending and
// the regular role; both are mutated by admins only.
type User struct {
	ID            Identity  `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	WalletAddress string    `json:"wallet_address"`
	KYCStatus     KYCStatus `json:"kyc_status"`
	Role          Role      `json:"role"`
	Profile       *Profile  `json:"profile,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
