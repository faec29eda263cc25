package entities

import (
	"time"

	"github.com/google/uuid"
)

// Role is the platform role attached to an account by the identity provider.
type Role string

const (
	RoleUser  Role = "USER"
	RoleModel Role = "MODEL"
	RoleAdmin Role = "ADMIN"
)

// Capability names an action a principal may perform.
type Capability string

const (
	CapabilityUnlockMedia     Capability = "media:unlock"
	CapabilityRequestWithdraw Capability = "withdraw:request"
	CapabilityReviewWithdraw  Capability = "withdraw:review"
	CapabilityViewOwnWallet   Capability = "wallet:read"
	CapabilityViewOwnEarnings Capability = "earnings:read"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleUser: {
		CapabilityUnlockMedia:   true,
		CapabilityViewOwnWallet: true,
	},
	RoleModel: {
		CapabilityUnlockMedia:     true,
		CapabilityViewOwnWallet:   true,
		CapabilityViewOwnEarnings: true,
		CapabilityRequestWithdraw: true,
	},
	RoleAdmin: {
		CapabilityUnlockMedia:     true,
		CapabilityViewOwnWallet:   true,
		CapabilityViewOwnEarnings: true,
		CapabilityRequestWithdraw: true,
		CapabilityReviewWithdraw:  true,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Account represents a user who can hold balance. Identity and
// authentication live outside the settlement core; only the id and
// role are consumed here.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
