package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MediaItem is a priced catalog item. The catalog itself (upload,
// storage, rendering) is an external collaborator; the settlement core
// only reads owner, price and visibility.
type MediaItem struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"ownerId"`
	Title     string          `json:"title"`
	TokenCost decimal.Decimal `json:"tokenCost"`
	IsPublic  bool            `json:"isPublic"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MediaUnlock records that an account paid once for permanent access to
// one media item. Unique per (account, media item).
type MediaUnlock struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"accountId"`
	MediaID   uuid.UUID       `json:"mediaId"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UnlockResult is the outcome of an unlock settlement. A repeated
// unlock is a success with AlreadyUnlocked set, not an error.
type UnlockResult struct {
	AlreadyUnlocked bool            `json:"alreadyUnlocked"`
	Unlock          *MediaUnlock    `json:"unlock"`
	NewBalance      decimal.Decimal `json:"newBalance"`
}
