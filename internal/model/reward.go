package model

import (
	"time"
)

// Reward is something a user can spend points on. Claiming is final: once
// Claimed flips to true it never reverts. OwnerID is nil for catalog rewards.
type Reward struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	PointCost   int       `db:"point_cost" json:"pointCost"`
	Claimed     bool      `db:"claimed" json:"claimed"`
	OwnerID     *string   `db:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func (r *Reward) IsCatalog() bool {
	return r.OwnerID == nil
}
