package model

import (
	"time"
)

const (
	GoalStatusInProgress = "IN_PROGRESS"
	GoalStatusCompleted  = "COMPLETED"
	GoalStatusCancelled  = "CANCELLED"
)

// Goal is a task worth a fixed number of points. Points are set at creation
// and never change; only the status moves. OwnerID is nil for catalog goals
// visible to every user.
type Goal struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	Points      int       `db:"points" json:"points"`
	OwnerID     *string   `db:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func (g *Goal) IsCatalog() bool {
	return g.OwnerID == nil
}
