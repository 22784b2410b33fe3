package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrRewardNotFound = errors.New("reward not found")
)

type RewardRepository interface {
	WithTx(tx *sqlx.Tx) RewardRepository

	Create(reward *model.Reward) error
	// ByIDForUser loads a reward the user may see: their own or a catalog reward.
	ByIDForUser(userID, rewardID string) (*model.Reward, error)
	// RewardsForUser lists the user's rewards plus catalog rewards, newest first.
	RewardsForUser(userID string) ([]*model.Reward, error)
	// MarkClaimed flips the claimed flag and stamps userID as owner, guarded
	// on claimed still being false. Zero rows affected: ErrStaleRecord.
	MarkClaimed(rewardID, userID string, at time.Time) error
	Delete(userID, rewardID string) error
}

type rewardRepository struct {
	ext sqlx.Ext
}

func NewRewardRepository(db *sqlx.DB) RewardRepository {
	return &rewardRepository{ext: db}
}

func (r *rewardRepository) WithTx(tx *sqlx.Tx) RewardRepository {
	return &rewardRepository{ext: tx}
}

func (r *rewardRepository) Create(reward *model.Reward) error {
	query := `INSERT INTO rewards (id, title, description, point_cost, claimed, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.ext.Exec(query,
		reward.ID,
		reward.Title,
		reward.Description,
		reward.PointCost,
		reward.Claimed,
		reward.OwnerID,
		reward.CreatedAt,
		reward.UpdatedAt,
	)

	return err
}

func (r *rewardRepository) ByIDForUser(userID, rewardID string) (*model.Reward, error) {
	reward := &model.Reward{}
	query := `SELECT * FROM rewards WHERE id = $1 AND (owner_id = $2 OR owner_id IS NULL)`

	err := sqlx.Get(r.ext, reward, query, rewardID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrRewardNotFound
	}

	return reward, err
}

func (r *rewardRepository) RewardsForUser(userID string) ([]*model.Reward, error) {
	var rewards []*model.Reward
	query := `SELECT * FROM rewards WHERE owner_id = $1 OR owner_id IS NULL ORDER BY created_at DESC`

	err := sqlx.Select(r.ext, &rewards, query, userID)
	if err != nil {
		return nil, err
	}

	return rewards, nil
}

func (r *rewardRepository) MarkClaimed(rewardID, userID string, at time.Time) error {
	query := `UPDATE rewards
	          SET claimed = TRUE, owner_id = $1, updated_at = $2
	          WHERE id = $3 AND claimed = FALSE`

	result, err := r.ext.Exec(query, userID, at, rewardID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStaleRecord
	}

	return nil
}

func (r *rewardRepository) Delete(userID, rewardID string) error {
	query := `DELETE FROM rewards WHERE id = $1 AND (owner_id = $2 OR owner_id IS NULL)`
	result, err := r.ext.Exec(query, rewardID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRewardNotFound
	}

	return nil
}
