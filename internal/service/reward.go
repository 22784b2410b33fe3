package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/drewfoos/GoalQuest/internal/db"
	"github.com/drewfoos/GoalQuest/internal/model"
	"github.com/drewfoos/GoalQuest/internal/repository"
	"github.com/drewfoos/GoalQuest/internal/validation"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RewardService struct {
	repo     repository.RewardRepository
	goalRepo repository.GoalRepository
	db       *sqlx.DB
	locks    *UserLocks
}

func NewRewardService(
	repo repository.RewardRepository,
	goalRepo repository.GoalRepository,
	database *sqlx.DB,
	locks *UserLocks,
) *RewardService {
	return &RewardService{
		repo:     repo,
		goalRepo: goalRepo,
		db:       database,
		locks:    locks,
	}
}

func (s *RewardService) Create(userID, title, description string, pointCost int) (*model.Reward, error) {
	err := validation.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	err = validation.ValidatePointCost(pointCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reward := &model.Reward{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		PointCost:   pointCost,
		Claimed:     false,
		OwnerID:     &userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(reward)
	if err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}

	return reward, nil
}

func (s *RewardService) Rewards(userID string) ([]*model.Reward, error) {
	return s.repo.RewardsForUser(userID)
}

// Claim marks a reward as redeemed after checking the derived balance covers
// its cost. The balance read, the precondition checks and the claimed write
// run inside one transaction under the user's lock, so two claims can never
// spend the same completed goals twice even though no running total exists.
// Claims are final: a claimed reward never reverts, even if the goals that
// funded it are later reopened.
func (s *RewardService) Claim(userID, rewardID string) (*model.Reward, error) {
	lock := s.locks.of(userID)
	lock.Lock()
	defer lock.Unlock()

	var claimed *model.Reward
	err := db.Transact(s.db, func(tx *sqlx.Tx) error {
		rewards := s.repo.WithTx(tx)
		goals := s.goalRepo.WithTx(tx)

		reward, err := rewards.ByIDForUser(userID, rewardID)
		if err != nil {
			return err
		}

		if reward.Claimed {
			return ErrRewardAlreadyClaimed
		}

		balance, err := goals.SumCompletedPoints(userID)
		if err != nil {
			return err
		}

		if balance < reward.PointCost {
			return &InsufficientBalanceError{Required: reward.PointCost, Available: balance}
		}

		now := time.Now().UTC()
		err = rewards.MarkClaimed(reward.ID, userID, now)
		if errors.Is(err, repository.ErrStaleRecord) {
			// Another user beat us to a catalog reward.
			return ErrRewardAlreadyClaimed
		}
		if err != nil {
			return err
		}

		reward.Claimed = true
		reward.OwnerID = &userID
		reward.UpdatedAt = now
		claimed = reward
		return nil
	})

	if errors.Is(err, db.ErrContention) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (s *RewardService) Delete(userID, rewardID string) error {
	return s.repo.Delete(userID, rewardID)
}
