package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict means the operation lost a race with a concurrent writer.
	// It is the only error kind a caller may retry automatically.
	ErrConflict = errors.New("concurrent update conflict, retry")

	ErrRewardAlreadyClaimed = errors.New("reward has already been claimed")
)

// InvalidTransitionError reports an illegal goal status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid goal transition from %s to %s", e.From, e.To)
}

// InsufficientBalanceError reports a claim attempt the balance cannot cover.
type InsufficientBalanceError struct {
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d points, have %d", e.Required, e.Available)
}
