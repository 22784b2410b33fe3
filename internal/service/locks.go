package service

import (
	"sync"
)

// UserLocks hands out one mutex per user identifier. Claim and transition
// both derive the balance from goal state inside their critical section, so
// serializing them per user is what keeps the derived balance race-free.
// The map is bounded by the number of distinct active users.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *UserLocks) of(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}
