package test

import (
	"context"
	"sync"

	"github.com/polkiloo/loanledger/internal/pkg/lock"
)

// LockerStub records acquired keys and tracks whether they were released.
type LockerStub struct {
	mu       sync.Mutex
	Err      error
	Acquired []string
	Held     map[string]int
}

// Lock records key and returns configured error.
func (s *LockerStub) Lock(ctx context.Context, key string) (lock.Unlock, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Held == nil {
		s.Held = make(map[string]int)
	}
	s.Acquired = append(s.Acquired, key)
	s.Held[key]++

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.Held[key]--
		})
	}, nil
}

// Outstanding reports locks acquired and not yet released.
func (s *LockerStub) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.Held {
		total += n
	}
	return total
}

var _ lock.Locker = (*LockerStub)(nil)
