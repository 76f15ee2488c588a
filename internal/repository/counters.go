package repository

import (
	"fmt"
	"time"
)

type CounterRepository interface {
	// RecordMessage counts one occurrence of the normalized text within the
	// sliding window and reports whether the repeat limit was exceeded. On
	// exceeding, the user's spam counters are cleared wholesale so the next
	// occurrence starts a fresh count.
	RecordMessage(groupID, userID int64, text string, now time.Time, window time.Duration, limit int) (hits int, exceeded bool, err error)
	// AddFalseReport increments the false-report counter and, when the
	// threshold is reached, resets it to zero in the same write. The
	// increment, check and reset are one atomic mutation so concurrent
	// rejections produce exactly one firing.
	AddFalseReport(groupID, userID int64, threshold int) (count int, fired bool, err error)
	FalseReportCount(groupID, userID int64) (int, error)
}

type StoreCounterRepository struct {
	store *Store
}

func NewCounterRepository(store *Store) CounterRepository {
	return &StoreCounterRepository{store: store}
}

func (r *StoreCounterRepository) RecordMessage(groupID, userID int64, text string, now time.Time, window time.Duration, limit int) (int, bool, error) {
	var hits int
	var exceeded bool
	err := r.store.Update(func(st *state) error {
		c := getCounters(st, groupID, userID)
		if c.WindowStartedAt.IsZero() {
			c.WindowStartedAt = now
		}
		if now.Sub(c.WindowStartedAt) > window {
			c.SpamHits = nil
			c.WindowStartedAt = now
		}
		if c.SpamHits == nil {
			c.SpamHits = make(map[string]int)
		}
		c.SpamHits[text]++
		hits = c.SpamHits[text]
		if hits > limit {
			exceeded = true
			c.SpamHits = nil
			c.WindowStartedAt = now
		}
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to record message: %w", err)
	}
	return hits, exceeded, nil
}

func (r *StoreCounterRepository) AddFalseReport(groupID, userID int64, threshold int) (int, bool, error) {
	var count int
	var fired bool
	err := r.store.Update(func(st *state) error {
		c := getCounters(st, groupID, userID)
		c.FalseReportCount++
		count = c.FalseReportCount
		if threshold > 0 && count >= threshold {
			fired = true
			c.FalseReportCount = 0
		}
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to add false report: %w", err)
	}
	return count, fired, nil
}

func (r *StoreCounterRepository) FalseReportCount(groupID, userID int64) (int, error) {
	var count int
	r.store.View(func(st *state) {
		if c, ok := st.Counters[CounterKey(groupID, userID)]; ok {
			count = c.FalseReportCount
		}
	})
	return count, nil
}

func getCounters(st *state, groupID, userID int64) *UserCounters {
	key := CounterKey(groupID, userID)
	c, ok := st.Counters[key]
	if !ok {
		c = &UserCounters{GroupID: groupID, UserID: userID}
		st.Counters[key] = c
	}
	return c
}
