package repository

import (
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

type TemporaryMessageRepository interface {
	Add(ref chat.MessageRef, duration time.Duration) error
	GetExpired(now time.Time, limit int) ([]TemporaryMessage, error)
	Delete(refs []chat.MessageRef) error
}

type StoreTemporaryMessageRepository struct {
	store *Store
}

func NewTemporaryMessageRepository(store *Store) TemporaryMessageRepository {
	return &StoreTemporaryMessageRepository{store: store}
}

func (r *StoreTemporaryMessageRepository) Add(ref chat.MessageRef, duration time.Duration) error {
	return r.store.Update(func(st *state) error {
		st.TempMessages = append(st.TempMessages, TemporaryMessage{
			Message:  ref,
			DeleteAt: time.Now().Add(duration),
		})
		return nil
	})
}

func (r *StoreTemporaryMessageRepository) GetExpired(now time.Time, limit int) ([]TemporaryMessage, error) {
	var expired []TemporaryMessage
	r.store.View(func(st *state) {
		for _, msg := range st.TempMessages {
			if !msg.DeleteAt.After(now) {
				expired = append(expired, msg)
				if len(expired) >= limit {
					return
				}
			}
		}
	})
	return expired, nil
}

func (r *StoreTemporaryMessageRepository) Delete(refs []chat.MessageRef) error {
	if len(refs) == 0 {
		return nil
	}
	drop := make(map[chat.MessageRef]struct{}, len(refs))
	for _, ref := range refs {
		drop[ref] = struct{}{}
	}
	return r.store.Update(func(st *state) error {
		kept := st.TempMessages[:0]
		for _, msg := range st.TempMessages {
			if _, ok := drop[msg.Message]; !ok {
				kept = append(kept, msg)
			}
		}
		st.TempMessages = kept
		return nil
	})
}
