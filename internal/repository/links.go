package repository

import (
	"fmt"
	"time"
)

type LinkRepository interface {
	// Add appends an entry. A zero number takes the next free one; an
	// explicit number must be greater than the last assigned.
	Add(entry LinkEntry) (*LinkEntry, error)
	Get(number int) (*LinkEntry, error)
	List() ([]LinkEntry, error)
	Delete(number int) error
}

type StoreLinkRepository struct {
	store *Store
}

func NewLinkRepository(store *Store) LinkRepository {
	return &StoreLinkRepository{store: store}
}

func (r *StoreLinkRepository) Add(entry LinkEntry) (*LinkEntry, error) {
	err := r.store.Update(func(st *state) error {
		last := 0
		if n := len(st.Links); n > 0 {
			last = st.Links[n-1].Number
		}
		switch {
		case entry.Number == 0:
			entry.Number = last + 1
		case entry.Number <= last:
			return ErrLinkNumberUsed
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now()
		}
		st.Links = append(st.Links, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *StoreLinkRepository) Get(number int) (*LinkEntry, error) {
	var found *LinkEntry
	r.store.View(func(st *state) {
		for i := range st.Links {
			if st.Links[i].Number == number {
				cp := st.Links[i]
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, ErrLinkNotFound
	}
	return found, nil
}

func (r *StoreLinkRepository) List() ([]LinkEntry, error) {
	var entries []LinkEntry
	r.store.View(func(st *state) {
		entries = append(entries, st.Links...)
	})
	return entries, nil
}

func (r *StoreLinkRepository) Delete(number int) error {
	err := r.store.Update(func(st *state) error {
		for i := range st.Links {
			if st.Links[i].Number == number {
				st.Links = append(st.Links[:i], st.Links[i+1:]...)
				return nil
			}
		}
		return ErrLinkNotFound
	})
	if err != nil {
		return fmt.Errorf("failed to delete link %d: %w", number, err)
	}
	return nil
}
