package repository

import (
	"fmt"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

type ReportRepository interface {
	Create(r *Report) (*Report, error)
	Get(id string) (*Report, error)
	Resolve(id string, status ReportStatus, adminID int64, at time.Time) (*Report, error)
	SetAdminMessages(id string, refs []chat.MessageRef) error
	CountPending() (int64, error)
}

type StoreReportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) ReportRepository {
	return &StoreReportRepository{store: store}
}

// Create assigns the next sequence-derived ID, stamps the report pending and
// persists it.
func (r *StoreReportRepository) Create(rep *Report) (*Report, error) {
	err := r.store.Update(func(st *state) error {
		st.ReportSeq++
		rep.ID = fmt.Sprintf("g%d:u%d:t%d:%d", rep.GroupID, rep.ReporterID, rep.ReportedID, st.ReportSeq)
		rep.Status = ReportPending
		if rep.CreatedAt.IsZero() {
			rep.CreatedAt = time.Now()
		}
		st.Reports[rep.ID] = rep
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return rep, nil
}

func (r *StoreReportRepository) Get(id string) (*Report, error) {
	var found *Report
	r.store.View(func(st *state) {
		if rep, ok := st.Reports[id]; ok {
			cp := *rep
			found = &cp
		}
	})
	if found == nil {
		return nil, ErrReportNotFound
	}
	return found, nil
}

// Resolve performs the single terminal transition. A second resolution of
// the same report fails with ErrAlreadyResolved; the check and the write
// happen in one Update, so concurrent decisions are linearized.
func (r *StoreReportRepository) Resolve(id string, status ReportStatus, adminID int64, at time.Time) (*Report, error) {
	var resolved *Report
	err := r.store.Update(func(st *state) error {
		rep, ok := st.Reports[id]
		if !ok {
			return ErrReportNotFound
		}
		if rep.Terminal() {
			return ErrAlreadyResolved
		}
		rep.Status = status
		rep.ResolvedAt = &at
		rep.ResolvedBy = adminID
		cp := *rep
		resolved = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *StoreReportRepository) SetAdminMessages(id string, refs []chat.MessageRef) error {
	return r.store.Update(func(st *state) error {
		rep, ok := st.Reports[id]
		if !ok {
			return ErrReportNotFound
		}
		rep.AdminMessages = refs
		return nil
	})
}

func (r *StoreReportRepository) CountPending() (int64, error) {
	var count int64
	r.store.View(func(st *state) {
		for _, rep := range st.Reports {
			if rep.Status == ReportPending {
				count++
			}
		}
	})
	return count, nil
}
