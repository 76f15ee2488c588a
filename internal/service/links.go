package service

import (
	"context"
	"time"

	"github.com/mdnahidul337/report-support/internal/repository"
)

// Link registry operations. The registry shares the state document with the
// moderation counters but carries no policy logic; admin gating happens at
// the handler boundary.

func (s *ModerationService) AddLink(ctx context.Context, number int, url, dateLabel string, addedBy int64) (*repository.LinkEntry, error) {
	_, span := s.tracer.Start(ctx, "AddLink")
	defer span.End()

	return s.links.Add(repository.LinkEntry{
		Number:    number,
		URL:       url,
		DateLabel: dateLabel,
		AddedBy:   addedBy,
		CreatedAt: time.Now(),
	})
}

func (s *ModerationService) GetLink(ctx context.Context, number int) (*repository.LinkEntry, error) {
	_, span := s.tracer.Start(ctx, "GetLink")
	defer span.End()
	return s.links.Get(number)
}

func (s *ModerationService) ListLinks(ctx context.Context) ([]repository.LinkEntry, error) {
	_, span := s.tracer.Start(ctx, "ListLinks")
	defer span.End()
	return s.links.List()
}

func (s *ModerationService) DeleteLink(ctx context.Context, number int) error {
	_, span := s.tracer.Start(ctx, "DeleteLink")
	defer span.End()
	return s.links.Delete(number)
}
