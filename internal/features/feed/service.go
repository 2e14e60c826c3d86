package feed

import (
	"context"
	"time"

	"github.com/xyz-asif/foundit/internal/features/reports"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

// LookbackWindow is how far back the recent feed reaches
const LookbackWindow = 7 * 24 * time.Hour

// RecordStore reads reports by creation time
type RecordStore interface {
	FindSince(ctx context.Context, since time.Time) ([]reports.Report, error)
}

// Snapshot is one evaluation of the recent feed
type Snapshot struct {
	Items []reports.Report `json:"items"`
	Since time.Time        `json:"since"`
	Count int              `json:"count"`
}

type Service struct {
	store RecordStore
	now   func() time.Time
	log   *logger.Logger
}

func NewService(store RecordStore, log *logger.Logger) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		log:   log.Named("feed"),
	}
}

// FetchRecent returns reports from the last LookbackWindow, newest first
func (s *Service) FetchRecent(ctx context.Context) ([]reports.Report, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Items, nil
}

// Snapshot evaluates the feed along with the window start it used.
// The window is recomputed on every call and results are never cached.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	const op = "feed.FetchRecent"
	started := time.Now()

	since := s.now().Add(-LookbackWindow)
	items, err := s.store.FindSince(ctx, since)
	if err != nil {
		s.log.Error("query since %s failed: %v", since.UTC().Format(time.RFC3339), err)
		recordFetch(false, started)
		return nil, apperrors.Fetch(op, err)
	}
	if items == nil {
		items = []reports.Report{}
	}

	recordFetch(true, started)
	return &Snapshot{
		Items: items,
		Since: since.UTC(),
		Count: len(items),
	}, nil
}
