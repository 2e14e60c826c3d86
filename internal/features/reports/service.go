package reports

import (
	"context"
	"time"

	"github.com/xyz-asif/foundit/internal/features/identity"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

// IdentityProvider yields the authenticated caller, if any
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (*identity.Identity, bool)
}

// Uploader commits a local image and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, localRef string) (string, error)
}

// RecordStore persists reports
type RecordStore interface {
	Insert(ctx context.Context, report *Report) (*Report, error)
}

// Service files found-item reports
type Service struct {
	identities IdentityProvider
	uploader   Uploader
	store      RecordStore
	log        *logger.Logger
}

func NewService(identities IdentityProvider, uploader Uploader, store RecordStore, log *logger.Logger) *Service {
	return &Service{
		identities: identities,
		uploader:   uploader,
		store:      store,
		log:        log.Named("submit"),
	}
}

// Submit validates form, resolves the reporter, uploads imageRef when set and
// stores the report. Each step runs once, in order; the image is always
// committed before the record that points at it. A PersistFailed error after
// a successful upload leaves the uploaded object in place.
func (s *Service) Submit(ctx context.Context, form SubmitForm, imageRef string) (*Report, error) {
	const op = "reports.Submit"
	started := time.Now()

	if missing := MissingFields(form); len(missing) > 0 {
		recordSubmit(apperrors.KindValidation, started)
		return nil, apperrors.Validation(op, missing)
	}
	form = normalize(form)

	id, ok := s.identities.CurrentIdentity(ctx)
	if !ok {
		recordSubmit(apperrors.KindUnauthenticated, started)
		return nil, apperrors.Unauthenticated(op)
	}

	report := &Report{
		ItemName:         form.ItemName,
		FoundLocation:    form.FoundLocation,
		RetrieveLocation: form.RetrieveLocation,
		Details:          form.Details,
		ReporterName:     ReporterName(id),
		ReporterID:       id.Subject,
	}

	if imageRef != "" {
		url, err := s.uploader.Upload(ctx, imageRef)
		if err != nil {
			s.log.Warn("upload failed for %s: %v", id.Subject, err)
			recordSubmit(apperrors.KindUpload, started)
			return nil, apperrors.Upload(op, err)
		}
		report.ImageURL = url
	}

	saved, err := s.store.Insert(ctx, report)
	if err != nil {
		if report.ImageURL != "" {
			s.log.Error("insert failed, image %s is now orphaned: %v", report.ImageURL, err)
		} else {
			s.log.Error("insert failed: %v", err)
		}
		recordSubmit(apperrors.KindPersist, started)
		return nil, apperrors.Persist(op, err)
	}

	s.log.Info("report %s filed by %s", saved.ID.Hex(), saved.ReporterName)
	recordSubmit(0, started)
	return saved, nil
}
