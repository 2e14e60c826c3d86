package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/xyz-asif/foundit/internal/pkg/cloudinary"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
	"github.com/xyz-asif/foundit/internal/pkg/validator"
)

const (
	// KeyPrefix and KeyExtension frame every object key: reports/<unix millis>.jpg
	KeyPrefix    = "reports/"
	KeyExtension = ".jpg"
	ContentType  = "image/jpeg"

	MaxImageSize = int64(10 * 1024 * 1024) // 10MB
)

var (
	ErrSourceMissing    = errors.New("image source does not exist")
	ErrStoreRejected    = errors.New("object store rejected image")
	ErrImageTooLarge    = fmt.Errorf("image exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024))
	errInvalidPublicURL = errors.New("object store returned no public URL")
)

// ObjectStore is the durable blob storage the pipeline commits to
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*cloudinary.ObjectRef, error)
	PublicURL(ref *cloudinary.ObjectRef) string
}

// PendingUpload describes one in-flight upload. It is never reused.
type PendingUpload struct {
	LocalRef    string
	Key         string
	ContentType string
}

// Pipeline turns a local image file into a publicly reachable object
type Pipeline struct {
	store ObjectStore
	now   func() time.Time
	log   *logger.Logger
}

func NewPipeline(store ObjectStore, log *logger.Logger) *Pipeline {
	return &Pipeline{
		store: store,
		now:   time.Now,
		log:   log.Named("upload"),
	}
}

// ObjectKey derives the object key for an upload started at t
func ObjectKey(t time.Time) string {
	return KeyPrefix + strconv.FormatInt(t.UnixMilli(), 10) + KeyExtension
}

// Upload reads localRef fully and commits it as a single object, returning
// its public URL. Failures wrap ErrSourceMissing or ErrStoreRejected and are
// never retried here.
func (p *Pipeline) Upload(ctx context.Context, localRef string) (string, error) {
	pending, err := p.prepare(localRef)
	if err != nil {
		p.log.Warn("rejected source %q: %v", localRef, err)
		return "", err
	}

	data, err := os.ReadFile(pending.LocalRef)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, localRef)
		}
		return "", fmt.Errorf("%w: read %s: %v", ErrSourceMissing, localRef, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrSourceMissing, localRef)
	}

	started := time.Now()
	ref, err := p.store.Put(ctx, pending.Key, data, pending.ContentType)
	recordUpload(err == nil, time.Since(started))
	if err != nil {
		p.log.Error("store rejected %s: %v", pending.Key, err)
		return "", fmt.Errorf("%w: %w", ErrStoreRejected, err)
	}

	url := p.store.PublicURL(ref)
	if !validator.IsValidURL(url) {
		p.log.Error("store returned unusable url %q for %s", url, pending.Key)
		return "", fmt.Errorf("%w: %w", ErrStoreRejected, errInvalidPublicURL)
	}

	p.log.Info("committed %s (%d bytes)", pending.Key, len(data))
	return url, nil
}

func (p *Pipeline) prepare(localRef string) (*PendingUpload, error) {
	if localRef == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrSourceMissing)
	}

	info, err := os.Stat(localRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceMissing, localRef)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a file", ErrSourceMissing, localRef)
	}
	if info.Size() > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	return &PendingUpload{
		LocalRef:    localRef,
		Key:         ObjectKey(p.now()),
		ContentType: ContentType,
	}, nil
}
