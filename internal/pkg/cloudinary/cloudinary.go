package cloudinary

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Service is the object store backing report photos
type Service struct {
	cld          *cloudinary.Cloudinary
	uploadFolder string
}

// ObjectRef identifies an object committed to Cloudinary
type ObjectRef struct {
	Key      string `json:"key"`
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"fileSize"`
}

// NewService creates a new Cloudinary service instance
func NewService(cloudName, apiKey, apiSecret, uploadFolder string) (*Service, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}

	// Build Cloudinary URL
	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName)

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true

	if uploadFolder == "" {
		uploadFolder = "lost-found-images"
	}

	return &Service{
		cld:          cld,
		uploadFolder: uploadFolder,
	}, nil
}

// Put stores data under key. The upload is a single API call, so Cloudinary
// either commits the whole object or nothing.
func (s *Service) Put(ctx context.Context, key string, data []byte, contentType string) (*ObjectRef, error) {
	if key == "" {
		return nil, errors.New("object key is required")
	}
	if len(data) == 0 {
		return nil, errors.New("object data is empty")
	}

	uploadParams := uploader.UploadParams{
		PublicID:     publicIDFromKey(key),
		Folder:       s.uploadFolder,
		ResourceType: "image",
	}

	result, err := s.cld.Upload.Upload(ctx, dataURI(contentType, data), uploadParams)
	if err != nil {
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary rejected object %s: %s", key, result.Error.Message)
	}

	return &ObjectRef{
		Key:      key,
		PublicID: result.PublicID,
		URL:      result.SecureURL,
		Format:   result.Format,
		Width:    result.Width,
		Height:   result.Height,
		FileSize: int64(result.Bytes),
	}, nil
}

// PublicURL returns the HTTPS delivery URL of a committed object
func (s *Service) PublicURL(ref *ObjectRef) string {
	if ref == nil {
		return ""
	}
	if ref.URL != "" {
		return ref.URL
	}

	img, err := s.cld.Image(ref.PublicID)
	if err != nil {
		return ""
	}
	url, err := img.String()
	if err != nil {
		return ""
	}
	return url
}

// Exists looks key up through the Admin API
func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	publicID := s.uploadFolder + "/" + publicIDFromKey(key)

	result, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: publicID})
	if err != nil {
		return false, fmt.Errorf("failed to look up object %s: %w", key, err)
	}
	if result.Error.Message != "" {
		if isNotFound(result.Error.Message) {
			return false, nil
		}
		return false, fmt.Errorf("cloudinary lookup of %s failed: %s", key, result.Error.Message)
	}

	return result.PublicID != "", nil
}

// publicIDFromKey strips the extension; Cloudinary derives the format from the content
func publicIDFromKey(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}

func dataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func isNotFound(message string) bool {
	return strings.Contains(strings.ToLower(message), "not found")
}
