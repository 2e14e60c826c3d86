package cloudinary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService("", "key", "secret", "")
	require.Error(t, err)

	svc, err := NewService("demo", "key", "secret", "")
	require.NoError(t, err)
	require.Equal(t, "lost-found-images", svc.uploadFolder)
}

func TestPublicIDFromKey(t *testing.T) {
	require.Equal(t, "reports/1700000000000", publicIDFromKey("reports/1700000000000.jpg"))
	require.Equal(t, "reports/plain", publicIDFromKey("reports/plain"))
}

func TestDataURI(t *testing.T) {
	require.Equal(t, "data:image/jpeg;base64,AQID", dataURI("image/jpeg", []byte{1, 2, 3}))
	require.Equal(t, "data:application/octet-stream;base64,AA==", dataURI("", []byte{0}))
}

func TestPutRejectsEmptyInput(t *testing.T) {
	svc, err := NewService("demo", "key", "secret", "")
	require.NoError(t, err)

	_, err = svc.Put(context.Background(), "", []byte{1}, "image/jpeg")
	require.Error(t, err)

	_, err = svc.Put(context.Background(), "reports/1.jpg", nil, "image/jpeg")
	require.Error(t, err)
}

func TestPublicURLPrefersStoredURL(t *testing.T) {
	svc, err := NewService("demo", "key", "secret", "")
	require.NoError(t, err)

	require.Equal(t, "", svc.PublicURL(nil))
	require.Equal(t, "https://cdn.example/x.jpg", svc.PublicURL(&ObjectRef{URL: "https://cdn.example/x.jpg"}))
	require.Contains(t, svc.PublicURL(&ObjectRef{PublicID: "lost-found-images/reports/1"}), "lost-found-images/reports/1")
}

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound("Resource not found - lost-found-images/reports/1"))
	require.False(t, isNotFound("Invalid API key"))
}
