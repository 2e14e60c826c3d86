package media

import (
	"bytes"
	"mime/multipart"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestStageWritesAndCleansUp(t *testing.T) {
	s := NewStager(t.TempDir())

	path, cleanup, err := s.Stage(fileHeader(t, "wallet.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	require.FileExists(t, path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), got)

	cleanup()
	cleanup()
	require.NoFileExists(t, path)
}

func TestStageRejectsUnsupportedType(t *testing.T) {
	s := NewStager(t.TempDir())

	_, cleanup, err := s.Stage(fileHeader(t, "notes.pdf", []byte("%PDF")))
	require.ErrorIs(t, err, ErrUnsupportedImage)
	cleanup()

	_, _, err = s.Stage(nil)
	require.Error(t, err)
}
