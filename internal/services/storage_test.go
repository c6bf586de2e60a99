package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["resume"][0]
}

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage := NewLocalStorageService(dir)
	require.NoError(t, storage.Init(ctx))

	key, location, err := storage.SaveFile(ctx, uploadedFile(t, "My CV.PDF", []byte("%PDF-1.4")), FileTypePDF)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "pdf_"))
	assert.Equal(t, ".pdf", filepath.Ext(key))
	assert.Equal(t, filepath.Join(dir, key), location)

	data, err := storage.ReadFile(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	require.NoError(t, storage.DeleteFile(ctx, key))
	_, err = storage.ReadFile(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorageStaysInsideUploadPath(t *testing.T) {
	ctx := context.Background()
	storage := NewLocalStorageService(t.TempDir())

	_, err := storage.ReadFile(ctx, "../../etc/passwd")

	assert.Error(t, err)
}
