package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	store, err := NewDocumentStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestDocumentStorePersist(t *testing.T) {
	store := newTestStore(t)

	t.Run("round trips content byte for byte", func(t *testing.T) {
		content := []byte("resume body\nwith multiple lines")
		handle, err := store.Persist(bytes.NewReader(content), "resume.pdf")
		require.NoError(t, err)
		require.NotEmpty(t, handle.ID)
		require.Equal(t, "resume.pdf", handle.OriginalFilename)
		require.Equal(t, domain.DocumentTypeResume, handle.DocumentType)

		got, err := store.Read(handle.LocalPath)
		require.NoError(t, err)
		require.Equal(t, content, got)
	})

	t.Run("keeps original extension", func(t *testing.T) {
		handle, err := store.Persist(bytes.NewReader([]byte("x")), "cv.docx")
		require.NoError(t, err)
		require.Equal(t, ".docx", filepath.Ext(handle.LocalPath))
	})

	t.Run("generated names never collide with original filename", func(t *testing.T) {
		first, err := store.Persist(bytes.NewReader([]byte("a")), "same.pdf")
		require.NoError(t, err)
		second, err := store.Persist(bytes.NewReader([]byte("b")), "same.pdf")
		require.NoError(t, err)
		require.NotEqual(t, first.LocalPath, second.LocalPath)

		got, err := store.Read(first.LocalPath)
		require.NoError(t, err)
		require.Equal(t, []byte("a"), got)
	})

	t.Run("tolerates filename without extension", func(t *testing.T) {
		handle, err := store.Persist(bytes.NewReader([]byte("plain")), "resume")
		require.NoError(t, err)
		require.Equal(t, "", filepath.Ext(handle.LocalPath))

		got, err := store.Read(handle.LocalPath)
		require.NoError(t, err)
		require.Equal(t, []byte("plain"), got)
	})
}

func TestDocumentStoreRemove(t *testing.T) {
	store := newTestStore(t)

	t.Run("deletes the file", func(t *testing.T) {
		handle, err := store.Persist(bytes.NewReader([]byte("gone soon")), "resume.pdf")
		require.NoError(t, err)

		require.NoError(t, store.Remove(handle))
		_, err = os.Stat(handle.LocalPath)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("is idempotent", func(t *testing.T) {
		handle, err := store.Persist(bytes.NewReader([]byte("x")), "resume.pdf")
		require.NoError(t, err)

		require.NoError(t, store.Remove(handle))
		require.NoError(t, store.Remove(handle))
	})

	t.Run("accepts nil handle", func(t *testing.T) {
		require.NoError(t, store.Remove(nil))
	})
}

func TestDocumentStoreRead(t *testing.T) {
	store := newTestStore(t)

	t.Run("missing file maps to ErrNotFound", func(t *testing.T) {
		handle, err := store.Persist(bytes.NewReader([]byte("x")), "resume.pdf")
		require.NoError(t, err)
		require.NoError(t, os.Remove(handle.LocalPath))

		_, err = store.Read(handle.LocalPath)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestHandleDocument(t *testing.T) {
	store := newTestStore(t)

	handle, err := store.Persist(bytes.NewReader([]byte("x")), "resume.pdf")
	require.NoError(t, err)

	doc := handle.Document()
	require.Equal(t, handle.ID, doc.ID)
	require.Equal(t, handle.OriginalFilename, doc.OriginalFilename)
	require.Equal(t, handle.LocalPath, doc.LocalPath)
	require.Equal(t, handle.DocumentType, doc.DocumentType)
	require.Equal(t, handle.UploadedAt, doc.UploadedAt)
}
