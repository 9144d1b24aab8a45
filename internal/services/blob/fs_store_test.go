// File: internal/services/blob/fs_store_test.go
package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 5, 0, time.UTC)

	assert.Equal(t, "20260315093005_question.webm", ObjectKey("question.webm", at))
	assert.Equal(t, "20260315093005_my_lab_report.pdf", ObjectKey("my lab report.pdf", at))
}

func TestFSStoreWritesBlobAndReturnsPublicURL(t *testing.T) {
	root := t.TempDir()
	store := NewFSStore(root, "http://localhost:4000/")
	store.now = func() time.Time {
		return time.Date(2026, 3, 15, 9, 30, 5, 0, time.UTC)
	}

	url, err := store.Store(context.Background(), "audio-uploads", "question.webm", "audio/webm", []byte("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/uploads/audio-uploads/20260315093005_question.webm", url)

	data, err := os.ReadFile(filepath.Join(root, "audio-uploads", "20260315093005_question.webm"))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)
}

func TestFSStoreRejectsMissingFilename(t *testing.T) {
	store := NewFSStore(t.TempDir(), "http://localhost:4000")

	_, err := store.Store(context.Background(), "audio-uploads", "", "audio/webm", []byte("x"))
	assert.ErrorIs(t, err, ErrMissingFilename)
}
