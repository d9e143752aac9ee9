package localdisk

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestStoreUploadCreatesDirectoriesIdempotently(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "uploads"), zerolog.New(io.Discard))
	require.NoError(t, err)

	first, err := store.Upload(context.Background(), "Asha_Rao_2000_01_01/resume_cv.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(content))

	// Writing a second file into the same candidate directory must not fail.
	_, err = store.Upload(context.Background(), "Asha_Rao_2000_01_01/aadhaar_id.png", strings.NewReader("png"))
	require.NoError(t, err)
}

func TestStoreUploadRejectsEscapingPaths(t *testing.T) {
	store, err := New(t.TempDir(), zerolog.New(io.Discard))
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "../outside.txt", strings.NewReader("x"))
	require.Error(t, err)

	_, err = store.Upload(context.Background(), "/etc/passwd", strings.NewReader("x"))
	require.Error(t, err)
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := New("", zerolog.New(io.Discard))
	require.Error(t, err)
}
