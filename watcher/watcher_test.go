package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "tex_mix.frag")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(frag, []byte("#version 300 es\n"), 0o644))

	w, err := New([]string{frag})
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.Pending())

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("#version 300 es\n// edited\n"), 0o644))

	abs, err := filepath.Abs(frag)
	require.NoError(t, err)

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Pending()...)
		return len(got) > 0
	}, 5*time.Second, 10*time.Millisecond)

	for _, p := range got {
		assert.Equal(t, abs, p)
	}
}

func TestPendingDeduplicates(t *testing.T) {
	w := &Watcher{changed: make(chan string, 4)}
	w.changed <- "/a"
	w.changed <- "/b"
	w.changed <- "/a"

	assert.Equal(t, []string{"/a", "/b"}, w.Pending())
	assert.Empty(t, w.Pending())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "a.vert")})
	assert.Error(t, err)
}
