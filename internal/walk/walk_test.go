package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkfiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
	}
}

func collect(t *testing.T, root string) []string {
	t.Helper()
	var got []string
	w := &Walker{}
	require.NoError(t, w.Files(root, func(path string) error {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
		return nil
	}))
	return got
}

func TestFilesSingle(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "one.bin")
	path := filepath.Join(root, "one.bin")

	var got []string
	w := &Walker{}
	require.NoError(t, w.Files(path, func(p string) error {
		got = append(got, p)
		return nil
	}))
	assert.Equal(t, []string{path}, got)
}

func TestFilesTree(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "b.bin", "a/z.bin", "a/y/x.bin", "c.bin", "a/b.bin")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	assert.Equal(t, []string{
		"a/b.bin",
		"a/y/x.bin",
		"a/z.bin",
		"b.bin",
		"c.bin",
	}, collect(t, root))
}

func TestFilesSkipsLinkedDirs(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "d/f.bin")
	if err := os.Symlink(filepath.Join(root, "d"), filepath.Join(root, "link")); err != nil {
		t.Skip("symlinks not supported:", err)
	}
	assert.Equal(t, []string{"d/f.bin"}, collect(t, root))
}

func TestFilesMissing(t *testing.T) {
	w := &Walker{}
	err := w.Files(filepath.Join(t.TempDir(), "missing"), func(string) error { return nil })
	assert.True(t, errors.Is(err, fs.ErrNotExist), err)
}

func TestFilesStops(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "a.bin", "b.bin")
	stop := errors.New("stop")
	n := 0
	w := &Walker{}
	err := w.Files(root, func(string) error {
		n++
		return stop
	})
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestFeed(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "a.bin", "b/c.bin")

	out := make(chan string, 10)
	w := &Walker{}
	require.NoError(t, w.Feed(context.Background(), root, out))

	var got []string
	for p := range out {
		got = append(got, p)
	}
	assert.Equal(t, []string{filepath.Join(root, "a.bin"), filepath.Join(root, "b", "c.bin")}, got)
}

func TestFeedCancelled(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "a.bin", "b.bin")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan string) // nobody reads
	w := &Walker{}
	err := w.Feed(ctx, root, out)
	assert.True(t, errors.Is(err, context.Canceled), err)
	_, open := <-out
	assert.False(t, open)
}
