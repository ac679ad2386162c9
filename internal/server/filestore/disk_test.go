package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	err = store.Save(context.Background(), "u-1_20260101_paper.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "u-1_20260101_paper.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestDiskStore_SaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	err = store.Save(context.Background(), "../../etc/evil.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "evil.pdf"))
	assert.NoError(t, err, "file must land inside the upload dir")
}

func TestNewDiskStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
