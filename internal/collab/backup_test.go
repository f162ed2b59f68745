package collab

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRunCopiesSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/app.db", []byte("dbdata"), 0o640))

	b := NewBackupRunner(fs, "/data/app.db", "/backups")
	name, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, "backup-"))
	assert.True(t, strings.HasSuffix(name, ".db"))

	data, err := afero.ReadFile(fs, filepath.Join("/backups", name))
	require.NoError(t, err)
	assert.Equal(t, "dbdata", string(data))
}

func TestBackupMissingSource(t *testing.T) {
	b := NewBackupRunner(afero.NewMemMapFs(), "/data/missing.db", "/backups")
	_, err := b.Run(context.Background())
	assert.Error(t, err)
}

func TestBackupNamesUnique(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/app.db", []byte("x"), 0o640))

	b := NewBackupRunner(fs, "/data/app.db", "/backups")
	n1, err := b.Run(context.Background())
	require.NoError(t, err)
	n2, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, n1, n2)
}
