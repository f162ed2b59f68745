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

func TestFileStoreSaveGeneratesName(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/uploads")

	f, err := store.Save(context.Background(), []byte("hello"), "report.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, "report.pdf", f.Name)
	assert.True(t, strings.HasSuffix(f.Name, ".pdf"))
	assert.Equal(t, int64(5), f.Size)

	data, err := afero.ReadFile(fs, filepath.Join("/uploads", f.Name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

// 带路径的文件名不会离开上传根目录
func TestFileStoreSaveTraversalName(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/uploads")

	f, err := store.Save(context.Background(), []byte("x"), "../../etc/passwd")
	require.NoError(t, err)

	assert.NotContains(t, f.Name, "/")
	assert.NotContains(t, f.Name, "..")

	exists, err := afero.Exists(fs, "/etc/passwd")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(fs, filepath.Join("/uploads", f.Name))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		`..\..\windows\a.txt`: "a.txt",
		"a b#c$.txt":          "abc.txt",
		"....":                "file",
		"":                    "file",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeName(in), "input %q", in)
	}
}

func TestFileStoreUniqueNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/uploads")

	a, err := store.Save(context.Background(), []byte("1"), "same.txt")
	require.NoError(t, err)
	b, err := store.Save(context.Background(), []byte("2"), "same.txt")
	require.NoError(t, err)

	assert.NotEqual(t, a.Name, b.Name)
}
