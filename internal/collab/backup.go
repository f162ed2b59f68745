package collab

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/pkg/utils"
)

// BackupRunner copies the configured source file into the backup directory.
// Both paths come from startup config; callers cannot steer either side.
type BackupRunner struct {
	fs     afero.Fs
	source string
	dir    string
}

func NewBackupRunner(fs afero.Fs, source, dir string) *BackupRunner {
	return &BackupRunner{fs: fs, source: source, dir: dir}
}

// Run returns the generated backup file name.
func (b *BackupRunner) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.Internal("backup cancelled", err)
	}
	src, err := b.fs.Open(b.source)
	if err != nil {
		return "", domain.Internal("backup source unavailable", err)
	}
	defer src.Close()

	if err := b.fs.MkdirAll(b.dir, 0o750); err != nil {
		return "", domain.Internal("backup dir unavailable", err)
	}
	name := fmt.Sprintf("backup-%s-%s.db", time.Now().UTC().Format("20060102T150405"), utils.NewID()[:8])
	dst, err := b.fs.Create(filepath.Join(b.dir, name))
	if err != nil {
		return "", domain.Internal("backup create failed", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", domain.Internal("backup copy failed", err)
	}
	return name, nil
}
