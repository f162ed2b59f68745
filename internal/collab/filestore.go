package collab

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/pkg/utils"
)

type StoredFile struct {
	Name         string `json:"name"`         // 实际落盘名（生成，不可预测）
	OriginalName string `json:"originalName"` // 清洗后的原始名，仅作元数据
	Size         int64  `json:"size"`
}

// FileStore writes uploads under a fixed root. The stored name is always
// generated; the caller-supplied name never reaches the filesystem as a path.
type FileStore struct {
	fs   afero.Fs
	root string
}

func NewFileStore(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: root}
}

func (s *FileStore) Save(ctx context.Context, data []byte, originalName string) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, domain.Internal("save cancelled", err)
	}
	clean := SanitizeName(originalName)
	name := utils.NewID() + extOf(clean)
	if err := s.fs.MkdirAll(s.root, 0o750); err != nil {
		return StoredFile{}, domain.Internal("file store unavailable", err)
	}
	full := filepath.Join(s.root, name)
	if err := afero.WriteFile(s.fs, full, data, 0o640); err != nil {
		return StoredFile{}, domain.Internal("file write failed", err)
	}
	return StoredFile{Name: name, OriginalName: clean, Size: int64(len(data))}, nil
}

// SanitizeName strips any path structure and keeps a short safe basename.
func SanitizeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		out = "file"
	}
	if len(out) > 64 {
		out = out[len(out)-64:]
	}
	return out
}

func extOf(name string) string {
	ext := path.Ext(name)
	if len(ext) > 10 {
		return ""
	}
	return ext
}
