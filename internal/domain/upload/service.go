package upload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10 MB
	UploadsBaseDir     = "./uploads"
)

type fileKind struct {
	mimeType string
	// sniffed lists what http.DetectContentType may report for this kind.
	sniffed []string
}

var allowed = map[string]fileKind{
	".pdf":  {"application/pdf", []string{"application/pdf"}},
	".csv":  {"text/csv", []string{"text/plain", "text/csv"}},
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{"application/zip"}},
	".xls":  {"application/vnd.ms-excel", []string{"application/octet-stream"}},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []string{"application/zip"}},
	".doc":  {"application/msword", []string{"application/octet-stream"}},
	".png":  {"image/png", []string{"image/png"}},
	".jpg":  {"image/jpeg", []string{"image/jpeg"}},
	".jpeg": {"image/jpeg", []string{"image/jpeg"}},
}

// IsAllowed reports whether name has an accepted document or image extension.
func IsAllowed(name string) bool {
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Service stores attachments on local disk and records them in the database.
type Service struct {
	repo    Repository
	baseDir string
	maxSize int64
	now     func() time.Time
}

func NewService(repo Repository, baseDir string, maxSize int64) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Service{repo: repo, baseDir: baseDir, maxSize: maxSize, now: time.Now}
}

// MaxSize is the per-file limit in bytes.
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Store writes content under name and returns the stored path, relative to
// the uploads dir. An existing file is never overwritten.
func (s *Service) Store(ctx context.Context, name string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(content)) > s.maxSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(name))
	kind, ok := allowed[ext]
	if !ok || !kind.matches(content) {
		return "", ErrInvalidFileType
	}

	// uploads/YYYY/MM/DD/
	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, filepath.FromSlash(relDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	id := uuid.NewString()
	filename := sanitizeName(name) + ext
	absPath, err := writeExclusive(filepath.Join(absDir, filename), content)
	if errors.Is(err, fs.ErrExist) {
		filename = id + "_" + filename
		absPath, err = writeExclusive(filepath.Join(absDir, filename), content)
	}
	if err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	relPath := path.Join(relDir, filename)
	record := &Upload{
		ID:           id,
		OriginalName: filepath.Base(name),
		FilePath:     relPath,
		MimeType:     kind.mimeType,
		Size:         int64(len(content)),
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("save upload record: %w", err)
	}
	return relPath, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Upload, error) {
	return s.repo.GetByID(ctx, id)
}

// Resolve returns the record and absolute disk path for a stored reference.
func (s *Service) Resolve(ctx context.Context, ref string) (*Upload, string, error) {
	ref = strings.TrimPrefix(path.Clean("/"+ref), "/")
	if ref == "" || ref == "." {
		return nil, "", ErrInvalidReference
	}
	u, err := s.repo.GetByPath(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return u, filepath.Join(s.baseDir, filepath.FromSlash(u.FilePath)), nil
}

func (k fileKind) matches(content []byte) bool {
	sniffed := strings.Split(http.DetectContentType(content), ";")[0]
	for _, t := range k.sniffed {
		if t == sniffed {
			return true
		}
	}
	return false
}

func writeExclusive(absPath string, content []byte) (string, error) {
	f, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		_ = os.Remove(absPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", err
	}
	return absPath, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name)) // extension is added separately
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		return "file"
	}
	return name
}
