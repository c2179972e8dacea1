package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
	"github.com/tongcompany/intake-portal/internal/storage/nas"
)

// Attachment types accepted by the portal: images, PDF, ZIP archives
// and Illustrator files.
var allowedTypes = map[string]bool{
	"image/jpeg":                       true,
	"image/jpg":                        true,
	"image/png":                        true,
	"image/gif":                        true,
	"image/webp":                       true,
	"application/pdf":                  true,
	"application/zip":                  true,
	"application/x-zip-compressed":     true,
	"application/vnd.adobe.illustrator": true,
	"application/postscript":           true,
}

// Extension fallback for browsers that send a generic content type.
var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".pdf": true, ".zip": true, ".ai": true,
}

// Categories become path segments on disk and in NAS keys, so they
// are restricted to a single plain name (letters, digits, underscore,
// hyphen; Korean included).
var categoryRe = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// Service stores uploaded attachments on local disk, mirrors them to
// the NAS and keeps the project's step-7 file list current. The local
// write is authoritative; mirror failures are logged only.
type Service struct {
	repo      *repository.ProjectRepository
	mirror    nas.Mirror
	uploadDir string
	maxSize   int64
}

func NewService(repo *repository.ProjectRepository, mirror nas.Mirror, uploadDir string, maxSize int64) *Service {
	return &Service{
		repo:      repo,
		mirror:    mirror,
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// Upload validates and persists one attachment under
// <uploadDir>/<projectID>/<category>/<uuid><ext>. The returned
// FileInfo's UploadPath is relative to the upload root.
func (s *Service) Upload(ctx context.Context, projectID, category string, fh *multipart.FileHeader) (*domain.FileInfo, error) {
	if !s.repo.Exists(projectID) {
		return nil, domain.ErrNotFound
	}

	if !categoryRe.MatchString(category) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}

	if fh.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", domain.ErrFileTooLarge, fh.Size, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if !allowedTypes[contentType] && !allowedExts[ext] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: stream exceeds %d bytes", domain.ErrFileTooLarge, s.maxSize)
	}

	fileName := uuid.New().String() + ext
	relPath := path.Join(projectID, category, fileName)

	dir := filepath.Join(s.uploadDir, projectID, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	if err := s.mirror.Write(ctx, relPath, data); err != nil {
		log.Error().Err(err).Str("path", relPath).Msg("NAS mirror write failed")
	}

	info := domain.FileInfo{
		Name:       fh.Filename,
		Size:       fh.Size,
		Type:       contentType,
		UploadPath: relPath,
		UploadedAt: time.Now(),
	}

	if _, err := s.repo.Apply(projectID, func(p *domain.Project) {
		p.Step7Data = withFile(p.Step7Data, category, info)
	}); err != nil {
		// Project vanished between the existence check and the list
		// update; remove the orphaned file.
		_ = os.Remove(filepath.Join(dir, fileName))
		return nil, err
	}

	log.Info().Str("project_id", projectID).Str("path", relPath).Int64("size", fh.Size).Msg("file uploaded")
	return &info, nil
}

// Delete removes an attachment from disk, the NAS mirror and the
// project's file list. relPath is the UploadPath returned by Upload.
func (s *Service) Delete(ctx context.Context, projectID, relPath string) error {
	if !s.repo.Exists(projectID) {
		return domain.ErrNotFound
	}

	clean := path.Clean(relPath)
	if strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return domain.ErrFileNotFound
	}
	// Files may only be deleted through the project that owns them.
	if !strings.HasPrefix(clean, projectID+"/") {
		return domain.ErrFileNotFound
	}

	full := filepath.Join(s.uploadDir, filepath.FromSlash(clean))
	if _, err := os.Stat(full); err != nil {
		return domain.ErrFileNotFound
	}
	if err := os.Remove(full); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}

	if err := s.mirror.Delete(ctx, clean); err != nil {
		log.Error().Err(err).Str("path", clean).Msg("NAS mirror delete failed")
	}

	if _, err := s.repo.Apply(projectID, func(p *domain.Project) {
		p.Step7Data = withoutFile(p.Step7Data, clean)
	}); err != nil {
		return err
	}

	log.Info().Str("project_id", projectID).Str("path", clean).Msg("file deleted")
	return nil
}

// withFile returns a new step-7 payload with the attachment appended
// to its category. Copy-on-write keeps previously handed-out project
// copies untouched.
func withFile(cur *domain.Step7Data, category string, info domain.FileInfo) *domain.Step7Data {
	next := cloneStep7(cur)
	for i := range next.UploadedFiles {
		if next.UploadedFiles[i].Category == category {
			next.UploadedFiles[i].Files = append(next.UploadedFiles[i].Files, info)
			return next
		}
	}
	next.UploadedFiles = append(next.UploadedFiles, domain.FileCategory{
		Category: category,
		Files:    []domain.FileInfo{info},
	})
	return next
}

// withoutFile returns a new step-7 payload with the attachment at
// relPath removed. Empty categories are kept; they still render as
// upload targets.
func withoutFile(cur *domain.Step7Data, relPath string) *domain.Step7Data {
	next := cloneStep7(cur)
	for i := range next.UploadedFiles {
		files := next.UploadedFiles[i].Files
		kept := files[:0:0]
		for _, f := range files {
			if f.UploadPath != relPath {
				kept = append(kept, f)
			}
		}
		next.UploadedFiles[i].Files = kept
	}
	return next
}

func cloneStep7(cur *domain.Step7Data) *domain.Step7Data {
	next := &domain.Step7Data{}
	if cur == nil {
		return next
	}
	next.UploadedFiles = make([]domain.FileCategory, len(cur.UploadedFiles))
	for i, cat := range cur.UploadedFiles {
		files := make([]domain.FileInfo, len(cat.Files))
		copy(files, cat.Files)
		next.UploadedFiles[i] = domain.FileCategory{Category: cat.Category, Files: files}
	}
	return next
}
