package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusforge/recruit-backend/internal/access"
	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sentinel errors for file uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNotFound        = errors.New("file not found")
)

// Allowed upload MIME types: documents and images applicants attach to
// their submissions.
var allowedMIMETypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/zip": ".zip",
	"text/plain":      ".txt",
}

// FileService handles upload storage and metadata. Blobs live on local disk
// under a UUID filename; metadata rows track ownership and submission links.
type FileService struct {
	cfg      *config.Config
	fileRepo *repository.FileRepository
	log      zerolog.Logger
}

// NewFileService creates a new FileService.
func NewFileService(cfg *config.Config, fileRepo *repository.FileRepository, log zerolog.Logger) *FileService {
	return &FileService{
		cfg:      cfg,
		fileRepo: fileRepo,
		log:      log.With().Str("component", "file_service").Logger(),
	}
}

// SaveUpload validates and stores an uploaded file, optionally linking it to
// a submission. The link is best effort: a bad submission id leaves the file
// unattached rather than failing the upload.
func (s *FileService) SaveUpload(ctx context.Context, file multipart.File, header *multipart.FileHeader, userID *uuid.UUID, submissionID *uuid.UUID) (*model.StoredFile, error) {
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s (allowed: %s)",
			ErrUnsupportedFileType, contentType, strings.Join(allowedTypes(), ", "))
	}

	if header.Size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	destPath := filepath.Join(s.cfg.UploadDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	stored := &model.StoredFile{
		OriginalName: header.Filename,
		Filename:     filename,
		MimeType:     contentType,
		Size:         header.Size,
		Path:         "/uploads/" + filename,
		UserID:       userID,
	}
	if err := s.fileRepo.Create(ctx, stored); err != nil {
		// Metadata failed; remove the orphaned blob.
		_ = os.Remove(destPath)
		return nil, err
	}

	// The row is inserted unattached first so a nonexistent submission id
	// cannot fail the upload against the FK.
	if submissionID != nil {
		if err := s.fileRepo.AttachToSubmission(ctx, stored.ID, *submissionID); err != nil {
			s.log.Warn().Err(err).
				Str("file_id", stored.ID.String()).
				Str("submission_id", submissionID.String()).
				Msg("could not link upload to submission")
		} else {
			stored.SubmissionID = submissionID
		}
	}

	s.log.Info().Str("file_id", stored.ID.String()).Str("mime", contentType).Int64("size", header.Size).Msg("file uploaded")
	return stored, nil
}

// GetByID retrieves file metadata the actor is allowed to see: the uploader
// or any admin.
func (s *FileService) GetByID(ctx context.Context, actor access.Actor, id uuid.UUID) (*model.StoredFile, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrFileNotFound
	}
	if err := access.Authorize(actor, f.UserID); err != nil {
		return nil, err
	}
	return f, nil
}

// ListByUser retrieves the actor's own uploads.
func (s *FileService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.StoredFile, error) {
	return s.fileRepo.ListByUser(ctx, userID)
}

// Delete removes a file's metadata and its blob. Uploader or admin. Linked
// submissions keep existing; only this file disappears from them.
func (s *FileService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return ErrFileNotFound
	}
	if err := access.Authorize(actor, f.UserID); err != nil {
		return err
	}

	affected, err := s.fileRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	if err := os.Remove(filepath.Join(s.cfg.UploadDir, f.Filename)); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("file_id", id.String()).Msg("failed to remove blob")
	}
	return nil
}

// AttachToSubmission links an uploaded file to a submission.
func (s *FileService) AttachToSubmission(ctx context.Context, actor access.Actor, fileID, submissionID uuid.UUID) error {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return ErrFileNotFound
	}
	if err := access.Authorize(actor, f.UserID); err != nil {
		return err
	}
	return s.fileRepo.AttachToSubmission(ctx, fileID, submissionID)
}

func allowedTypes() []string {
	types := make([]string, 0, len(allowedMIMETypes))
	for t := range allowedMIMETypes {
		types = append(types, t)
	}
	return types
}
