// AngelaMos | 2026
// service.go

package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/core"
	"github.com/carterperez-dev/ntandostore/internal/validate"
)

type Service struct {
	repo        Repository
	files       FileStore
	allowedExts []string
	now         func() time.Time
}

func NewService(
	repo Repository,
	files FileStore,
	cfg config.UploadConfig,
) *Service {
	return &Service{
		repo:        repo,
		files:       files,
		allowedExts: cfg.AllowedExtensions,
		now:         time.Now,
	}
}

// UploadLogo writes the file under a collision-resistant name, then commits
// the metadata row. The file is written first so a metadata row never refers
// to a missing file; a failed row insert removes the file again.
func (s *Service) UploadLogo(
	ctx context.Context,
	originalName, clientName string,
	data []byte,
) (*Logo, error) {
	if len(data) == 0 {
		return nil, core.UploadError("no file uploaded")
	}

	if err := validate.FileAllowed(originalName, s.allowedExts); err != nil {
		return nil, core.UploadError(err.Error())
	}

	data = s.recompressBestEffort(originalName, data)

	filename := fmt.Sprintf("%s_%s",
		s.now().Format("20060102_150405"),
		validate.SafeFilename(originalName),
	)

	if err := s.files.SaveGallery(filename, data); err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	logo := &Logo{
		ID:          uuid.New().String(),
		Filename:    filename,
		ClientName:  validate.Sanitize(clientName),
		SizeBytes:   int64(len(data)),
		ContentHash: core.HashContent(data),
	}

	if err := s.repo.CreateLogo(ctx, logo); err != nil {
		if removeErr := s.files.RemoveGallery(filename); removeErr != nil {
			slog.Error("orphaned gallery file after failed insert",
				"filename", filename,
				"error", removeErr,
			)
		}
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	return logo, nil
}

// DeleteLogo removes the backing file before the metadata row, so a crash
// in between leaves a row that a retry can still delete. An already-absent
// file is not an error.
func (s *Service) DeleteLogo(ctx context.Context, id string) error {
	logo, err := s.repo.GetLogo(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.RemoveGallery(logo.Filename); err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}

	if err := s.repo.DeleteLogo(ctx, id); err != nil {
		// A concurrent delete finishing first is still a success.
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

func (s *Service) ListGallery(ctx context.Context) ([]Logo, error) {
	return s.repo.ListLogos(ctx)
}

// ActivateCompany installs the upload as the one active company logo. The
// repository runs the deactivate-and-insert swap in a single transaction;
// if a concurrent activation wins the race, the swap is retried once
// against the new state.
func (s *Service) ActivateCompany(
	ctx context.Context,
	originalName string,
	data []byte,
) (*CompanyLogo, error) {
	if len(data) == 0 {
		return nil, core.UploadError("no file uploaded")
	}

	if err := validate.FileAllowed(originalName, s.allowedExts); err != nil {
		return nil, core.UploadError(err.Error())
	}

	data = s.recompressBestEffort(originalName, data)

	filename := fmt.Sprintf("company_%s_%s",
		s.now().Format("20060102_150405"),
		validate.SafeFilename(originalName),
	)

	if err := s.files.SaveCompany(filename, data); err != nil {
		return nil, fmt.Errorf("activate company logo: %w", err)
	}

	logo := &CompanyLogo{
		ID:       uuid.New().String(),
		Filename: filename,
	}

	err := s.repo.ActivateCompanyLogo(ctx, logo)
	if errors.Is(err, core.ErrDuplicateKey) {
		err = s.repo.ActivateCompanyLogo(ctx, logo)
	}
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("activate company logo: %w", core.ErrConflict)
		}
		return nil, fmt.Errorf("activate company logo: %w", err)
	}

	return logo, nil
}

func (s *Service) ActiveCompanyLogo(ctx context.Context) (*CompanyLogo, error) {
	return s.repo.ActiveCompanyLogo(ctx)
}

func (s *Service) recompressBestEffort(filename string, data []byte) []byte {
	out, err := recompress(filename, data)
	if err != nil {
		slog.Warn("logo recompression failed, keeping original",
			"filename", filename,
			"error", err,
		)
		return data
	}
	return out
}
