// AngelaMos | 2026
// service_test.go

package asset

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

type fakeRepository struct {
	logos        map[string]*Logo
	company      []*CompanyLogo
	failCreate   error
	failActivate int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{logos: make(map[string]*Logo)}
}

func (f *fakeRepository) CreateLogo(_ context.Context, logo *Logo) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	logo.UploadDate = time.Now()
	clone := *logo
	f.logos[logo.ID] = &clone
	return nil
}

func (f *fakeRepository) GetLogo(_ context.Context, id string) (*Logo, error) {
	logo, ok := f.logos[id]
	if !ok {
		return nil, fmt.Errorf("get logo: %w", core.ErrNotFound)
	}
	clone := *logo
	return &clone, nil
}

func (f *fakeRepository) DeleteLogo(_ context.Context, id string) error {
	if _, ok := f.logos[id]; !ok {
		return fmt.Errorf("delete logo: %w", core.ErrNotFound)
	}
	delete(f.logos, id)
	return nil
}

func (f *fakeRepository) ListLogos(_ context.Context) ([]Logo, error) {
	out := make([]Logo, 0, len(f.logos))
	for _, logo := range f.logos {
		out = append(out, *logo)
	}
	return out, nil
}

func (f *fakeRepository) ActivateCompanyLogo(
	_ context.Context,
	logo *CompanyLogo,
) error {
	if f.failActivate > 0 {
		f.failActivate--
		return fmt.Errorf("insert company logo: %w", core.ErrDuplicateKey)
	}

	for _, existing := range f.company {
		existing.IsActive = false
	}

	logo.IsActive = true
	logo.UploadDate = time.Now()
	clone := *logo
	f.company = append(f.company, &clone)
	return nil
}

func (f *fakeRepository) ActiveCompanyLogo(
	_ context.Context,
) (*CompanyLogo, error) {
	for _, logo := range f.company {
		if logo.IsActive {
			clone := *logo
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("active company logo: %w", core.ErrNotFound)
}

func (f *fakeRepository) activeCount() int {
	n := 0
	for _, logo := range f.company {
		if logo.IsActive {
			n++
		}
	}
	return n
}

type fakeFileStore struct {
	gallery map[string][]byte
	company map[string][]byte
	removed []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{
		gallery: make(map[string][]byte),
		company: make(map[string][]byte),
	}
}

func (f *fakeFileStore) SaveGallery(filename string, data []byte) error {
	f.gallery[filename] = data
	return nil
}

func (f *fakeFileStore) SaveCompany(filename string, data []byte) error {
	f.company[filename] = data
	return nil
}

func (f *fakeFileStore) RemoveGallery(filename string) error {
	// Absent files are fine, matching the disk store.
	delete(f.gallery, filename)
	f.removed = append(f.removed, filename)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeFileStore) {
	t.Helper()

	repo := newFakeRepository()
	files := newFakeFileStore()
	svc := NewService(repo, files, config.UploadConfig{
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "svg"},
	})
	svc.now = func() time.Time {
		return time.Date(2026, 5, 10, 14, 30, 45, 0, time.UTC)
	}
	return svc, repo, files
}

func TestUploadLogo(t *testing.T) {
	svc, repo, files := newTestService(t)
	data := []byte("fake image bytes")

	logo, err := svc.UploadLogo(context.Background(), "My Logo.png", "Acme", data)
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}

	if logo.Filename != "20260510_143045_My_Logo.png" {
		t.Errorf("Filename: got %q", logo.Filename)
	}
	if logo.ClientName != "Acme" {
		t.Errorf("ClientName: got %q", logo.ClientName)
	}
	if logo.SizeBytes != int64(len(data)) {
		t.Errorf("SizeBytes: got %d, want %d", logo.SizeBytes, len(data))
	}
	if logo.ContentHash != core.HashContent(data) {
		t.Errorf("ContentHash: got %q", logo.ContentHash)
	}

	if _, ok := files.gallery[logo.Filename]; !ok {
		t.Error("expected backing file in the gallery bucket")
	}
	if _, ok := repo.logos[logo.ID]; !ok {
		t.Error("expected metadata row")
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc, repo, files := newTestService(t)

	_, err := svc.UploadLogo(
		context.Background(),
		"payload.exe",
		"",
		[]byte("MZ"),
	)

	appErr, ok := core.AsAppError(err)
	if !ok || appErr.Code != "UPLOAD_REJECTED" {
		t.Fatalf("expected UPLOAD_REJECTED, got %v", err)
	}
	if len(files.gallery) != 0 {
		t.Error("rejected upload must not write a file")
	}
	if len(repo.logos) != 0 {
		t.Error("rejected upload must not create a row")
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UploadLogo(context.Background(), "logo.png", "", nil)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestUploadRemovesFileWhenInsertFails(t *testing.T) {
	svc, repo, files := newTestService(t)
	repo.failCreate = errors.New("database down")

	_, err := svc.UploadLogo(
		context.Background(),
		"logo.png",
		"",
		[]byte("bytes"),
	)
	if err == nil {
		t.Fatal("expected error from failed insert")
	}
	if len(files.gallery) != 0 {
		t.Error("file must be removed after the metadata insert fails")
	}
}

func TestDeleteLogoFileFirstThenRow(t *testing.T) {
	svc, repo, files := newTestService(t)
	ctx := context.Background()

	logo, err := svc.UploadLogo(ctx, "logo.png", "", []byte("bytes"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}

	if err := svc.DeleteLogo(ctx, logo.ID); err != nil {
		t.Fatalf("DeleteLogo: %v", err)
	}

	if len(files.gallery) != 0 {
		t.Error("backing file must be removed")
	}
	if len(repo.logos) != 0 {
		t.Error("metadata row must be removed")
	}
}

func TestDeleteLogoIdempotentWhenFileAbsent(t *testing.T) {
	svc, repo, files := newTestService(t)
	ctx := context.Background()

	logo, err := svc.UploadLogo(ctx, "logo.png", "", []byte("bytes"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}

	// Simulate a crash that removed the file but kept the row.
	delete(files.gallery, logo.Filename)

	if err := svc.DeleteLogo(ctx, logo.ID); err != nil {
		t.Fatalf("DeleteLogo with absent file: %v", err)
	}
	if len(repo.logos) != 0 {
		t.Error("metadata row must be removed even when the file was gone")
	}
}

func TestDeleteLogoUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.DeleteLogo(context.Background(), "no-such-id")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActivateCompanyKeepsSingleActive(t *testing.T) {
	svc, repo, files := newTestService(t)
	ctx := context.Background()

	first, err := svc.ActivateCompany(ctx, "old.png", []byte("old"))
	if err != nil {
		t.Fatalf("ActivateCompany: %v", err)
	}
	if first.Filename != "company_20260510_143045_old.png" {
		t.Errorf("Filename: got %q", first.Filename)
	}

	second, err := svc.ActivateCompany(ctx, "new.png", []byte("new"))
	if err != nil {
		t.Fatalf("ActivateCompany: %v", err)
	}

	if repo.activeCount() != 1 {
		t.Fatalf("active rows: got %d, want 1", repo.activeCount())
	}

	active, err := svc.ActiveCompanyLogo(ctx)
	if err != nil {
		t.Fatalf("ActiveCompanyLogo: %v", err)
	}
	if active.ID != second.ID {
		t.Error("latest activation must be the active logo")
	}
	if len(files.company) != 2 {
		t.Errorf("company files: got %d, want 2", len(files.company))
	}
}

func TestActivateCompanyRetriesLostRace(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failActivate = 1

	logo, err := svc.ActivateCompany(context.Background(), "logo.png", []byte("x"))
	if err != nil {
		t.Fatalf("ActivateCompany after retry: %v", err)
	}
	if !logo.IsActive {
		t.Error("activated logo must be active")
	}
	if repo.activeCount() != 1 {
		t.Errorf("active rows: got %d, want 1", repo.activeCount())
	}
}

func TestActivateCompanyGivesUpAfterSecondRaceLoss(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failActivate = 2

	_, err := svc.ActivateCompany(context.Background(), "logo.png", []byte("x"))
	if !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

var galleryNameRe = regexp.MustCompile(`^\d{8}_\d{6}_[A-Za-z0-9._-]+$`)

func TestGeneratedFilenamesAreSafe(t *testing.T) {
	svc, _, _ := newTestService(t)

	logo, err := svc.UploadLogo(
		context.Background(),
		"../../etc/pass wd!.png",
		"",
		[]byte("bytes"),
	)
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if !galleryNameRe.MatchString(logo.Filename) {
		t.Errorf("unsafe generated filename %q", logo.Filename)
	}
}
