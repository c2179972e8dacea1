package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
	"github.com/tongcompany/intake-portal/internal/storage/nas"
)

const testMaxSize = 10 << 20

func newTestSetup(t *testing.T) (*Service, *repository.ProjectRepository, *domain.Project, string) {
	t.Helper()

	repo := repository.NewProjectRepository()
	p := repo.Create(domain.CreateProjectRequest{
		CompanyName: "에이스상사",
		ManagerName: "김담당",
		Email:       "manager@acme.co.kr",
		Phone:       "010-1234-5678",
	})

	dir := t.TempDir()
	svc := NewService(repo, nas.NoopMirror{}, dir, testMaxSize)
	return svc, repo, p, dir
}

// makeFileHeader builds a real multipart.FileHeader the way gin hands
// it to the handler.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUploadStoresFileAndTracksIt(t *testing.T) {
	svc, repo, p, dir := newTestSetup(t)

	fh := makeFileHeader(t, "logo.png", "image/png", []byte("png-bytes"))
	info, err := svc.Upload(context.Background(), p.ID, "logo", fh)
	require.NoError(t, err)

	assert.Equal(t, "logo.png", info.Name)
	assert.Equal(t, int64(len("png-bytes")), info.Size)
	assert.Equal(t, "image/png", info.Type)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(info.UploadPath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	require.NotNil(t, proj.Step7Data)
	require.Len(t, proj.Step7Data.UploadedFiles, 1)
	assert.Equal(t, "logo", proj.Step7Data.UploadedFiles[0].Category)
	require.Len(t, proj.Step7Data.UploadedFiles[0].Files, 1)
	assert.Equal(t, info.UploadPath, proj.Step7Data.UploadedFiles[0].Files[0].UploadPath)
}

func TestUploadAppendsToExistingCategory(t *testing.T) {
	svc, repo, p, _ := newTestSetup(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, p.ID, "images", makeFileHeader(t, "a.jpg", "image/jpeg", []byte("a")))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, p.ID, "images", makeFileHeader(t, "b.jpg", "image/jpeg", []byte("b")))
	require.NoError(t, err)

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, proj.Step7Data.UploadedFiles, 1)
	assert.Len(t, proj.Step7Data.UploadedFiles[0].Files, 2)
}

func TestUploadUnknownProject(t *testing.T) {
	svc, _, _, _ := newTestSetup(t)

	fh := makeFileHeader(t, "logo.png", "image/png", []byte("x"))
	_, err := svc.Upload(context.Background(), "nope", "logo", fh)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUploadTooLarge(t *testing.T) {
	svc, repo, p, _ := newTestSetup(t)

	fh := makeFileHeader(t, "huge.zip", "application/zip", bytes.Repeat([]byte{0}, testMaxSize+1))
	_, err := svc.Upload(context.Background(), p.ID, "assets", fh)
	assert.True(t, errors.Is(err, domain.ErrFileTooLarge))

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, proj.Step7Data)
}

func TestUploadUnsupportedType(t *testing.T) {
	svc, repo, p, _ := newTestSetup(t)

	fh := makeFileHeader(t, "setup.exe", "application/x-msdownload", []byte("MZ"))
	_, err := svc.Upload(context.Background(), p.ID, "assets", fh)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, proj.Step7Data)
}

func TestUploadRejectsCategoryTraversal(t *testing.T) {
	svc, repo, p, dir := newTestSetup(t)
	ctx := context.Background()

	for _, category := range []string{"../002", "..", ".", "a/b", "logo/../x", ""} {
		fh := makeFileHeader(t, "evil.png", "image/png", []byte("x"))
		_, err := svc.Upload(ctx, p.ID, category, fh)
		assert.True(t, errors.Is(err, domain.ErrInvalidCategory), "category %q", category)
	}

	// Nothing escaped the upload root and nothing was tracked.
	_, err := os.Stat(filepath.Join(dir, "..", "002"))
	assert.True(t, os.IsNotExist(err))

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	assert.Nil(t, proj.Step7Data)
}

func TestUploadAcceptsKoreanCategory(t *testing.T) {
	svc, _, p, _ := newTestSetup(t)

	fh := makeFileHeader(t, "logo.png", "image/png", []byte("x"))
	info, err := svc.Upload(context.Background(), p.ID, "로고", fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info.UploadPath, p.ID+"/로고/"))
}

func TestUploadExtensionFallback(t *testing.T) {
	svc, _, p, _ := newTestSetup(t)

	// Browsers sometimes send a generic content type; the extension
	// allowlist covers that.
	fh := makeFileHeader(t, "brochure.pdf", "application/octet-stream", []byte("%PDF-1.7"))
	_, err := svc.Upload(context.Background(), p.ID, "docs", fh)
	assert.NoError(t, err)
}

func TestDeleteRemovesFileAndEntry(t *testing.T) {
	svc, repo, p, dir := newTestSetup(t)
	ctx := context.Background()

	info, err := svc.Upload(ctx, p.ID, "logo", makeFileHeader(t, "logo.png", "image/png", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID, info.UploadPath))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(info.UploadPath)))
	assert.True(t, os.IsNotExist(err))

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, proj.Step7Data.UploadedFiles, 1)
	assert.Empty(t, proj.Step7Data.UploadedFiles[0].Files)
}

func TestDeleteMissingFile(t *testing.T) {
	svc, _, p, _ := newTestSetup(t)

	err := svc.Delete(context.Background(), p.ID, "logo/missing.png")
	assert.True(t, errors.Is(err, domain.ErrFileNotFound))
}

func TestDeleteRejectsTraversal(t *testing.T) {
	svc, _, p, _ := newTestSetup(t)

	for _, path := range []string{"../secrets.txt", "/etc/passwd", "a/../../b"} {
		err := svc.Delete(context.Background(), p.ID, path)
		assert.True(t, errors.Is(err, domain.ErrFileNotFound), "path %s", path)
	}
}

func TestDeleteRequiresOwningProject(t *testing.T) {
	svc, repo, p, dir := newTestSetup(t)
	ctx := context.Background()

	other := repo.Create(domain.CreateProjectRequest{
		CompanyName: "다른회사",
		ManagerName: "박담당",
		Email:       "other@corp.co.kr",
		Phone:       "010-9876-5432",
	})

	info, err := svc.Upload(ctx, p.ID, "logo", makeFileHeader(t, "logo.png", "image/png", []byte("x")))
	require.NoError(t, err)

	// A different project id cannot delete the file.
	err = svc.Delete(ctx, other.ID, info.UploadPath)
	assert.True(t, errors.Is(err, domain.ErrFileNotFound))

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(info.UploadPath)))
	assert.NoError(t, err)

	proj, err := repo.Get(p.ID)
	require.NoError(t, err)
	require.Len(t, proj.Step7Data.UploadedFiles, 1)
	assert.Len(t, proj.Step7Data.UploadedFiles[0].Files, 1)
}

func TestDeleteUnknownProject(t *testing.T) {
	svc, _, _, _ := newTestSetup(t)

	err := svc.Delete(context.Background(), "nope", "logo/x.png")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
