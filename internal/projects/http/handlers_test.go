package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tongcompany/intake-portal/internal/notify"
	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
	"github.com/tongcompany/intake-portal/internal/projects/service"
	"github.com/tongcompany/intake-portal/internal/storage/nas"
)

func newTestRouter(t *testing.T) (*gin.Engine, *repository.ProjectRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewProjectRepository()
	dispatcher := notify.NewDispatcher(notify.NoopMailer{}, "admin@tongcompany.co.kr", "http://localhost:3000", time.Second, 0)
	svc := service.NewProjectService(repo, dispatcher, nas.NoopMirror{}, t.TempDir())

	r := gin.New()
	group := r.Group("/api/v1/projects")
	New(svc, 3).Register(group)
	return r, repo
}

func doJSON(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func createProject(t *testing.T, r *gin.Engine) *domain.Project {
	t.Helper()

	rr := doJSON(r, http.MethodPost, "/api/v1/projects", `{
		"companyName": "에이스상사",
		"managerName": "김담당",
		"email": "manager@acme.co.kr",
		"phone": "010-1234-5678"
	}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		OK      bool            `json:"ok"`
		Project *domain.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.True(t, body.OK)
	require.NotNil(t, body.Project)
	return body.Project
}

func TestCreateProjectEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)

	p := createProject(t, r)
	assert.Equal(t, "에이스상사", p.CompanyName)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.Equal(t, 0, p.CompletionRate)
	assert.True(t, repo.Exists(p.ID))
}

func TestCreateProjectInvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/v1/projects", `{"companyName": "에이스상사", "email": "not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetProjectEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	p := createProject(t, r)

	rr := doJSON(r, http.MethodGet, "/api/v1/projects/"+p.ID, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), p.ID)
}

func TestGetProjectNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodGet, "/api/v1/projects/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProjectEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	p := createProject(t, r)

	rr := doJSON(r, http.MethodPut, "/api/v1/projects/"+p.ID, `{"status": "paused"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"paused"`)

	rr = doJSON(r, http.MethodPut, "/api/v1/projects/"+p.ID, `{"status": "bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitStepEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	p := createProject(t, r)

	rr := doJSON(r, http.MethodPost, "/api/v1/projects/"+p.ID+"/steps/1", `{
		"manager": {"name": "김담당", "position": "과장", "phone": "010-1234-5678", "email": "manager@acme.co.kr"},
		"company": {"name": "에이스상사", "representative": "홍길동", "address": "서울특별시 강남구 테헤란로 123", "businessNumber": "123-45-67890", "phone": "02-555-1234", "email": "info@acme.co.kr"}
	}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		OK       bool            `json:"ok"`
		Project  *domain.Project `json:"project"`
		NextStep int             `json:"nextStep"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, 2, body.NextStep)
	assert.Equal(t, 14, body.Project.CompletionRate)
}

func TestSubmitStepValidationResponse(t *testing.T) {
	r, _ := newTestRouter(t)
	p := createProject(t, r)

	rr := doJSON(r, http.MethodPost, "/api/v1/projects/"+p.ID+"/steps/2", `{
		"hosting": {"provider": "", "id": "acme", "password": "pw", "ftpDbPassword": "pw2"},
		"domain": {"provider": "가비아", "address": "acme.co.kr", "id": "acme", "password": "pw"}
	}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		OK     bool                    `json:"ok"`
		Error  string                  `json:"error"`
		Fields []domain.FieldViolation `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.OK)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "hosting.provider", body.Fields[0].Field)
}

func TestSubmitStepInvalidNumber(t *testing.T) {
	r, _ := newTestRouter(t)
	p := createProject(t, r)

	for _, step := range []string{"0", "8", "abc"} {
		rr := doJSON(r, http.MethodPost, "/api/v1/projects/"+p.ID+"/steps/"+step, `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "step %s", step)
	}
}

func TestSubmitStepProjectNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := doJSON(r, http.MethodPost, "/api/v1/projects/nope/steps/7", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListProjectsEndpoint(t *testing.T) {
	r, repo := newTestRouter(t)
	p := createProject(t, r)
	other := createProject(t, r)

	// Back-date one project so it shows up as urgent.
	p.CompletionRate = 60
	p.UpdatedAt = time.Now().Add(-4 * 24 * time.Hour)
	repo.Put(p)

	other.Status = domain.StatusPaused
	repo.Put(other)

	rr := doJSON(r, http.MethodGet, "/api/v1/projects", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		OK       bool `json:"ok"`
		Projects []struct {
			ID     string `json:"id"`
			Urgent bool   `json:"urgent"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Projects, 2)

	urgent := map[string]bool{}
	for _, v := range body.Projects {
		urgent[v.ID] = v.Urgent
	}
	assert.True(t, urgent[p.ID])

	rr = doJSON(r, http.MethodGet, "/api/v1/projects?status=active", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, strings.Count(rr.Body.String(), `"urgent"`))

	rr = doJSON(r, http.MethodGet, "/api/v1/projects?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
