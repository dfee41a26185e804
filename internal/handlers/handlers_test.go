package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/export"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/middleware"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/validator"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- фейковые сервисы: встраивают интерфейс, переопределяют нужные методы ---

type fakeJobService struct {
	services.JobPositionService
	created   *dto.CreateJobPositionRequest
	actor     string
	getErr    error
	hardDelID string
}

func (f *fakeJobService) CreateJobPosition(_ context.Context, _ *gorm.DB, actorID string, req *dto.CreateJobPositionRequest) (*models.JobPosition, error) {
	f.created, f.actor = req, actorID
	job := &models.JobPosition{Title: req.Title, JobType: models.JobType(req.JobType), ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel)}
	job.ID = uuid.NewString()
	return job, nil
}

func (f *fakeJobService) GetJobPosition(_ context.Context, _ *gorm.DB, id string) (*models.JobPosition, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	job := &models.JobPosition{Title: "Backend Engineer"}
	job.ID = id
	return job, nil
}

func (f *fakeJobService) ListJobPositions(_ context.Context, _ *gorm.DB, q *dto.JobPositionListQuery) (*dto.PaginatedResponse[models.JobPosition], error) {
	return dto.NewPaginatedResponse([]models.JobPosition{{Title: "A"}, {Title: "B"}}, 12, 2, 5), nil
}

func (f *fakeJobService) HardDeleteJobPosition(_ context.Context, _ *gorm.DB, id string) error {
	f.hardDelID = id
	return apperrors.ErrConflict(nil, "job_position", "Job position is referenced by applications")
}

type fakeApplicationService struct {
	services.ApplicationService
	createErr    error
	uploadedName string
	uploadedBody string
}

func (f *fakeApplicationService) CreateApplication(_ context.Context, _ *gorm.DB, _ string, _ *dto.CreateApplicationRequest) (*models.Application, error) {
	return nil, f.createErr
}

func (f *fakeApplicationService) UploadResume(_ context.Context, fileName string, size int64, content io.Reader) (*dto.ResumeUploadResponse, error) {
	body, _ := io.ReadAll(content)
	f.uploadedName, f.uploadedBody = fileName, string(body)
	return &dto.ResumeUploadResponse{ResumePath: "resumes/2024/05/x.pdf", FileName: fileName, Size: size}, nil
}

type fakeReportService struct {
	services.ReportService
	query *dto.ReportQuery
}

func (f *fakeReportService) DashboardSummary(_ context.Context, _ *gorm.DB, q *dto.ReportQuery) (*dto.DashboardSummary, error) {
	f.query = q
	return &dto.DashboardSummary{
		ApplicationsOverview: &dto.ApplicationsOverview{TotalApplications: 4},
		InterviewSuccessRate: &dto.InterviewSuccessRate{},
		TimeToHire:           &dto.TimeToHire{},
		GeneratedAt:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

type fakeRecommendationService struct {
	services.RecommendationService
	calledWith string
}

func (f *fakeRecommendationService) RankApplicantsForJob(_ context.Context, _ *gorm.DB, jobPositionID string) (*dto.RankingResponse, error) {
	f.calledWith = jobPositionID
	return &dto.RankingResponse{JobPositionID: jobPositionID, Applicants: []dto.RankedApplicant{}}, nil
}

type failingPinger struct{ err error }

func (p failingPinger) PingContext(context.Context) error { return p.err }

// --- helpers ---

func newRouter(register func(*gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ActorMiddleware(""))
	register(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Message    string `json:"message"`
	Error      struct {
		Code    string            `json:"code"`
		Domain  string            `json:"domain"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// --- tests ---

func TestJobPositionHandler_Create(t *testing.T) {
	svc := &fakeJobService{}
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), svc)
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodPost, "/api/v1/job-positions",
		strings.NewReader(`{"title":"Go Developer","jobType":"FULL_TIME","experienceLevel":"MID_LEVEL"}`), "application/json")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Go Developer", svc.created.Title)
	assert.Empty(t, svc.actor)
}

func TestJobPositionHandler_CreateValidation(t *testing.T) {
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), &fakeJobService{})
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodPost, "/api/v1/job-positions",
		strings.NewReader(`{"title":"X","jobType":"GIG"}`), "application/json")

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeError(t, w)
	assert.Equal(t, string(apperrors.CodeValidationFailed), env.Error.Code)
	assert.Contains(t, env.Error.Details, "title")
	assert.Contains(t, env.Error.Details, "jobType")
	assert.Contains(t, env.Error.Details, "experienceLevel")
	assert.Equal(t, "/api/v1/job-positions", env.Path)
	assert.Equal(t, http.MethodPost, env.Method)
}

func TestJobPositionHandler_MalformedID(t *testing.T) {
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), &fakeJobService{})
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodGet, "/api/v1/job-positions/not-a-uuid", nil, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(apperrors.CodeValidationFailed), decodeError(t, w).Error.Code)
}

func TestJobPositionHandler_NotFound(t *testing.T) {
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), &fakeJobService{getErr: apperrors.ErrJobPositionNotFound})
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodGet, "/api/v1/job-positions/"+uuid.NewString(), nil, "")

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeError(t, w)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, string(apperrors.CodeNotFound), env.Error.Code)
}

func TestJobPositionHandler_ListEnvelope(t *testing.T) {
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), &fakeJobService{})
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodGet, "/api/v1/job-positions?page=2&limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var page map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page["data"], 2)
	assert.EqualValues(t, 12, page["totalDocs"])
	assert.EqualValues(t, 3, page["totalPages"])
	assert.Equal(t, true, page["hasNextPage"])
	assert.Equal(t, true, page["hasPrevPage"])

	w = do(r, http.MethodGet, "/api/v1/job-positions?limit=500", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error.Details, "limit")
}

func TestJobPositionHandler_HardDeleteConflict(t *testing.T) {
	svc := &fakeJobService{}
	h := NewJobPositionHandler(NewBaseHandler(validator.New()), svc)
	r := newRouter(h.RegisterRoutes)
	id := uuid.NewString()

	w := do(r, http.MethodDelete, "/api/v1/job-positions/"+id+"/hard-delete", nil, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, id, svc.hardDelID)
}

func TestApplicationHandler_DuplicateIsConflict(t *testing.T) {
	h := NewApplicationHandler(NewBaseHandler(validator.New()), &fakeApplicationService{createErr: apperrors.ErrDuplicateApplication})
	r := newRouter(h.RegisterRoutes)

	body := `{"jobPositionId":"` + uuid.NewString() + `","candidate":{"firstName":"Aida","email":"aida@example.com"}}`
	w := do(r, http.MethodPost, "/api/v1/applications", strings.NewReader(body), "application/json")

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(apperrors.CodeConflict), decodeError(t, w).Error.Code)
}

func TestApplicationHandler_CreateValidatesNestedCandidate(t *testing.T) {
	h := NewApplicationHandler(NewBaseHandler(validator.New()), &fakeApplicationService{})
	r := newRouter(h.RegisterRoutes)

	body := `{"jobPositionId":"` + uuid.NewString() + `","candidate":{"firstName":"Aida","email":"nope"}}`
	w := do(r, http.MethodPost, "/api/v1/applications", strings.NewReader(body), "application/json")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error.Details, "candidate.email")
}

func TestApplicationHandler_UploadResume(t *testing.T) {
	svc := &fakeApplicationService{}
	h := NewApplicationHandler(NewBaseHandler(validator.New()), svc)
	r := newRouter(h.RegisterRoutes)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cv.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 resume"))
	require.NoError(t, mw.Close())

	w := do(r, http.MethodPost, "/api/v1/applications/resumes", &buf, mw.FormDataContentType())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "cv.pdf", svc.uploadedName)
	assert.Equal(t, "%PDF-1.4 resume", svc.uploadedBody)
	assert.Contains(t, w.Body.String(), `"resumePath":"resumes/2024/05/x.pdf"`)

	w = do(r, http.MethodPost, "/api/v1/applications/resumes", strings.NewReader(""), "multipart/form-data; boundary=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationHandler_Rank(t *testing.T) {
	svc := &fakeRecommendationService{}
	h := NewRecommendationHandler(NewBaseHandler(validator.New()), svc)
	r := newRouter(h.RegisterRoutes)
	id := uuid.NewString()

	w := do(r, http.MethodGet, "/api/v1/recommendations/jobs/"+id+"/applicants", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.calledWith)

	w = do(r, http.MethodGet, "/api/v1/recommendations/jobs/123/applicants", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Export(t *testing.T) {
	svc := &fakeReportService{}
	h := NewReportHandler(NewBaseHandler(validator.New()), svc)
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodGet, "/api/v1/reports/dashboard-summary/export?department=Sales", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "dashboard-summary-20240501-120000.xlsx")
	assert.Equal(t, "Sales", svc.query.Department)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), export.SummarySheet)
}

func TestReportHandler_InvalidJobFilter(t *testing.T) {
	h := NewReportHandler(NewBaseHandler(validator.New()), &fakeReportService{})
	r := newRouter(h.RegisterRoutes)

	w := do(r, http.MethodGet, "/api/v1/reports/dashboard-summary?jobPositionId=abc", nil, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error.Details, "jobPositionId")
}

func TestHealthHandler(t *testing.T) {
	r := newRouter(NewHealthHandler(nil).RegisterRoutes)
	w := do(r, http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	r = newRouter(NewHealthHandler(failingPinger{err: errors.New("connection refused")}).RegisterRoutes)
	w = do(r, http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
}
