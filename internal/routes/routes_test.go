package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/handlers"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := handlers.NewBaseHandler(validator.New())
	r := gin.New()

	RegisterRoutes(r, &handlers.AppHandlers{
		HealthHandler:           handlers.NewHealthHandler(nil),
		JobPositionHandler:      handlers.NewJobPositionHandler(base, nil),
		CandidateProfileHandler: handlers.NewCandidateProfileHandler(base, nil),
		ApplicationHandler:      handlers.NewApplicationHandler(base, nil),
		InterviewHandler:        handlers.NewInterviewHandler(base, nil),
		RecommendationHandler:   handlers.NewRecommendationHandler(base, nil),
		ReportHandler:           handlers.NewReportHandler(base, nil),
	})

	registered := map[string]bool{}
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	expected := []string{
		"GET /api/v1/health",
		"POST /api/v1/job-positions",
		"GET /api/v1/job-positions",
		"GET /api/v1/job-positions/:id",
		"PUT /api/v1/job-positions/:id",
		"DELETE /api/v1/job-positions/:id",
		"PUT /api/v1/job-positions/:id/restore",
		"DELETE /api/v1/job-positions/:id/hard-delete",
		"POST /api/v1/candidate-profiles",
		"GET /api/v1/candidate-profiles",
		"GET /api/v1/candidate-profiles/:id",
		"PUT /api/v1/candidate-profiles/:id",
		"DELETE /api/v1/candidate-profiles/:id",
		"POST /api/v1/applications",
		"POST /api/v1/applications/resumes",
		"GET /api/v1/applications",
		"GET /api/v1/applications/:id",
		"PATCH /api/v1/applications/:id",
		"DELETE /api/v1/applications/:id",
		"PUT /api/v1/applications/:id/restore",
		"POST /api/v1/interviews",
		"GET /api/v1/interviews",
		"GET /api/v1/interviews/:id",
		"PATCH /api/v1/interviews/:id",
		"DELETE /api/v1/interviews/:id",
		"PUT /api/v1/interviews/:id/restore",
		"DELETE /api/v1/interviews/:id/hard-delete",
		"GET /api/v1/recommendations/jobs/:jobPositionId/applicants",
		"GET /api/v1/recommendations/candidates/:candidateProfileId/jobs",
		"GET /api/v1/reports/applications-overview",
		"GET /api/v1/reports/interview-success-rate",
		"GET /api/v1/reports/time-to-hire",
		"GET /api/v1/reports/dashboard-summary",
		"GET /api/v1/reports/dashboard-summary/export",
		"GET /swagger/*any",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s is not registered", route)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/applications/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
