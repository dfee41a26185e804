package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/enrichment"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/storage"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type applicationFixture struct {
	store   *memStore
	gateway *stubGateway
	svc     *applicationService
	job     *models.JobPosition
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	store := newMemStore()
	job := &models.JobPosition{
		Title:           "Backend Engineer",
		Department:      "Engineering",
		JobType:         models.JobTypeFullTime,
		ExperienceLevel: models.ExperienceLevelMid,
		Status:          models.JobPositionStatusActive,
		RequiredSkills:  []string{"Go", "PostgreSQL"},
	}
	require.NoError(t, memJobRepo{store}.Create(context.Background(), nil, job))

	gw := &stubGateway{}
	svc := NewApplicationService(
		memAppRepo{s: store},
		memJobRepo{store},
		NewCandidateProfileService(memCandidateRepo{s: store}),
		gw, nil, 0,
	).(*applicationService)
	svc.now = fixedClock(testNow)
	return &applicationFixture{store: store, gateway: gw, svc: svc, job: job}
}

func (f *applicationFixture) request(emailAddr string) *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		JobPositionID: f.job.ID,
		Candidate: dto.CandidateDetails{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     emailAddr,
			Skills:    []string{"Go"},
		},
		ResumePath: "resumes/2024/05/jane.pdf",
	}
}

func TestCreateApplication_EnrichmentFailureFallsBack(t *testing.T) {
	f := newApplicationFixture(t)
	f.gateway.err = errors.New("upstream timeout")

	app, err := f.svc.CreateApplication(context.Background(), nil, "recruiter-1", f.request("jane@example.com"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, 0, app.MatchScore)
	assert.NotNil(t, app.ExtractedSkills)
	assert.Empty(t, app.ExtractedSkills)
	assert.Nil(t, app.ResumeAnalysisDate)
	assert.Equal(t, testNow, app.AppliedDate)
	assert.Equal(t, models.ApplicationSourceWebsite, app.Source)
	require.NotNil(t, app.CreatedBy)
	assert.Equal(t, "recruiter-1", *app.CreatedBy)
}

func TestCreateApplication_EnrichmentScoresExtractedSkills(t *testing.T) {
	f := newApplicationFixture(t)
	f.gateway.result = enrichment.Enrichment{
		Summary:         "Go developer",
		ExtractedSkills: []string{"go", "Docker"},
		AnalyzedAt:      testNow,
	}

	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	assert.Greater(t, app.MatchScore, 0)
	assert.LessOrEqual(t, app.MatchScore, 100)
	assert.Equal(t, "Go developer", app.ExtractedSummary)
	require.NotNil(t, app.ResumeAnalysisDate)
	assert.Equal(t, testNow, *app.ResumeAnalysisDate)
}

func TestCreateApplication_NoResumeSkipsGateway(t *testing.T) {
	f := newApplicationFixture(t)
	req := f.request("jane@example.com")
	req.ResumePath = ""

	_, err := f.svc.CreateApplication(context.Background(), nil, "", req)
	require.NoError(t, err)
	assert.Equal(t, 0, f.gateway.calls)
}

func TestCreateApplication_ReusesCandidateByEmail(t *testing.T) {
	f := newApplicationFixture(t)
	other := &models.JobPosition{Title: "Data Engineer", Status: models.JobPositionStatusActive}
	require.NoError(t, memJobRepo{f.store}.Create(context.Background(), nil, other))

	first, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	req := f.request("JANE@example.com")
	req.JobPositionID = other.ID
	second, err := f.svc.CreateApplication(context.Background(), nil, "", req)
	require.NoError(t, err)

	assert.Equal(t, first.CandidateProfileID, second.CandidateProfileID)
	assert.Len(t, f.store.candidates, 1)
}

func TestCreateApplication_Duplicate(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	_, err = f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Len(t, f.store.apps, 1)
}

func TestCreateApplication_DuplicateCaughtByIndex(t *testing.T) {
	f := newApplicationFixture(t)
	f.svc.appRepo = memAppRepo{s: f.store, skipPrecheck: true}

	_, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)
	_, err = f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestCreateApplication_ClosedJob(t *testing.T) {
	f := newApplicationFixture(t)
	f.store.jobs[f.job.ID].Status = models.JobPositionStatusClosed

	_, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	assert.ErrorIs(t, err, apperrors.ErrJobPositionClosed)
	assert.Empty(t, f.store.candidates)
}

func TestCreateApplication_UnknownJob(t *testing.T) {
	f := newApplicationFixture(t)
	req := f.request("jane@example.com")
	req.JobPositionID = "00000000-0000-0000-0000-000000000000"

	_, err := f.svc.CreateApplication(context.Background(), nil, "", req)
	assert.ErrorIs(t, err, apperrors.ErrJobPositionNotFound)
}

func TestUpdateApplication_StatusFlow(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	status := "SCREENING"
	updated, err := f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusScreened, updated.Status)
	require.NotNil(t, updated.ScreeningDate)

	rejected := "REJECTED"
	_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &rejected})
	assert.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)

	reason := "Not enough experience"
	updated, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &rejected, RejectionReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
	assert.Equal(t, reason, updated.RejectionReason)

	hired := "HIRED"
	_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &hired})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStateTransition))
	assert.Equal(t, models.ApplicationStatusRejected, f.store.apps[app.ID].Status)
}

func TestDeleteAndRestoreApplication(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteApplication(context.Background(), nil, "hr", app.ID))
	_, err = f.svc.GetApplication(context.Background(), nil, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	// новая заявка той же пары допустима, пока старая удалена
	again, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	_, err = f.svc.RestoreApplication(context.Background(), nil, "hr", app.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)

	require.NoError(t, f.svc.DeleteApplication(context.Background(), nil, "hr", again.ID))
	restored, err := f.svc.RestoreApplication(context.Background(), nil, "hr", app.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)
}

func TestUploadResume(t *testing.T) {
	f := newApplicationFixture(t)
	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir(), BaseURL: "http://localhost/files"})
	require.NoError(t, err)
	f.svc.storage = store
	f.svc.maxResumeSize = 1024

	res, err := f.svc.UploadResume(context.Background(), "cv.PDF", 5, strings.NewReader("%PDF-"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ResumePath, "resumes/2024/05/"))
	assert.True(t, strings.HasSuffix(res.ResumePath, ".pdf"))
	assert.Equal(t, "application/pdf", res.ContentType)

	exists, err := store.Exists(context.Background(), res.ResumePath)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = f.svc.UploadResume(context.Background(), "cv.exe", 5, strings.NewReader("xx"))
	assert.Error(t, err)
	_, err = f.svc.UploadResume(context.Background(), "cv.txt", 4096, strings.NewReader("xx"))
	assert.Error(t, err)
}

func TestUpdateApplication_TerminalAllowsNonStatusFields(t *testing.T) {
	for _, final := range []string{"REJECTED", "HIRED"} {
		t.Run(final, func(t *testing.T) {
			f := newApplicationFixture(t)
			app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
			require.NoError(t, err)

			status, reason := final, "Position filled internally"
			_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &status, RejectionReason: &reason})
			require.NoError(t, err)

			notes := "Keep in talent pool"
			skills := []string{"Go", " Kafka "}
			source := string(models.ApplicationSourceReferral)
			updated, err := f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{
				Notes:  &notes,
				Skills: &skills,
				Source: &source,
			})
			require.NoError(t, err)
			assert.Equal(t, models.ApplicationStatus(final), updated.Status)
			assert.Equal(t, notes, updated.Notes)
			assert.Equal(t, []string{"Go", "Kafka"}, []string(updated.Skills))
			assert.Equal(t, models.ApplicationSourceReferral, updated.Source)

			// тот же статус повторно - не переход
			notes = "Re-confirmed"
			updated, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &status, Notes: &notes})
			require.NoError(t, err)
			assert.Equal(t, models.ApplicationStatus(final), updated.Status)
			assert.Equal(t, "Re-confirmed", f.store.apps[app.ID].Notes)
		})
	}
}

func TestUpdateApplication_ConcurrentTerminalTransitionWins(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	// между чтением и записью другой запрос отклоняет заявку
	f.svc.appRepo = memAppRepo{s: f.store, beforeUpdate: func(stored *models.Application) {
		stored.Status = models.ApplicationStatusRejected
		stored.RejectionReason = "Withdrawn"
	}}

	status := "PROCEED_TO_NEXT_ROUND"
	_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Status: &status})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStateTransition))
	assert.Equal(t, models.ApplicationStatusRejected, f.store.apps[app.ID].Status)
	assert.Equal(t, "Withdrawn", f.store.apps[app.ID].RejectionReason)
}

func TestUpdateApplication_ConcurrentNonTerminalChangeConflicts(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	f.svc.appRepo = memAppRepo{s: f.store, beforeUpdate: func(stored *models.Application) {
		stored.Status = models.ApplicationStatusScreened
	}}

	notes := "call back"
	_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Notes: &notes})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Empty(t, f.store.apps[app.ID].Notes)
}

func TestUpdateApplication_KeepsConcurrentlyRankedScore(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	require.NoError(t, err)

	// ранжирование успело записать оценку после того, как заявка была прочитана
	f.svc.appRepo = memAppRepo{s: f.store, beforeUpdate: func(stored *models.Application) {
		stored.MatchScore = 77
	}}

	notes := "strong portfolio"
	_, err = f.svc.UpdateApplication(context.Background(), nil, "hr", app.ID, &dto.UpdateApplicationRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 77, f.store.apps[app.ID].MatchScore)
	assert.Equal(t, notes, f.store.apps[app.ID].Notes)
}

type panickingGateway struct{}

func (panickingGateway) Enrich(ctx context.Context, ref string) (enrichment.Enrichment, error) {
	panic("unexpected non-name key parsing dictionary")
}

func TestCreateApplication_PanickingEnrichmentFallsBack(t *testing.T) {
	f := newApplicationFixture(t)
	f.svc.gateway = panickingGateway{}

	var (
		app *models.Application
		err error
	)
	assert.NotPanics(t, func() {
		app, err = f.svc.CreateApplication(context.Background(), nil, "", f.request("jane@example.com"))
	})
	require.NoError(t, err)
	assert.Equal(t, 0, app.MatchScore)
	assert.Empty(t, app.ExtractedSkills)
	assert.Len(t, f.store.apps, 1)
}
