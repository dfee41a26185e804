package services

import (
	"context"
	"testing"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobService(store *memStore) *jobPositionService {
	svc := NewJobPositionService(memJobRepo{store}).(*jobPositionService)
	svc.now = fixedClock(testNow)
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateJobPosition(t *testing.T) {
	svc := newJobService(newMemStore())

	job, err := svc.CreateJobPosition(context.Background(), nil, "hr", &dto.CreateJobPositionRequest{
		Title:           "  Platform Engineer ",
		JobType:         string(models.JobTypeFullTime),
		ExperienceLevel: string(models.ExperienceLevelSenior),
		Status:          string(models.JobPositionStatusActive),
		SalaryCurrency:  "kzt",
		RequiredSkills:  []string{"Go", " ", "Kubernetes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "KZT", job.SalaryCurrency)
	assert.Equal(t, []string{"Go", "Kubernetes"}, []string(job.RequiredSkills))
	require.NotNil(t, job.PostedDate)
	assert.Equal(t, testNow, *job.PostedDate)

	draft, err := svc.CreateJobPosition(context.Background(), nil, "hr", &dto.CreateJobPositionRequest{Title: "Draft"})
	require.NoError(t, err)
	assert.Equal(t, models.JobPositionStatusDraft, draft.Status)
	assert.Nil(t, draft.PostedDate)
}

func TestCreateJobPosition_InvalidSalaryRange(t *testing.T) {
	store := newMemStore()
	svc := newJobService(store)

	_, err := svc.CreateJobPosition(context.Background(), nil, "hr", &dto.CreateJobPositionRequest{
		Title:     "Analyst",
		SalaryMin: floatPtr(500),
		SalaryMax: floatPtr(100),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSalaryRange)
	assert.Empty(t, store.jobs)
}

func TestUpdateJobPosition_ChecksMergedSalaryRange(t *testing.T) {
	svc := newJobService(newMemStore())
	job, err := svc.CreateJobPosition(context.Background(), nil, "hr", &dto.CreateJobPositionRequest{
		Title:     "Analyst",
		SalaryMin: floatPtr(100),
		SalaryMax: floatPtr(200),
	})
	require.NoError(t, err)

	_, err = svc.UpdateJobPosition(context.Background(), nil, "hr", job.ID, &dto.UpdateJobPositionRequest{SalaryMin: floatPtr(300)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSalaryRange)

	active := string(models.JobPositionStatusActive)
	updated, err := svc.UpdateJobPosition(context.Background(), nil, "hr", job.ID, &dto.UpdateJobPositionRequest{Status: &active})
	require.NoError(t, err)
	assert.NotNil(t, updated.PostedDate)
}

func TestJobPositionSoftDeleteLifecycle(t *testing.T) {
	store := newMemStore()
	svc := newJobService(store)
	ctx := context.Background()
	job, err := svc.CreateJobPosition(ctx, nil, "hr", &dto.CreateJobPositionRequest{Title: "Analyst"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJobPosition(ctx, nil, "hr", job.ID))
	_, err = svc.GetJobPosition(ctx, nil, job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobPositionNotFound)

	list, err := svc.ListJobPositions(ctx, nil, &dto.JobPositionListQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.TotalDocs)

	restored, err := svc.RestoreJobPosition(ctx, nil, "hr", job.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	require.NoError(t, svc.HardDeleteJobPosition(ctx, nil, job.ID))
	assert.Empty(t, store.jobs)
}

func TestHardDeleteJobPosition_Referenced(t *testing.T) {
	store := newMemStore()
	svc := newJobService(store)
	ctx := context.Background()
	job, err := svc.CreateJobPosition(ctx, nil, "hr", &dto.CreateJobPositionRequest{Title: "Analyst"})
	require.NoError(t, err)
	require.NoError(t, memAppRepo{s: store}.Create(ctx, nil, &models.Application{JobPositionID: job.ID, CandidateProfileID: "c"}))

	err = svc.HardDeleteJobPosition(ctx, nil, job.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestCloseExpiredPositions(t *testing.T) {
	store := newMemStore()
	svc := newJobService(store)
	ctx := context.Background()
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	for _, j := range []*models.JobPosition{
		{Title: "expired", Status: models.JobPositionStatusActive, ClosingDate: &past},
		{Title: "on hold", Status: models.JobPositionStatusOnHold, ClosingDate: &past},
		{Title: "open", Status: models.JobPositionStatusActive, ClosingDate: &future},
		{Title: "draft", Status: models.JobPositionStatusDraft, ClosingDate: &past},
	} {
		require.NoError(t, memJobRepo{store}.Create(ctx, nil, j))
	}

	n, err := svc.CloseExpiredPositions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
