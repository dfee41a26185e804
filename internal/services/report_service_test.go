package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubReportRepo struct {
	overview   *repositories.OverviewAggregate
	interviews *repositories.InterviewAggregate
	hired      []repositories.HiredRow
	err        error
}

func (r *stubReportRepo) ApplicationsOverview(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) (*repositories.OverviewAggregate, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.overview == nil {
		return &repositories.OverviewAggregate{}, nil
	}
	return r.overview, nil
}

func (r *stubReportRepo) InterviewStats(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) (*repositories.InterviewAggregate, error) {
	if r.interviews == nil {
		return &repositories.InterviewAggregate{}, nil
	}
	return r.interviews, nil
}

func (r *stubReportRepo) HiredApplications(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) ([]repositories.HiredRow, error) {
	return r.hired, nil
}

func hiredAfter(jobID, dept string, days int) repositories.HiredRow {
	applied := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return repositories.HiredRow{
		ApplicationID: jobID + "-app",
		JobPositionID: jobID,
		Title:         "Title " + jobID,
		Department:    dept,
		AppliedDate:   applied,
		HireDate:      applied.Add(time.Duration(days) * 24 * time.Hour),
	}
}

func TestSummarizeTimeToHire(t *testing.T) {
	res := SummarizeTimeToHire([]repositories.HiredRow{
		hiredAfter("job-a", "Engineering", 10),
		hiredAfter("job-b", "", 20),
	})

	assert.Equal(t, 2, res.TotalHired)
	assert.Equal(t, 15.00, res.AvgTimeToHireDays)
	assert.Equal(t, 15.00, res.MedianTimeToHireDays)
	require.Len(t, res.ByJobPosition, 2)
	assert.Equal(t, "job-a", res.ByJobPosition[0].JobPositionID)
	assert.Equal(t, 10.00, res.ByJobPosition[0].AvgDays)
	require.Len(t, res.ByDepartment, 2)
	assert.Equal(t, "Unassigned", res.ByDepartment[1].Department)
}

func TestSummarizeTimeToHire_OddMedianAndRounding(t *testing.T) {
	rows := []repositories.HiredRow{
		hiredAfter("j", "Sales", 1),
		hiredAfter("j", "Sales", 2),
		hiredAfter("j", "Sales", 7),
	}
	res := SummarizeTimeToHire(rows)
	assert.Equal(t, 3.33, res.AvgTimeToHireDays)
	assert.Equal(t, 2.00, res.MedianTimeToHireDays)
	require.Len(t, res.ByJobPosition, 1)
	assert.Equal(t, 3, res.ByJobPosition[0].Count)
}

func TestSummarizeTimeToHire_Empty(t *testing.T) {
	res := SummarizeTimeToHire(nil)
	assert.Zero(t, res.TotalHired)
	assert.Zero(t, res.AvgTimeToHireDays)
	assert.NotNil(t, res.ByJobPosition)
	assert.NotNil(t, res.ByDepartment)
}

func TestParseReportFilter(t *testing.T) {
	f, err := ParseReportFilter(&dto.ReportQuery{StartDate: "2024-01-01", EndDate: "2024-01-31", Department: " Engineering "})
	require.NoError(t, err)
	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *f.EndDate)
	assert.Equal(t, "Engineering", f.Department)

	f, err = ParseReportFilter(&dto.ReportQuery{EndDate: "2024-01-31T10:00:00Z"})
	require.NoError(t, err)
	assert.Nil(t, f.StartDate)
	assert.Equal(t, 10, f.EndDate.Hour())

	_, err = ParseReportFilter(&dto.ReportQuery{StartDate: "31/01/2024"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = ParseReportFilter(&dto.ReportQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestApplicationsOverview_Empty(t *testing.T) {
	svc := NewReportService(&stubReportRepo{})

	res, err := svc.ApplicationsOverview(context.Background(), nil, &dto.ReportQuery{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalApplications)
	assert.NotNil(t, res.ByStatus)
	assert.NotNil(t, res.ByJobPosition)
	assert.NotNil(t, res.BySource)
}

func TestInterviewSuccessRate(t *testing.T) {
	svc := NewReportService(&stubReportRepo{
		interviews: &repositories.InterviewAggregate{Total: 5, Completed: 3, HiredWithInterview: 1},
	})

	res, err := svc.InterviewSuccessRate(context.Background(), nil, &dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, 33.33, res.SuccessRate)

	svc = NewReportService(&stubReportRepo{interviews: &repositories.InterviewAggregate{Total: 2}})
	res, err = svc.InterviewSuccessRate(context.Background(), nil, &dto.ReportQuery{})
	require.NoError(t, err)
	assert.Zero(t, res.SuccessRate)
}

func TestDashboardSummary(t *testing.T) {
	repo := &stubReportRepo{
		overview: &repositories.OverviewAggregate{Total: 4, AvgExperienceYears: 2.346},
		hired:    []repositories.HiredRow{hiredAfter("job-a", "Engineering", 10)},
	}
	svc := NewReportService(repo).(*reportService)
	svc.now = fixedClock(testNow)

	res, err := svc.DashboardSummary(context.Background(), nil, &dto.ReportQuery{JobPositionID: "job-a"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.ApplicationsOverview.TotalApplications)
	assert.Equal(t, 2.35, res.ApplicationsOverview.AvgExperienceYears)
	assert.Equal(t, 1, res.TimeToHire.TotalHired)
	assert.NotNil(t, res.InterviewSuccessRate)
	assert.Equal(t, "job-a", res.Filters.JobPositionID)
	assert.Equal(t, testNow, res.GeneratedAt)

	repo.err = errors.New("connection reset")
	_, err = svc.DashboardSummary(context.Background(), nil, &dto.ReportQuery{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternalError))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}
