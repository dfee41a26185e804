package repositories

import (
	"context"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"gorm.io/gorm"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type JobPositionCount struct {
	JobPositionID string `json:"jobPositionId"`
	Title         string `json:"title"`
	Count         int64  `json:"count"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// OverviewAggregate - сырые агрегаты по заявкам, без округления
type OverviewAggregate struct {
	Total              int64
	ByStatus           []StatusCount
	ByJobPosition      []JobPositionCount
	BySource           []SourceCount
	AvgExperienceYears float64
}

type InterviewAggregate struct {
	Total              int64
	Completed          int64
	ByType             []TypeCount
	HiredWithInterview int64
}

// HiredRow - нанятая заявка с датами для расчета времени найма
type HiredRow struct {
	ApplicationID string
	JobPositionID string
	Title         string
	Department    string
	AppliedDate   time.Time
	HireDate      time.Time
}

type ReportRepository interface {
	ApplicationsOverview(ctx context.Context, db *gorm.DB, filter ReportFilter) (*OverviewAggregate, error)
	InterviewStats(ctx context.Context, db *gorm.DB, filter ReportFilter) (*InterviewAggregate, error)
	HiredApplications(ctx context.Context, db *gorm.DB, filter ReportFilter) ([]HiredRow, error)
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

// ApplicationsQuery - заявки в окне по appliedDate, всегда с join на вакансию
func ApplicationsQuery(filter ReportFilter) *ReportQuery {
	fk := applicationsTable + ".job_position_id"
	return NewReportQuery(applicationsTable).
		NotDeleted().
		DateWindow(applicationsTable+".applied_date", filter.StartDate, filter.EndDate).
		Equals(fk, filter.JobPositionID).
		JoinJobPositions(fk).
		Department(filter.Department, fk)
}

// InterviewsQuery - интервью в окне по scheduledDate, всегда с join на заявку и вакансию
func InterviewsQuery(filter ReportFilter) *ReportQuery {
	fk := interviewsTable + ".job_position_id"
	return NewReportQuery(interviewsTable).
		NotDeleted().
		DateWindow(interviewsTable+".scheduled_date", filter.StartDate, filter.EndDate).
		Equals(fk, filter.JobPositionID).
		JoinApplications(interviewsTable + ".application_id").
		JoinJobPositions(fk).
		Department(filter.Department, fk)
}

// HiredQuery - HIRED заявки в окне по hireDate
func HiredQuery(filter ReportFilter) *ReportQuery {
	fk := applicationsTable + ".job_position_id"
	return NewReportQuery(applicationsTable).
		NotDeleted().
		Equals(applicationsTable+".status", string(models.ApplicationStatusHired)).
		DateWindow(applicationsTable+".hire_date", filter.StartDate, filter.EndDate).
		Equals(fk, filter.JobPositionID).
		JoinJobPositions(fk).
		Department(filter.Department, fk)
}

func (r *ReportRepositoryImpl) ApplicationsOverview(ctx context.Context, db *gorm.DB, filter ReportFilter) (*OverviewAggregate, error) {
	q := ApplicationsQuery(filter)
	result := &OverviewAggregate{
		ByStatus:      []StatusCount{},
		ByJobPosition: []JobPositionCount{},
		BySource:      []SourceCount{},
	}

	var totals struct {
		Total  int64
		AvgExp *float64
	}
	err := q.Build(ctx, db).
		Select("COUNT(*) AS total, AVG(applications.experience_years) AS avg_exp").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	result.Total = totals.Total
	if totals.AvgExp != nil {
		result.AvgExperienceYears = *totals.AvgExp
	}
	if result.Total == 0 {
		return result, nil
	}

	err = q.Build(ctx, db).
		Select("applications.status AS status, COUNT(*) AS count").
		Group("applications.status").
		Order("count DESC, status ASC").
		Scan(&result.ByStatus).Error
	if err != nil {
		return nil, err
	}

	err = q.Build(ctx, db).
		Select("applications.job_position_id AS job_position_id, jp.title AS title, COUNT(*) AS count").
		Group("applications.job_position_id, jp.title").
		Order("count DESC, job_position_id ASC").
		Scan(&result.ByJobPosition).Error
	if err != nil {
		return nil, err
	}

	err = q.Build(ctx, db).
		Select("COALESCE(NULLIF(applications.source, ''), 'UNKNOWN') AS source, COUNT(*) AS count").
		Group("1").
		Order("count DESC, source ASC").
		Scan(&result.BySource).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ReportRepositoryImpl) InterviewStats(ctx context.Context, db *gorm.DB, filter ReportFilter) (*InterviewAggregate, error) {
	q := InterviewsQuery(filter)
	result := &InterviewAggregate{ByType: []TypeCount{}}

	var totals struct {
		Total     int64
		Completed int64
		Hired     int64
	}
	err := q.Build(ctx, db).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE interviews.status = ?) AS completed,
			COUNT(DISTINCT interviews.application_id) FILTER (WHERE app.status = ?) AS hired`,
			models.InterviewStatusCompleted, models.ApplicationStatusHired).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	result.Total = totals.Total
	result.Completed = totals.Completed
	result.HiredWithInterview = totals.Hired
	if result.Total == 0 {
		return result, nil
	}

	err = q.Build(ctx, db).
		Select("interviews.type AS type, COUNT(*) AS count").
		Group("interviews.type").
		Order("count DESC, type ASC").
		Scan(&result.ByType).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ReportRepositoryImpl) HiredApplications(ctx context.Context, db *gorm.DB, filter ReportFilter) ([]HiredRow, error) {
	rows := []HiredRow{}
	err := HiredQuery(filter).Build(ctx, db).
		Select(`applications.id AS application_id,
			applications.job_position_id AS job_position_id,
			jp.title AS title,
			jp.department AS department,
			applications.applied_date AS applied_date,
			applications.hire_date AS hire_date`).
		Where("applications.hire_date IS NOT NULL").
		Order("applications.hire_date ASC, applications.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
