package dto

import (
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
)

// ReportQuery - фильтры отчетов; даты в RFC3339 или YYYY-MM-DD
type ReportQuery struct {
	StartDate     string `form:"startDate"`
	EndDate       string `form:"endDate"`
	JobPositionID string `form:"jobPositionId" validate:"omitempty,uuid"`
	Department    string `form:"department" validate:"omitempty,max=255"`
}

type ReportFilters struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	JobPositionID string     `json:"jobPositionId,omitempty"`
	Department    string     `json:"department,omitempty"`
}

type ApplicationsOverview struct {
	TotalApplications  int64                           `json:"totalApplications"`
	ByStatus           []repositories.StatusCount      `json:"byStatus"`
	ByJobPosition      []repositories.JobPositionCount `json:"byJobPosition"`
	BySource           []repositories.SourceCount      `json:"bySource"`
	AvgExperienceYears float64                         `json:"avgExperienceYears"`
}

type InterviewSuccessRate struct {
	TotalInterviews     int64                    `json:"totalInterviews"`
	CompletedInterviews int64                    `json:"completedInterviews"`
	ByType              []repositories.TypeCount `json:"byType"`
	HiredWithInterview  int64                    `json:"hiredWithInterview"`
	SuccessRate         float64                  `json:"successRate"`
}

type JobTimeToHire struct {
	JobPositionID string  `json:"jobPositionId"`
	Title         string  `json:"title"`
	AvgDays       float64 `json:"avgDays"`
	Count         int     `json:"count"`
}

type DepartmentTimeToHire struct {
	Department string  `json:"department"`
	AvgDays    float64 `json:"avgDays"`
	Count      int     `json:"count"`
}

type TimeToHire struct {
	TotalHired           int                    `json:"totalHired"`
	AvgTimeToHireDays    float64                `json:"avgTimeToHireDays"`
	MedianTimeToHireDays float64                `json:"medianTimeToHireDays"`
	ByJobPosition        []JobTimeToHire        `json:"byJobPosition"`
	ByDepartment         []DepartmentTimeToHire `json:"byDepartment"`
}

type DashboardSummary struct {
	Filters              ReportFilters         `json:"filters"`
	ApplicationsOverview *ApplicationsOverview `json:"applicationsOverview"`
	InterviewSuccessRate *InterviewSuccessRate `json:"interviewSuccessRate"`
	TimeToHire           *TimeToHire           `json:"timeToHire"`
	GeneratedAt          time.Time             `json:"generatedAt"`
}
