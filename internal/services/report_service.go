package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const dateOnly = "2006-01-02"

type ReportService interface {
	ApplicationsOverview(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.ApplicationsOverview, error)
	InterviewSuccessRate(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.InterviewSuccessRate, error)
	TimeToHire(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.TimeToHire, error)
	DashboardSummary(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.DashboardSummary, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	now        func() time.Time
}

func NewReportService(reportRepo repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo, now: utcNow}
}

func (s *reportService) ApplicationsOverview(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.ApplicationsOverview, error) {
	filter, err := ParseReportFilter(query)
	if err != nil {
		return nil, err
	}
	return s.applicationsOverview(ctx, db, filter)
}

func (s *reportService) InterviewSuccessRate(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.InterviewSuccessRate, error) {
	filter, err := ParseReportFilter(query)
	if err != nil {
		return nil, err
	}
	return s.interviewSuccessRate(ctx, db, filter)
}

func (s *reportService) TimeToHire(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.TimeToHire, error) {
	filter, err := ParseReportFilter(query)
	if err != nil {
		return nil, err
	}
	return s.timeToHire(ctx, db, filter)
}

// DashboardSummary считает три отчета параллельно; первая ошибка отменяет остальные
func (s *reportService) DashboardSummary(ctx context.Context, db *gorm.DB, query *dto.ReportQuery) (*dto.DashboardSummary, error) {
	filter, err := ParseReportFilter(query)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		Filters: dto.ReportFilters{
			StartDate:     filter.StartDate,
			EndDate:       filter.EndDate,
			JobPositionID: filter.JobPositionID,
			Department:    filter.Department,
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.applicationsOverview(gctx, db, filter)
		summary.ApplicationsOverview = res
		return err
	})
	g.Go(func() error {
		res, err := s.interviewSuccessRate(gctx, db, filter)
		summary.InterviewSuccessRate = res
		return err
	})
	g.Go(func() error {
		res, err := s.timeToHire(gctx, db, filter)
		summary.TimeToHire = res
		return err
	})
	if err := g.Wait(); err != nil {
		logger.CtxError(ctx, "Dashboard summary failed", "error", err)
		return nil, err
	}

	summary.GeneratedAt = s.now()
	return summary, nil
}

func (s *reportService) applicationsOverview(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) (*dto.ApplicationsOverview, error) {
	agg, err := s.reportRepo.ApplicationsOverview(ctx, db, filter)
	if err != nil {
		return nil, storeError(err)
	}
	return &dto.ApplicationsOverview{
		TotalApplications:  agg.Total,
		ByStatus:           nonNil(agg.ByStatus),
		ByJobPosition:      nonNil(agg.ByJobPosition),
		BySource:           nonNil(agg.BySource),
		AvgExperienceYears: Round2(agg.AvgExperienceYears),
	}, nil
}

func (s *reportService) interviewSuccessRate(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) (*dto.InterviewSuccessRate, error) {
	agg, err := s.reportRepo.InterviewStats(ctx, db, filter)
	if err != nil {
		return nil, storeError(err)
	}
	rate := 0.0
	if agg.Completed > 0 {
		rate = float64(agg.HiredWithInterview) / float64(agg.Completed) * 100
	}
	return &dto.InterviewSuccessRate{
		TotalInterviews:     agg.Total,
		CompletedInterviews: agg.Completed,
		ByType:              nonNil(agg.ByType),
		HiredWithInterview:  agg.HiredWithInterview,
		SuccessRate:         Round2(rate),
	}, nil
}

func (s *reportService) timeToHire(ctx context.Context, db *gorm.DB, filter repositories.ReportFilter) (*dto.TimeToHire, error) {
	rows, err := s.reportRepo.HiredApplications(ctx, db, filter)
	if err != nil {
		return nil, storeError(err)
	}
	return SummarizeTimeToHire(rows), nil
}

// SummarizeTimeToHire: дни = (hireDate - appliedDate) / 24h; все значения округлены до 2 знаков
func SummarizeTimeToHire(rows []repositories.HiredRow) *dto.TimeToHire {
	result := &dto.TimeToHire{
		ByJobPosition: []dto.JobTimeToHire{},
		ByDepartment:  []dto.DepartmentTimeToHire{},
	}

	type bucket struct {
		title string
		sum   float64
		count int
	}
	byJob := map[string]*bucket{}
	byDept := map[string]*bucket{}
	days := make([]float64, 0, len(rows))

	for _, r := range rows {
		if r.AppliedDate.IsZero() || r.HireDate.IsZero() {
			continue
		}
		d := r.HireDate.Sub(r.AppliedDate).Hours() / 24
		days = append(days, d)

		jb, ok := byJob[r.JobPositionID]
		if !ok {
			jb = &bucket{title: r.Title}
			byJob[r.JobPositionID] = jb
		}
		jb.sum += d
		jb.count++

		dept := r.Department
		if strings.TrimSpace(dept) == "" {
			dept = "Unassigned"
		}
		dp, ok := byDept[dept]
		if !ok {
			dp = &bucket{}
			byDept[dept] = dp
		}
		dp.sum += d
		dp.count++
	}

	result.TotalHired = len(days)
	if len(days) == 0 {
		return result
	}
	result.AvgTimeToHireDays = Round2(mean(days))
	result.MedianTimeToHireDays = Round2(median(days))

	for id, b := range byJob {
		result.ByJobPosition = append(result.ByJobPosition, dto.JobTimeToHire{
			JobPositionID: id,
			Title:         b.title,
			AvgDays:       Round2(b.sum / float64(b.count)),
			Count:         b.count,
		})
	}
	sort.Slice(result.ByJobPosition, func(i, j int) bool {
		a, b := result.ByJobPosition[i], result.ByJobPosition[j]
		if a.AvgDays != b.AvgDays {
			return a.AvgDays < b.AvgDays
		}
		return a.JobPositionID < b.JobPositionID
	})

	for dept, b := range byDept {
		result.ByDepartment = append(result.ByDepartment, dto.DepartmentTimeToHire{
			Department: dept,
			AvgDays:    Round2(b.sum / float64(b.count)),
			Count:      b.count,
		})
	}
	sort.Slice(result.ByDepartment, func(i, j int) bool {
		a, b := result.ByDepartment[i], result.ByDepartment[j]
		if a.AvgDays != b.AvgDays {
			return a.AvgDays < b.AvgDays
		}
		return a.Department < b.Department
	})

	return result
}

// ParseReportFilter разбирает даты (RFC3339 или YYYY-MM-DD).
// endDate без времени включает весь день.
func ParseReportFilter(query *dto.ReportQuery) (repositories.ReportFilter, error) {
	filter := repositories.ReportFilter{
		JobPositionID: strings.TrimSpace(query.JobPositionID),
		Department:    strings.TrimSpace(query.Department),
	}

	start, _, err := parseReportDate(query.StartDate)
	if err != nil {
		return filter, apperrors.ValidationError(map[string]string{"startDate": err.Error()})
	}
	end, dateOnlyEnd, err := parseReportDate(query.EndDate)
	if err != nil {
		return filter, apperrors.ValidationError(map[string]string{"endDate": err.Error()})
	}
	if end != nil && dateOnlyEnd {
		eod := end.Add(24*time.Hour - time.Nanosecond)
		end = &eod
	}
	if start != nil && end != nil && end.Before(*start) {
		return filter, apperrors.ValidationError(map[string]string{"endDate": "must not be before startDate"})
	}

	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}

func parseReportDate(value string) (*time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, false, nil
	}
	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return nil, false, errors.New("expected RFC3339 or YYYY-MM-DD")
	}
	return &t, true, nil
}

// Round2 округляет до 2 знаков; NaN/Inf -> 0
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
