package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"gorm.io/gorm"
)

type JobPositionService interface {
	CreateJobPosition(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreateJobPositionRequest) (*models.JobPosition, error)
	GetJobPosition(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error)
	ListJobPositions(ctx context.Context, db *gorm.DB, query *dto.JobPositionListQuery) (*dto.PaginatedResponse[models.JobPosition], error)
	UpdateJobPosition(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateJobPositionRequest) (*models.JobPosition, error)
	DeleteJobPosition(ctx context.Context, db *gorm.DB, actorID, id string) error
	RestoreJobPosition(ctx context.Context, db *gorm.DB, actorID, id string) (*models.JobPosition, error)
	HardDeleteJobPosition(ctx context.Context, db *gorm.DB, id string) error
	CloseExpiredPositions(ctx context.Context, db *gorm.DB) (int64, error)
}

type jobPositionService struct {
	jobRepo repositories.JobPositionRepository
	now     func() time.Time
}

func NewJobPositionService(jobRepo repositories.JobPositionRepository) JobPositionService {
	return &jobPositionService{jobRepo: jobRepo, now: utcNow}
}

func (s *jobPositionService) CreateJobPosition(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreateJobPositionRequest) (*models.JobPosition, error) {
	job := &models.JobPosition{
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Department:       strings.TrimSpace(req.Department),
		Location:         strings.TrimSpace(req.Location),
		JobType:          models.JobType(req.JobType),
		ExperienceLevel:  models.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   strings.ToUpper(req.SalaryCurrency),
		SalaryPeriod:     models.SalaryPeriod(req.SalaryPeriod),
		Status:           models.JobPositionStatus(req.Status),
		Responsibilities: cleanList(req.Responsibilities),
		Requirements:     cleanList(req.Requirements),
		Benefits:         cleanList(req.Benefits),
		RequiredSkills:   cleanList(req.RequiredSkills),
		PostedDate:       req.PostedDate,
		ClosingDate:      req.ClosingDate,
	}
	if job.Status == "" {
		job.Status = models.JobPositionStatusDraft
	}
	if job.Status == models.JobPositionStatusActive && job.PostedDate == nil {
		now := s.now()
		job.PostedDate = &now
	}
	if !job.SalaryRangeValid() {
		return nil, apperrors.ErrInvalidSalaryRange
	}
	job.Created(actorID)

	if err := s.jobRepo.Create(ctx, db, job); err != nil {
		return nil, storeError(err)
	}
	logger.CtxInfo(ctx, "Job position created", "job_position_id", job.ID, "status", job.Status)
	return job, nil
}

func (s *jobPositionService) GetJobPosition(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error) {
	job, err := s.jobRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapJobPositionError(err)
	}
	return job, nil
}

func (s *jobPositionService) ListJobPositions(ctx context.Context, db *gorm.DB, query *dto.JobPositionListQuery) (*dto.PaginatedResponse[models.JobPosition], error) {
	page := toPageQuery(query.PaginationQuery)
	filter := repositories.JobPositionFilter{
		Status:          models.JobPositionStatus(query.Status),
		Department:      query.Department,
		JobType:         models.JobType(query.JobType),
		ExperienceLevel: models.ExperienceLevel(query.ExperienceLevel),
		Search:          query.Search,
	}
	jobs, total, err := s.jobRepo.List(ctx, db, filter, page)
	if err != nil {
		return nil, storeError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, page.Page, page.Limit), nil
}

func (s *jobPositionService) UpdateJobPosition(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateJobPositionRequest) (*models.JobPosition, error) {
	job, err := s.jobRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapJobPositionError(err)
	}

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Department != nil {
		job.Department = strings.TrimSpace(*req.Department)
	}
	if req.Location != nil {
		job.Location = strings.TrimSpace(*req.Location)
	}
	if req.JobType != nil {
		job.JobType = models.JobType(*req.JobType)
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = models.ExperienceLevel(*req.ExperienceLevel)
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = strings.ToUpper(*req.SalaryCurrency)
	}
	if req.SalaryPeriod != nil {
		job.SalaryPeriod = models.SalaryPeriod(*req.SalaryPeriod)
	}
	if req.Status != nil {
		job.Status = models.JobPositionStatus(*req.Status)
		if job.Status == models.JobPositionStatusActive && job.PostedDate == nil {
			now := s.now()
			job.PostedDate = &now
		}
	}
	if req.Responsibilities != nil {
		job.Responsibilities = cleanList(*req.Responsibilities)
	}
	if req.Requirements != nil {
		job.Requirements = cleanList(*req.Requirements)
	}
	if req.Benefits != nil {
		job.Benefits = cleanList(*req.Benefits)
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = cleanList(*req.RequiredSkills)
	}
	if req.PostedDate != nil {
		job.PostedDate = req.PostedDate
	}
	if req.ClosingDate != nil {
		job.ClosingDate = req.ClosingDate
	}

	// проверяется по итоговым значениям, а не только по переданным
	if !job.SalaryRangeValid() {
		return nil, apperrors.ErrInvalidSalaryRange
	}
	job.Touch(actorID)

	if err := s.jobRepo.Update(ctx, db, job); err != nil {
		return nil, storeError(err)
	}
	return job, nil
}

func (s *jobPositionService) DeleteJobPosition(ctx context.Context, db *gorm.DB, actorID, id string) error {
	job, err := s.jobRepo.FindByID(ctx, db, id)
	if err != nil {
		return mapJobPositionError(err)
	}
	job.MarkDeleted(actorID, s.now())
	if err := s.jobRepo.Update(ctx, db, job); err != nil {
		return storeError(err)
	}
	logger.CtxInfo(ctx, "Job position soft-deleted", "job_position_id", id)
	return nil
}

func (s *jobPositionService) RestoreJobPosition(ctx context.Context, db *gorm.DB, actorID, id string) (*models.JobPosition, error) {
	job, err := s.jobRepo.FindByIDIncludingDeleted(ctx, db, id)
	if err != nil {
		return nil, mapJobPositionError(err)
	}
	if !job.IsDeleted {
		return job, nil
	}
	job.Restore(actorID)
	if err := s.jobRepo.Update(ctx, db, job); err != nil {
		return nil, storeError(err)
	}
	logger.CtxInfo(ctx, "Job position restored", "job_position_id", id)
	return job, nil
}

func (s *jobPositionService) HardDeleteJobPosition(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.jobRepo.HardDelete(ctx, db, id); err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return apperrors.ErrConflict(err, "job_position", "Job position has applications or interviews and cannot be permanently deleted")
		}
		return mapJobPositionError(err)
	}
	logger.CtxWarn(ctx, "Job position permanently deleted", "job_position_id", id)
	return nil
}

func (s *jobPositionService) CloseExpiredPositions(ctx context.Context, db *gorm.DB) (int64, error) {
	return s.jobRepo.CloseExpired(ctx, db, s.now())
}

func mapJobPositionError(err error) error {
	if errors.Is(err, repositories.ErrJobPositionNotFound) {
		return apperrors.ErrJobPositionNotFound
	}
	return storeError(err)
}
