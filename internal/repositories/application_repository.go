package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	// ErrApplicationStatusChanged - строка не совпала по статусу, прочитанному перед записью
	ErrApplicationStatusChanged = errors.New("application status changed since it was read")
)

const applicationsTable = "applications"

// ApplicationPairIndex - одна неудаленная заявка на пару (кандидат, вакансия)
const ApplicationPairIndex = "idx_applications_candidate_job_active"

var applicationSortable = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"appliedDate": "applied_date",
	"matchScore":  "match_score",
	"status":      "status",
	"hireDate":    "hire_date",
}

type ApplicationFilter struct {
	Status             models.ApplicationStatus
	JobPositionID      string
	CandidateProfileID string
	Source             models.ApplicationSource
}

type ApplicationRepository interface {
	Create(ctx context.Context, db *gorm.DB, application *models.Application) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Application, error)
	FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Application, error)
	FindActiveByCandidateAndJob(ctx context.Context, db *gorm.DB, candidateID, jobPositionID string) (*models.Application, error)
	FindByJobWithCandidates(ctx context.Context, db *gorm.DB, jobPositionID string) ([]models.Application, error)
	List(ctx context.Context, db *gorm.DB, filter ApplicationFilter, page PageQuery) ([]models.Application, int64, error)
	Update(ctx context.Context, db *gorm.DB, application *models.Application, expectedStatus models.ApplicationStatus) error
	UpdateMatchScore(ctx context.Context, db *gorm.DB, id string, score int) (bool, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(ctx context.Context, db *gorm.DB, application *models.Application) error {
	// связи не пишем, только внешние ключи
	return translateError(db.WithContext(ctx).Omit("CandidateProfile", "JobPosition").Create(application).Error)
}

func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.WithContext(ctx).
		Preload("CandidateProfile").
		Preload("JobPosition").
		Scopes(notDeleted(applicationsTable)).
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	if err := db.WithContext(ctx).First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindActiveByCandidateAndJob(ctx context.Context, db *gorm.DB, candidateID, jobPositionID string) (*models.Application, error) {
	var application models.Application
	err := db.WithContext(ctx).
		Scopes(notDeleted(applicationsTable)).
		Where("candidate_profile_id = ? AND job_position_id = ?", candidateID, jobPositionID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// FindByJobWithCandidates - заявки вакансии с профилями, в порядке тай-брейка ранжирования
func (r *ApplicationRepositoryImpl) FindByJobWithCandidates(ctx context.Context, db *gorm.DB, jobPositionID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.WithContext(ctx).
		Preload("CandidateProfile").
		Scopes(notDeleted(applicationsTable)).
		Where("job_position_id = ?", jobPositionID).
		Order("applied_date ASC").
		Order("id ASC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) List(ctx context.Context, db *gorm.DB, filter ApplicationFilter, page PageQuery) ([]models.Application, int64, error) {
	var applications []models.Application
	var total int64

	page = page.Normalize()
	query := db.WithContext(ctx).Model(&models.Application{}).Scopes(notDeleted(applicationsTable))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.Canonical())
	}
	if filter.JobPositionID != "" {
		query = query.Where("job_position_id = ?", filter.JobPositionID)
	}
	if filter.CandidateProfileID != "" {
		query = query.Where("candidate_profile_id = ?", filter.CandidateProfileID)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("CandidateProfile").
		Preload("JobPosition").
		Scopes(paginate(page, applicationsTable, applicationSortable)).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// Update пишет изменяемые поля заявки, только если в БД все еще expectedStatus.
// match_score и результаты анализа резюме здесь не пишутся, у них свои writer'ы.
func (r *ApplicationRepositoryImpl) Update(ctx context.Context, db *gorm.DB, application *models.Application, expectedStatus models.ApplicationStatus) error {
	result := db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ?", application.ID, expectedStatus).
		Updates(ApplicationChanges(application))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApplicationStatusChanged
	}
	return nil
}

// ApplicationChanges - колонки, которые меняют правки, переходы статуса и мягкое удаление
func ApplicationChanges(a *models.Application) map[string]interface{} {
	return map[string]interface{}{
		"status":           a.Status,
		"screening_date":   a.ScreeningDate,
		"interview_date":   a.InterviewDate,
		"hire_date":        a.HireDate,
		"rejection_date":   a.RejectionDate,
		"rejection_reason": a.RejectionReason,
		"skills":           a.Skills,
		"source":           a.Source,
		"notes":            a.Notes,
		"resume_path":      a.ResumePath,
		"is_deleted":       a.IsDeleted,
		"deleted_at":       a.DeletedAt,
		"deleted_by":       a.DeletedBy,
		"updated_by":       a.UpdatedBy,
		"updated_at":       time.Now(),
	}
}

// UpdateMatchScore пишет оценку только если она изменилась; возвращает, была ли запись
func (r *ApplicationRepositoryImpl) UpdateMatchScore(ctx context.Context, db *gorm.DB, id string, score int) (bool, error) {
	result := db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND match_score <> ?", id, score).
		UpdateColumn("match_score", score)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
