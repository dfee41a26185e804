package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"gorm.io/gorm"
)

var ErrJobPositionNotFound = errors.New("job position not found")

const jobPositionsTable = "job_positions"

var jobPositionSortable = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"title":           "title",
	"department":      "department",
	"status":          "status",
	"postedDate":      "posted_date",
	"closingDate":     "closing_date",
	"experienceLevel": "experience_level",
}

// JobPositionFilter - фильтры списка вакансий
type JobPositionFilter struct {
	Status          models.JobPositionStatus
	Department      string
	JobType         models.JobType
	ExperienceLevel models.ExperienceLevel
	Search          string
}

type JobPositionRepository interface {
	Create(ctx context.Context, db *gorm.DB, job *models.JobPosition) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error)
	FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error)
	List(ctx context.Context, db *gorm.DB, filter JobPositionFilter, page PageQuery) ([]models.JobPosition, int64, error)
	FindActive(ctx context.Context, db *gorm.DB) ([]models.JobPosition, error)
	Update(ctx context.Context, db *gorm.DB, job *models.JobPosition) error
	HardDelete(ctx context.Context, db *gorm.DB, id string) error
	CloseExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}

type JobPositionRepositoryImpl struct{}

func NewJobPositionRepository() JobPositionRepository {
	return &JobPositionRepositoryImpl{}
}

func (r *JobPositionRepositoryImpl) Create(ctx context.Context, db *gorm.DB, job *models.JobPosition) error {
	return translateError(db.WithContext(ctx).Create(job).Error)
}

func (r *JobPositionRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error) {
	var job models.JobPosition
	err := db.WithContext(ctx).
		Scopes(notDeleted(jobPositionsTable)).
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobPositionNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobPositionRepositoryImpl) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.JobPosition, error) {
	var job models.JobPosition
	if err := db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobPositionNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobPositionRepositoryImpl) List(ctx context.Context, db *gorm.DB, filter JobPositionFilter, page PageQuery) ([]models.JobPosition, int64, error) {
	var jobs []models.JobPosition
	var total int64

	page = page.Normalize()
	query := db.WithContext(ctx).Model(&models.JobPosition{}).Scopes(notDeleted(jobPositionsTable))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", filter.JobType)
	}
	if filter.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", filter.ExperienceLevel)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(paginate(page, jobPositionsTable, jobPositionSortable)).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FindActive - все ACTIVE и неудаленные вакансии, порядок стабилен
func (r *JobPositionRepositoryImpl) FindActive(ctx context.Context, db *gorm.DB) ([]models.JobPosition, error) {
	var jobs []models.JobPosition
	err := db.WithContext(ctx).
		Scopes(notDeleted(jobPositionsTable)).
		Where("status = ?", models.JobPositionStatusActive).
		Order("id ASC").
		Find(&jobs).Error
	return jobs, err
}

// Update сохраняет запись целиком, включая поля мягкого удаления
func (r *JobPositionRepositoryImpl) Update(ctx context.Context, db *gorm.DB, job *models.JobPosition) error {
	return translateError(db.WithContext(ctx).Save(job).Error)
}

func (r *JobPositionRepositoryImpl) HardDelete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.JobPosition{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobPositionNotFound
	}
	return nil
}

// CloseExpired закрывает ACTIVE/ON_HOLD вакансии с прошедшей closingDate
func (r *JobPositionRepositoryImpl) CloseExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&models.JobPosition{}).
		Scopes(notDeleted(jobPositionsTable)).
		Where("status IN ?", []models.JobPositionStatus{models.JobPositionStatusActive, models.JobPositionStatusOnHold}).
		Where("closing_date IS NOT NULL AND closing_date < ?", now).
		Updates(map[string]interface{}{
			"status":     models.JobPositionStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
