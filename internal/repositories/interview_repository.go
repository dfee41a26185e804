package repositories

import (
	"context"
	"errors"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"gorm.io/gorm"
)

var ErrInterviewNotFound = errors.New("interview not found")

const interviewsTable = "interviews"

var interviewSortable = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"scheduledDate": "scheduled_date",
	"status":        "status",
	"type":          "type",
}

type InterviewFilter struct {
	ApplicationID string
	JobPositionID string
	Status        models.InterviewStatus
	Type          models.InterviewType
}

type InterviewRepository interface {
	Create(ctx context.Context, db *gorm.DB, interview *models.Interview) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error)
	FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error)
	List(ctx context.Context, db *gorm.DB, filter InterviewFilter, page PageQuery) ([]models.Interview, int64, error)
	Update(ctx context.Context, db *gorm.DB, interview *models.Interview) error
	HardDelete(ctx context.Context, db *gorm.DB, id string) error
}

type InterviewRepositoryImpl struct{}

func NewInterviewRepository() InterviewRepository {
	return &InterviewRepositoryImpl{}
}

func (r *InterviewRepositoryImpl) Create(ctx context.Context, db *gorm.DB, interview *models.Interview) error {
	return translateError(db.WithContext(ctx).Omit("Application").Create(interview).Error)
}

func (r *InterviewRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error) {
	var interview models.Interview
	err := db.WithContext(ctx).
		Scopes(notDeleted(interviewsTable)).
		First(&interview, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) FindByIDIncludingDeleted(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error) {
	var interview models.Interview
	if err := db.WithContext(ctx).First(&interview, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) List(ctx context.Context, db *gorm.DB, filter InterviewFilter, page PageQuery) ([]models.Interview, int64, error) {
	var interviews []models.Interview
	var total int64

	page = page.Normalize()
	query := db.WithContext(ctx).Model(&models.Interview{}).Scopes(notDeleted(interviewsTable))

	if filter.ApplicationID != "" {
		query = query.Where("application_id = ?", filter.ApplicationID)
	}
	if filter.JobPositionID != "" {
		query = query.Where("job_position_id = ?", filter.JobPositionID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(paginate(page, interviewsTable, interviewSortable)).Find(&interviews).Error; err != nil {
		return nil, 0, err
	}
	return interviews, total, nil
}

func (r *InterviewRepositoryImpl) Update(ctx context.Context, db *gorm.DB, interview *models.Interview) error {
	return translateError(db.WithContext(ctx).Omit("Application").Save(interview).Error)
}

// HardDelete - физическое удаление, мимо учета мягкого удаления
func (r *InterviewRepositoryImpl) HardDelete(ctx context.Context, db *gorm.DB, id string) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Interview{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}
