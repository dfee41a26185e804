package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"gorm.io/gorm"
)

var ErrCandidateProfileNotFound = errors.New("candidate profile not found")

const candidateProfilesTable = "candidate_profiles"

// Имена частичных уникальных индексов, см. database/migrate.go
const (
	CandidateEmailIndex = "idx_candidate_profiles_email_active"
	CandidatePhoneIndex = "idx_candidate_profiles_phone_active"
)

var candidateSortable = map[string]string{
	"createdAt":              "created_at",
	"updatedAt":              "updated_at",
	"firstName":              "first_name",
	"lastName":               "last_name",
	"email":                  "email",
	"overallExperienceYears": "overall_experience_years",
}

type CandidateProfileFilter struct {
	Search   string
	Location string
	Skill    string
}

type CandidateProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, candidate *models.CandidateProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*models.CandidateProfile, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*models.CandidateProfile, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*models.CandidateProfile, error)
	List(ctx context.Context, db *gorm.DB, filter CandidateProfileFilter, page PageQuery) ([]models.CandidateProfile, int64, error)
	Update(ctx context.Context, db *gorm.DB, candidate *models.CandidateProfile) error
}

type CandidateProfileRepositoryImpl struct{}

func NewCandidateProfileRepository() CandidateProfileRepository {
	return &CandidateProfileRepositoryImpl{}
}

func (r *CandidateProfileRepositoryImpl) Create(ctx context.Context, db *gorm.DB, candidate *models.CandidateProfile) error {
	return translateError(db.WithContext(ctx).Create(candidate).Error)
}

func (r *CandidateProfileRepositoryImpl) FindByID(ctx context.Context, db *gorm.DB, id string) (*models.CandidateProfile, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

// FindByEmail ищет без учета регистра среди неудаленных
func (r *CandidateProfileRepositoryImpl) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*models.CandidateProfile, error) {
	return r.first(db.WithContext(ctx).Where("lower(email) = ?", models.NormalizeEmail(email)))
}

func (r *CandidateProfileRepositoryImpl) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*models.CandidateProfile, error) {
	return r.first(db.WithContext(ctx).Where("phone = ?", strings.TrimSpace(phone)))
}

func (r *CandidateProfileRepositoryImpl) first(query *gorm.DB) (*models.CandidateProfile, error) {
	var candidate models.CandidateProfile
	err := query.Scopes(notDeleted(candidateProfilesTable)).First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateProfileNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateProfileRepositoryImpl) List(ctx context.Context, db *gorm.DB, filter CandidateProfileFilter, page PageQuery) ([]models.CandidateProfile, int64, error) {
	var candidates []models.CandidateProfile
	var total int64

	page = page.Normalize()
	query := db.WithContext(ctx).Model(&models.CandidateProfile{}).Scopes(notDeleted(candidateProfilesTable))

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", filter.Location)
	}
	if skill := strings.TrimSpace(filter.Skill); skill != "" {
		// jsonb-массив строк: поиск элемента без учета регистра
		query = query.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(skills) s WHERE lower(s) = lower(?))", skill)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Scopes(paginate(page, candidateProfilesTable, candidateSortable)).Find(&candidates).Error; err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *CandidateProfileRepositoryImpl) Update(ctx context.Context, db *gorm.DB, candidate *models.CandidateProfile) error {
	return translateError(db.WithContext(ctx).Save(candidate).Error)
}
