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

type CandidateProfileService interface {
	CreateCandidateProfile(ctx context.Context, db *gorm.DB, actorID string, req *dto.CandidateDetails) (*models.CandidateProfile, error)
	// ResolveCandidate находит кандидата по email или создает нового; created=true если создан
	ResolveCandidate(ctx context.Context, db *gorm.DB, actorID string, details *dto.CandidateDetails) (candidate *models.CandidateProfile, created bool, err error)
	GetCandidateProfile(ctx context.Context, db *gorm.DB, id string) (*models.CandidateProfile, error)
	ListCandidateProfiles(ctx context.Context, db *gorm.DB, query *dto.CandidateProfileListQuery) (*dto.PaginatedResponse[models.CandidateProfile], error)
	UpdateCandidateProfile(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error)
	DeleteCandidateProfile(ctx context.Context, db *gorm.DB, actorID, id string) error
}

type candidateProfileService struct {
	candidateRepo repositories.CandidateProfileRepository
	now           func() time.Time
}

func NewCandidateProfileService(candidateRepo repositories.CandidateProfileRepository) CandidateProfileService {
	return &candidateProfileService{candidateRepo: candidateRepo, now: utcNow}
}

func (s *candidateProfileService) CreateCandidateProfile(ctx context.Context, db *gorm.DB, actorID string, req *dto.CandidateDetails) (*models.CandidateProfile, error) {
	if err := s.ensureUnique(ctx, db, req.Email, req.Phone, ""); err != nil {
		return nil, err
	}
	return s.create(ctx, db, actorID, req)
}

func (s *candidateProfileService) ResolveCandidate(ctx context.Context, db *gorm.DB, actorID string, details *dto.CandidateDetails) (*models.CandidateProfile, bool, error) {
	existing, err := s.candidateRepo.FindByEmail(ctx, db, details.Email)
	switch {
	case err == nil:
		// телефон не должен принадлежать другому кандидату
		if err := s.ensurePhoneFree(ctx, db, details.Phone, existing.ID); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, repositories.ErrCandidateProfileNotFound):
		return nil, false, storeError(err)
	}

	if err := s.ensurePhoneFree(ctx, db, details.Phone, ""); err != nil {
		return nil, false, err
	}
	candidate, err := s.insert(ctx, db, actorID, details)
	if err == nil {
		return candidate, true, nil
	}
	if !errors.Is(err, repositories.ErrDuplicateKey) || repositories.ConstraintName(err) == repositories.CandidatePhoneIndex {
		return nil, false, mapCandidateWriteError(err)
	}

	// параллельный запрос успел создать кандидата с тем же email: перечитываем один раз
	existing, findErr := s.candidateRepo.FindByEmail(ctx, db, details.Email)
	if findErr != nil {
		return nil, false, mapCandidateWriteError(err)
	}
	logger.CtxInfo(ctx, "Candidate profile created concurrently, reusing it", "candidate_profile_id", existing.ID)
	return existing, false, nil
}

func (s *candidateProfileService) create(ctx context.Context, db *gorm.DB, actorID string, req *dto.CandidateDetails) (*models.CandidateProfile, error) {
	candidate, err := s.insert(ctx, db, actorID, req)
	if err != nil {
		return nil, mapCandidateWriteError(err)
	}
	return candidate, nil
}

func (s *candidateProfileService) insert(ctx context.Context, db *gorm.DB, actorID string, req *dto.CandidateDetails) (*models.CandidateProfile, error) {
	candidate := &models.CandidateProfile{}
	applyCandidateDetails(candidate, req)
	candidate.Created(actorID)

	if err := s.candidateRepo.Create(ctx, db, candidate); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "Candidate profile created", "candidate_profile_id", candidate.ID)
	return candidate, nil
}

func (s *candidateProfileService) GetCandidateProfile(ctx context.Context, db *gorm.DB, id string) (*models.CandidateProfile, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapCandidateError(err)
	}
	return candidate, nil
}

func (s *candidateProfileService) ListCandidateProfiles(ctx context.Context, db *gorm.DB, query *dto.CandidateProfileListQuery) (*dto.PaginatedResponse[models.CandidateProfile], error) {
	page := toPageQuery(query.PaginationQuery)
	filter := repositories.CandidateProfileFilter{
		Search:   query.Search,
		Location: query.Location,
		Skill:    query.Skill,
	}
	candidates, total, err := s.candidateRepo.List(ctx, db, filter, page)
	if err != nil {
		return nil, storeError(err)
	}
	return dto.NewPaginatedResponse(candidates, total, page.Page, page.Limit), nil
}

func (s *candidateProfileService) UpdateCandidateProfile(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapCandidateError(err)
	}

	if req.Email != nil && models.NormalizeEmail(*req.Email) != models.NormalizeEmail(candidate.Email) {
		if err := s.ensureUnique(ctx, db, *req.Email, "", candidate.ID); err != nil {
			return nil, err
		}
		candidate.Email = models.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := s.ensurePhoneFree(ctx, db, phone, candidate.ID); err != nil {
			return nil, err
		}
		candidate.Phone = optionalString(phone)
	}
	if req.FirstName != nil {
		candidate.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		candidate.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Skills != nil {
		candidate.Skills = cleanList(*req.Skills)
	}
	if req.Experience != nil {
		candidate.Experience = toExperience(*req.Experience)
	}
	if req.Education != nil {
		candidate.Education = toEducation(*req.Education)
	}
	if req.PreferredJobTypes != nil {
		candidate.PreferredJobTypes = toJobTypes(*req.PreferredJobTypes)
	}
	if req.PreferredTitles != nil {
		candidate.PreferredTitles = cleanList(*req.PreferredTitles)
	}
	if req.OverallExperienceYears != nil {
		candidate.OverallExperienceYears = *req.OverallExperienceYears
	}
	if req.Location != nil {
		candidate.Location = strings.TrimSpace(*req.Location)
	}
	if req.ExpectedSalary != nil {
		candidate.ExpectedSalary = req.ExpectedSalary
	}
	if req.Currency != nil {
		candidate.Currency = strings.ToUpper(*req.Currency)
	}
	candidate.Touch(actorID)

	if err := s.candidateRepo.Update(ctx, db, candidate); err != nil {
		return nil, mapCandidateWriteError(err)
	}
	return candidate, nil
}

func (s *candidateProfileService) DeleteCandidateProfile(ctx context.Context, db *gorm.DB, actorID, id string) error {
	candidate, err := s.candidateRepo.FindByID(ctx, db, id)
	if err != nil {
		return mapCandidateError(err)
	}
	candidate.MarkDeleted(actorID, s.now())
	if err := s.candidateRepo.Update(ctx, db, candidate); err != nil {
		return storeError(err)
	}
	logger.CtxInfo(ctx, "Candidate profile soft-deleted", "candidate_profile_id", id)
	return nil
}

// ensureUnique - предварительная проверка; гонки закрывает уникальный индекс
func (s *candidateProfileService) ensureUnique(ctx context.Context, db *gorm.DB, email, phone, selfID string) error {
	existing, err := s.candidateRepo.FindByEmail(ctx, db, email)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.ErrCandidateEmailExists
	case err != nil && !errors.Is(err, repositories.ErrCandidateProfileNotFound):
		return storeError(err)
	}
	return s.ensurePhoneFree(ctx, db, phone, selfID)
}

func (s *candidateProfileService) ensurePhoneFree(ctx context.Context, db *gorm.DB, phone, selfID string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	existing, err := s.candidateRepo.FindByPhone(ctx, db, phone)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.ErrCandidatePhoneExists
	case err != nil && !errors.Is(err, repositories.ErrCandidateProfileNotFound):
		return storeError(err)
	}
	return nil
}

func applyCandidateDetails(c *models.CandidateProfile, d *dto.CandidateDetails) {
	c.FirstName = strings.TrimSpace(d.FirstName)
	c.LastName = strings.TrimSpace(d.LastName)
	c.Email = models.NormalizeEmail(d.Email)
	c.Phone = optionalString(strings.TrimSpace(d.Phone))
	c.Skills = cleanList(d.Skills)
	c.Experience = toExperience(d.Experience)
	c.Education = toEducation(d.Education)
	c.PreferredJobTypes = toJobTypes(d.PreferredJobTypes)
	c.PreferredTitles = cleanList(d.PreferredTitles)
	c.OverallExperienceYears = d.OverallExperienceYears
	c.Location = strings.TrimSpace(d.Location)
	c.ExpectedSalary = d.ExpectedSalary
	c.Currency = strings.ToUpper(d.Currency)
}

func toExperience(entries []dto.ExperienceEntry) []models.ExperienceEntry {
	out := make([]models.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ExperienceEntry{
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	return out
}

func toEducation(entries []dto.EducationEntry) []models.EducationEntry {
	out := make([]models.EducationEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.EducationEntry{
			Institution:  e.Institution,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartYear:    e.StartYear,
			EndYear:      e.EndYear,
		})
	}
	return out
}

func toJobTypes(values []string) []models.JobType {
	out := make([]models.JobType, 0, len(values))
	for _, v := range values {
		out = append(out, models.JobType(v))
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapCandidateError(err error) error {
	if errors.Is(err, repositories.ErrCandidateProfileNotFound) {
		return apperrors.ErrCandidateNotFound
	}
	return storeError(err)
}

// mapCandidateWriteError различает email и phone по имени нарушенного индекса
func mapCandidateWriteError(err error) error {
	if !errors.Is(err, repositories.ErrDuplicateKey) {
		return storeError(err)
	}
	if repositories.ConstraintName(err) == repositories.CandidatePhoneIndex {
		return apperrors.ErrCandidatePhoneExists.WithError(err)
	}
	return apperrors.ErrCandidateEmailExists.WithError(err)
}
