package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/algorithms"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/enrichment"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/storage"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedResumeExtensions = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
}

type ApplicationService interface {
	CreateApplication(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, db *gorm.DB, id string) (*models.Application, error)
	ListApplications(ctx context.Context, db *gorm.DB, query *dto.ApplicationListQuery) (*dto.PaginatedResponse[models.Application], error)
	UpdateApplication(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateApplicationRequest) (*models.Application, error)
	DeleteApplication(ctx context.Context, db *gorm.DB, actorID, id string) error
	RestoreApplication(ctx context.Context, db *gorm.DB, actorID, id string) (*models.Application, error)
	UploadResume(ctx context.Context, fileName string, size int64, content io.Reader) (*dto.ResumeUploadResponse, error)
}

type applicationService struct {
	appRepo          repositories.ApplicationRepository
	jobRepo          repositories.JobPositionRepository
	candidateService CandidateProfileService
	gateway          enrichment.Gateway
	storage          storage.Storage
	maxResumeSize    int64
	now              func() time.Time
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobPositionRepository,
	candidateService CandidateProfileService,
	gateway enrichment.Gateway,
	store storage.Storage,
	maxResumeSize int64,
) ApplicationService {
	if gateway == nil {
		gateway = enrichment.Disabled{}
	}
	return &applicationService{
		appRepo:          appRepo,
		jobRepo:          jobRepo,
		candidateService: candidateService,
		gateway:          gateway,
		storage:          store,
		maxResumeSize:    maxResumeSize,
		now:              utcNow,
	}
}

func (s *applicationService) CreateApplication(ctx context.Context, db *gorm.DB, actorID string, req *dto.CreateApplicationRequest) (*models.Application, error) {
	// 1. Вакансия существует и принимает заявки
	job, err := s.jobRepo.FindByID(ctx, db, req.JobPositionID)
	if err != nil {
		return nil, mapJobPositionError(err)
	}
	if !job.AcceptsApplications() {
		return nil, apperrors.ErrJobPositionClosed
	}

	// 2. Кандидат: находим по email или создаем (отдельная запись, без транзакции)
	candidate, created, err := s.candidateService.ResolveCandidate(ctx, db, actorID, &req.Candidate)
	if err != nil {
		return nil, err
	}

	// 3. Дубликат заявки; окончательно решает частичный уникальный индекс
	if _, err := s.appRepo.FindActiveByCandidateAndJob(ctx, db, candidate.ID, job.ID); err == nil {
		return nil, apperrors.ErrDuplicateApplication
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, storeError(err)
	}

	// 4. Обогащение резюме: ошибка или таймаут заменяются пустым результатом
	enriched := s.enrich(ctx, req.ResumePath)

	// 5. Начальная оценка только по данным резюме
	score := algorithms.EnrichmentScore(job, enriched.ExtractedSkills)

	now := s.now()
	app := &models.Application{
		CandidateProfileID: candidate.ID,
		JobPositionID:      job.ID,
		ResumePath:         strings.TrimSpace(req.ResumePath),
		Status:             models.ApplicationStatusApplied,
		AppliedDate:        now,
		Skills:             cleanList(req.Skills),
		ExperienceYears:    candidate.OverallExperienceYears,
		MatchScore:         score,
		ExtractedSkills:    enriched.ExtractedSkills,
		ExtractedSummary:   enriched.Summary,
		Source:             models.ApplicationSource(req.Source),
		Notes:              req.Notes,
	}
	if app.Source == "" {
		app.Source = models.ApplicationSourceWebsite
	}
	if !enriched.IsEmpty() {
		analyzed := enriched.AnalyzedAt
		app.ResumeAnalysisDate = &analyzed
	}
	app.Created(actorID)

	if err := s.appRepo.Create(ctx, db, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateApplication.WithError(err)
		}
		return nil, storeError(err)
	}

	app.CandidateProfile = candidate
	app.JobPosition = job
	logger.CtxInfo(ctx, "Application created",
		"application_id", app.ID,
		"job_position_id", job.ID,
		"candidate_profile_id", candidate.ID,
		"candidate_created", created,
		"match_score", score,
	)
	return app, nil
}

func (s *applicationService) enrich(ctx context.Context, resumePath string) (result enrichment.Enrichment) {
	if strings.TrimSpace(resumePath) == "" {
		return enrichment.Empty()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.CtxError(ctx, "Resume enrichment panicked, continuing without it",
				"resume_path", resumePath,
				"panic", fmt.Sprint(r),
			)
			result = enrichment.Empty()
		}
	}()

	result, err := s.gateway.Enrich(ctx, resumePath)
	if err != nil {
		logger.CtxWarn(ctx, "Resume enrichment failed, continuing without it",
			"resume_path", resumePath,
			"error", err,
		)
		return enrichment.Empty()
	}
	if result.ExtractedSkills == nil {
		result.ExtractedSkills = []string{}
	}
	return result
}

func (s *applicationService) GetApplication(ctx context.Context, db *gorm.DB, id string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapApplicationError(err)
	}
	return app, nil
}

func (s *applicationService) ListApplications(ctx context.Context, db *gorm.DB, query *dto.ApplicationListQuery) (*dto.PaginatedResponse[models.Application], error) {
	page := toPageQuery(query.PaginationQuery)
	filter := repositories.ApplicationFilter{
		Status:             models.ApplicationStatus(query.Status),
		JobPositionID:      query.JobPositionID,
		CandidateProfileID: query.CandidateProfileID,
		Source:             models.ApplicationSource(query.Source),
	}
	apps, total, err := s.appRepo.List(ctx, db, filter, page)
	if err != nil {
		return nil, storeError(err)
	}
	return dto.NewPaginatedResponse(apps, total, page.Page, page.Limit), nil
}

func (s *applicationService) UpdateApplication(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapApplicationError(err)
	}
	readStatus := app.Status

	if req.Status != nil {
		reason := app.RejectionReason
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		if err := ApplyTransition(app, models.ApplicationStatus(*req.Status), reason, s.now()); err != nil {
			return nil, err
		}
	}

	if req.RejectionReason != nil && app.Status == models.ApplicationStatusRejected {
		reason := strings.TrimSpace(*req.RejectionReason)
		if reason == "" {
			return nil, apperrors.ErrRejectionReasonRequired
		}
		app.RejectionReason = reason
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.Skills != nil {
		app.Skills = cleanList(*req.Skills)
	}
	if req.Source != nil {
		app.Source = models.ApplicationSource(*req.Source)
	}
	if req.ResumePath != nil {
		app.ResumePath = strings.TrimSpace(*req.ResumePath)
	}
	app.Touch(actorID)

	if err := s.appRepo.Update(ctx, db, app, readStatus); err != nil {
		return nil, applicationWriteError(ctx, db, s.appRepo, id, err, apperrors.ErrTerminalApplication)
	}
	logger.CtxInfo(ctx, "Application updated", "application_id", app.ID, "status", app.Status)
	return app, nil
}

func (s *applicationService) DeleteApplication(ctx context.Context, db *gorm.DB, actorID, id string) error {
	app, err := s.appRepo.FindByID(ctx, db, id)
	if err != nil {
		return mapApplicationError(err)
	}
	readStatus := app.Status
	app.MarkDeleted(actorID, s.now())
	if err := s.appRepo.Update(ctx, db, app, readStatus); err != nil {
		return applicationWriteError(ctx, db, s.appRepo, id, err, apperrors.ErrApplicationModified)
	}
	logger.CtxInfo(ctx, "Application soft-deleted", "application_id", id)
	return nil
}

func (s *applicationService) RestoreApplication(ctx context.Context, db *gorm.DB, actorID, id string) (*models.Application, error) {
	app, err := s.appRepo.FindByIDIncludingDeleted(ctx, db, id)
	if err != nil {
		return nil, mapApplicationError(err)
	}
	if !app.IsDeleted {
		return app, nil
	}

	if _, err := s.appRepo.FindActiveByCandidateAndJob(ctx, db, app.CandidateProfileID, app.JobPositionID); err == nil {
		return nil, apperrors.ErrDuplicateApplication
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, storeError(err)
	}

	app.Restore(actorID)
	if err := s.appRepo.Update(ctx, db, app, app.Status); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateApplication.WithError(err)
		}
		return nil, applicationWriteError(ctx, db, s.appRepo, id, err, apperrors.ErrApplicationModified)
	}
	logger.CtxInfo(ctx, "Application restored", "application_id", id)
	return app, nil
}

// UploadResume сохраняет файл резюме и возвращает ключ для resumePath
func (s *applicationService) UploadResume(ctx context.Context, fileName string, size int64, content io.Reader) (*dto.ResumeUploadResponse, error) {
	if s.storage == nil {
		return nil, apperrors.New(apperrors.CodeInvalidOperation, "application", "Resume storage is not configured", http.StatusServiceUnavailable)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	contentType, ok := allowedResumeExtensions[ext]
	if !ok {
		return nil, apperrors.NewBadRequestError("Unsupported resume format: allowed .pdf, .docx, .txt, .md")
	}
	if size <= 0 {
		return nil, apperrors.NewBadRequestError("Resume file is empty")
	}
	if s.maxResumeSize > 0 && size > s.maxResumeSize {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Resume file exceeds %d bytes", s.maxResumeSize))
	}

	key := fmt.Sprintf("resumes/%s/%s%s", s.now().Format("2006/01"), uuid.NewString(), ext)
	if err := s.storage.Save(ctx, key, content, contentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "storage", "Failed to store resume", http.StatusInternalServerError)
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to resolve resume URL", "key", key, "error", err)
	}

	logger.CtxInfo(ctx, "Resume uploaded", "key", key, "size", size)
	return &dto.ResumeUploadResponse{
		ResumePath:  key,
		URL:         url,
		FileName:    filepath.Base(fileName),
		Size:        size,
		ContentType: contentType,
	}, nil
}

// applicationWriteError переводит ошибку условной записи заявки. Если статус успели
// поменять, заявка перечитывается: для терминального статуса возвращается onTerminal.
func applicationWriteError(ctx context.Context, db *gorm.DB, repo repositories.ApplicationRepository, id string, err error, onTerminal *apperrors.AppError) error {
	if !errors.Is(err, repositories.ErrApplicationStatusChanged) {
		return storeError(err)
	}
	current, findErr := repo.FindByIDIncludingDeleted(ctx, db, id)
	if findErr != nil {
		return mapApplicationError(findErr)
	}
	if current.Status.IsTerminal() {
		return onTerminal.WithDetails(map[string]string{"status": string(current.Status)})
	}
	return apperrors.ErrApplicationModified.WithDetails(map[string]string{"status": string(current.Status)})
}

func mapApplicationError(err error) error {
	if errors.Is(err, repositories.ErrApplicationNotFound) {
		return apperrors.ErrApplicationNotFound
	}
	return storeError(err)
}
