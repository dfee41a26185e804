package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/email"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"gorm.io/gorm"
)

const invitationTimeout = 30 * time.Second

type InterviewService interface {
	ScheduleInterview(ctx context.Context, db *gorm.DB, actorID string, req *dto.ScheduleInterviewRequest) (*models.Interview, error)
	GetInterview(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error)
	ListInterviews(ctx context.Context, db *gorm.DB, query *dto.InterviewListQuery) (*dto.PaginatedResponse[models.Interview], error)
	UpdateInterview(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateInterviewRequest) (*models.Interview, error)
	DeleteInterview(ctx context.Context, db *gorm.DB, actorID, id string) error
	RestoreInterview(ctx context.Context, db *gorm.DB, actorID, id string) (*models.Interview, error)
	HardDeleteInterview(ctx context.Context, db *gorm.DB, id string) error
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobPositionRepository
	mailer        email.Provider
	now           func() time.Time
	// sendAsync=false в тестах: приглашения отправляются синхронно
	sendAsync bool
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobPositionRepository,
	mailer email.Provider,
) InterviewService {
	if mailer == nil {
		mailer = email.NoopProvider{}
	}
	return &interviewService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		mailer:        mailer,
		now:           utcNow,
		sendAsync:     true,
	}
}

func (s *interviewService) ScheduleInterview(ctx context.Context, db *gorm.DB, actorID string, req *dto.ScheduleInterviewRequest) (*models.Interview, error) {
	app, err := s.appRepo.FindByID(ctx, db, req.ApplicationID)
	if err != nil {
		return nil, mapApplicationError(err)
	}
	job, err := s.jobRepo.FindByID(ctx, db, req.JobPositionID)
	if err != nil {
		return nil, mapJobPositionError(err)
	}
	if app.JobPositionID != job.ID {
		return nil, apperrors.ErrApplicationJobMismatch
	}
	if app.Status.IsTerminal() {
		return nil, apperrors.ErrApplicationNotSchedulable.WithDetails(map[string]string{"status": string(app.Status)})
	}
	if !app.Status.IsSchedulable() {
		return nil, apperrors.ErrApplicationNotSchedulable.WithDetails(map[string]string{"status": string(app.Status)})
	}

	interviewers, err := toInterviewers(req.Interviewers)
	if err != nil {
		return nil, err
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	interview := &models.Interview{
		ApplicationID: app.ID,
		JobPositionID: job.ID,
		Interviewers:  interviewers,
		ScheduledDate: req.ScheduledDate.UTC(),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Type:          models.InterviewType(req.Type),
		Location:      strings.TrimSpace(req.Location),
		Notes:         req.Notes,
		Status:        models.InterviewStatusScheduled,
	}
	interview.Created(actorID)

	readStatus := app.Status
	if err := ApplyTransition(app, models.ApplicationStatusInterviewScheduled, "", s.now()); err != nil {
		return nil, err
	}
	app.Touch(actorID)

	// статус заявки двигается только если его никто не поменял после чтения
	err = inTx(ctx, db, func(tx *gorm.DB) error {
		if err := s.appRepo.Update(ctx, tx, app, readStatus); err != nil {
			return applicationWriteError(ctx, tx, s.appRepo, app.ID, err, apperrors.ErrApplicationNotSchedulable)
		}
		if err := s.interviewRepo.Create(ctx, tx, interview); err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Interview scheduled",
		"interview_id", interview.ID,
		"application_id", app.ID,
		"scheduled_date", interview.ScheduledDate.Format("2006-01-02"),
	)

	s.dispatchInvitations(ctx, interview, app, job)
	return interview, nil
}

// dispatchInvitations - best-effort: ошибки доставки только логируются
func (s *interviewService) dispatchInvitations(ctx context.Context, interview *models.Interview, app *models.Application, job *models.JobPosition) {
	candidateName := ""
	if app.CandidateProfile != nil {
		candidateName = app.CandidateProfile.FullName()
	}

	send := func(ctx context.Context) {
		for _, iv := range interview.Interviewers {
			if iv.Email == "" {
				continue
			}
			err := s.mailer.SendTemplate(ctx, []string{iv.Email},
				fmt.Sprintf("Interview: %s - %s", candidateName, job.Title),
				email.TemplateInterviewInvitation,
				email.TemplateData{
					"InterviewerName": iv.Name,
					"CandidateName":   candidateName,
					"JobTitle":        job.Title,
					"Date":            interview.ScheduledDate.Format("2006-01-02"),
					"StartTime":       interview.StartTime,
					"EndTime":         interview.EndTime,
					"Type":            string(interview.Type),
					"Location":        interview.Location,
					"Notes":           interview.Notes,
				})
			if err != nil {
				logger.CtxWarn(ctx, "Failed to send interview invitation",
					"interview_id", interview.ID,
					"to", iv.Email,
					"error", err,
				)
			}
		}
	}

	if !s.sendAsync {
		send(ctx)
		return
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invitationTimeout)
		defer cancel()
		send(sendCtx)
	}()
}

func (s *interviewService) GetInterview(ctx context.Context, db *gorm.DB, id string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapInterviewError(err)
	}
	return interview, nil
}

func (s *interviewService) ListInterviews(ctx context.Context, db *gorm.DB, query *dto.InterviewListQuery) (*dto.PaginatedResponse[models.Interview], error) {
	page := toPageQuery(query.PaginationQuery)
	filter := repositories.InterviewFilter{
		ApplicationID: query.ApplicationID,
		JobPositionID: query.JobPositionID,
		Status:        models.InterviewStatus(query.Status),
		Type:          models.InterviewType(query.Type),
	}
	interviews, total, err := s.interviewRepo.List(ctx, db, filter, page)
	if err != nil {
		return nil, storeError(err)
	}
	return dto.NewPaginatedResponse(interviews, total, page.Page, page.Limit), nil
}

func (s *interviewService) UpdateInterview(ctx context.Context, db *gorm.DB, actorID, id string, req *dto.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, mapInterviewError(err)
	}

	if req.Interviewers != nil {
		interviewers, err := toInterviewers(*req.Interviewers)
		if err != nil {
			return nil, err
		}
		interview.Interviewers = interviewers
	}
	if req.ScheduledDate != nil {
		interview.ScheduledDate = req.ScheduledDate.UTC()
	}
	if req.StartTime != nil {
		interview.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		interview.EndTime = *req.EndTime
	}
	if req.StartTime != nil || req.EndTime != nil {
		if err := validateTimeRange(interview.StartTime, interview.EndTime); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		interview.Type = models.InterviewType(*req.Type)
	}
	if req.Location != nil {
		interview.Location = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		interview.Notes = *req.Notes
	}
	if req.OverallFeedback != nil {
		interview.OverallFeedback = *req.OverallFeedback
	}
	if req.OverallRating != nil {
		if *req.OverallRating < 1 || *req.OverallRating > 5 {
			return nil, apperrors.ValidationError(map[string]string{"overallRating": "must be between 1 and 5"})
		}
		interview.OverallRating = req.OverallRating
	}
	if req.Status != nil {
		status := models.InterviewStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.ErrInvalidStatus("interview", "Unknown interview status: "+*req.Status)
		}
		interview.Status = status
	}
	interview.Touch(actorID)

	if err := s.interviewRepo.Update(ctx, db, interview); err != nil {
		return nil, storeError(err)
	}
	return interview, nil
}

func (s *interviewService) DeleteInterview(ctx context.Context, db *gorm.DB, actorID, id string) error {
	interview, err := s.interviewRepo.FindByID(ctx, db, id)
	if err != nil {
		return mapInterviewError(err)
	}
	interview.MarkDeleted(actorID, s.now())
	interview.Status = models.InterviewStatusCancelled
	if err := s.interviewRepo.Update(ctx, db, interview); err != nil {
		return storeError(err)
	}
	logger.CtxInfo(ctx, "Interview cancelled", "interview_id", id)
	return nil
}

func (s *interviewService) RestoreInterview(ctx context.Context, db *gorm.DB, actorID, id string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDIncludingDeleted(ctx, db, id)
	if err != nil {
		return nil, mapInterviewError(err)
	}
	if !interview.IsDeleted {
		return interview, nil
	}
	interview.Restore(actorID)
	interview.Status = models.InterviewStatusScheduled
	if err := s.interviewRepo.Update(ctx, db, interview); err != nil {
		return nil, storeError(err)
	}
	logger.CtxInfo(ctx, "Interview restored", "interview_id", id)
	return interview, nil
}

func (s *interviewService) HardDeleteInterview(ctx context.Context, db *gorm.DB, id string) error {
	if err := s.interviewRepo.HardDelete(ctx, db, id); err != nil {
		return mapInterviewError(err)
	}
	logger.CtxWarn(ctx, "Interview permanently deleted", "interview_id", id)
	return nil
}

func toInterviewers(in []dto.InterviewerInput) ([]models.Interviewer, error) {
	if len(in) == 0 {
		return nil, apperrors.ErrNoInterviewers
	}
	out := make([]models.Interviewer, 0, len(in))
	for i, iv := range in {
		if strings.TrimSpace(iv.UserID) == "" {
			return nil, apperrors.ValidationError(map[string]string{
				fmt.Sprintf("interviewers[%d].userId", i): "is required",
			})
		}
		if iv.Rating != nil && (*iv.Rating < 1 || *iv.Rating > 5) {
			return nil, apperrors.ValidationError(map[string]string{
				fmt.Sprintf("interviewers[%d].rating", i): "must be between 1 and 5",
			})
		}
		out = append(out, models.Interviewer{
			UserID:   strings.TrimSpace(iv.UserID),
			Name:     strings.TrimSpace(iv.Name),
			Email:    strings.TrimSpace(iv.Email),
			Role:     iv.Role,
			Feedback: iv.Feedback,
			Rating:   iv.Rating,
		})
	}
	return out, nil
}

// validateTimeRange - HH:MM, конец строго позже начала
func validateTimeRange(start, end string) error {
	startMin, err := ParseClock(start)
	if err != nil {
		return apperrors.ErrInvalidInterviewTime.WithError(err)
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return apperrors.ErrInvalidInterviewTime.WithError(err)
	}
	if endMin <= startMin {
		return apperrors.ErrInvalidInterviewTime
	}
	return nil
}

// ParseClock разбирает "HH:MM" в минуты от полуночи
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}
	return h*60 + m, nil
}

func mapInterviewError(err error) error {
	if errors.Is(err, repositories.ErrInterviewNotFound) {
		return apperrors.ErrInterviewNotFound
	}
	return storeError(err)
}
