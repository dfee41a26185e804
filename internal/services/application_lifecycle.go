package services

import (
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"
)

// ApplyTransition переводит заявку в статус target.
//
// Граф: любой нетерминальный статус может перейти в любой другой (правка рекрутера),
// HIRED и REJECTED терминальны. SCREENING сохраняется как SCREENED.
// Повторная установка текущего статуса ничего не меняет и не считается переходом.
func ApplyTransition(app *models.Application, target models.ApplicationStatus, rejectionReason string, now time.Time) error {
	if !target.IsValid() {
		return apperrors.ErrInvalidStatus("application", "Unknown application status: "+string(target))
	}
	target = target.Canonical()
	current := app.Status.Canonical()

	if current == target {
		app.Status = current
		return nil
	}
	if current.IsTerminal() {
		return apperrors.ErrTerminalApplication.WithDetails(map[string]string{
			"from": string(current),
			"to":   string(target),
		})
	}

	reason := strings.TrimSpace(rejectionReason)
	if target == models.ApplicationStatusRejected && reason == "" {
		return apperrors.ErrRejectionReasonRequired
	}

	switch target {
	case models.ApplicationStatusScreened:
		app.ScreeningDate = &now
	case models.ApplicationStatusInterviewScheduled:
		app.InterviewDate = &now
	case models.ApplicationStatusHired:
		app.HireDate = &now
	case models.ApplicationStatusRejected:
		app.RejectionDate = &now
		app.RejectionReason = reason
	}
	app.Status = target
	return nil
}
