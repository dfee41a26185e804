package services

import (
	"testing"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransition_StampsDates(t *testing.T) {
	cases := []struct {
		target models.ApplicationStatus
		stamp  func(a *models.Application) bool
	}{
		{models.ApplicationStatusScreened, func(a *models.Application) bool { return a.ScreeningDate != nil }},
		{models.ApplicationStatusScreening, func(a *models.Application) bool { return a.ScreeningDate != nil }},
		{models.ApplicationStatusInterviewScheduled, func(a *models.Application) bool { return a.InterviewDate != nil }},
		{models.ApplicationStatusHired, func(a *models.Application) bool { return a.HireDate != nil }},
		{models.ApplicationStatusProceedToNextRound, func(a *models.Application) bool { return true }},
	}
	for _, tc := range cases {
		t.Run(string(tc.target), func(t *testing.T) {
			app := &models.Application{Status: models.ApplicationStatusApplied}
			require.NoError(t, ApplyTransition(app, tc.target, "", testNow))
			assert.Equal(t, tc.target.Canonical(), app.Status)
			assert.True(t, tc.stamp(app))
		})
	}
}

func TestApplyTransition_ScreeningStoredAsScreened(t *testing.T) {
	app := &models.Application{Status: models.ApplicationStatusApplied}
	require.NoError(t, ApplyTransition(app, models.ApplicationStatusScreening, "", testNow))
	assert.Equal(t, models.ApplicationStatusScreened, app.Status)

	// SCREENING -> SCREENED не переход
	stamp := *app.ScreeningDate
	require.NoError(t, ApplyTransition(app, models.ApplicationStatusScreened, "", testNow.Add(1)))
	assert.Equal(t, stamp, *app.ScreeningDate)
}

func TestApplyTransition_RejectRequiresReason(t *testing.T) {
	app := &models.Application{Status: models.ApplicationStatusScreened}

	err := ApplyTransition(app, models.ApplicationStatusRejected, "   ", testNow)
	assert.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)
	assert.Equal(t, models.ApplicationStatusScreened, app.Status)
	assert.Nil(t, app.RejectionDate)

	require.NoError(t, ApplyTransition(app, models.ApplicationStatusRejected, " Salary mismatch ", testNow))
	assert.Equal(t, "Salary mismatch", app.RejectionReason)
	require.NotNil(t, app.RejectionDate)
	assert.Equal(t, testNow, *app.RejectionDate)
}

func TestApplyTransition_TerminalStatesAreSinks(t *testing.T) {
	for _, terminal := range []models.ApplicationStatus{models.ApplicationStatusHired, models.ApplicationStatusRejected} {
		app := &models.Application{Status: terminal, RejectionReason: "x"}
		for _, target := range []models.ApplicationStatus{
			models.ApplicationStatusApplied,
			models.ApplicationStatusScreened,
			models.ApplicationStatusInterviewScheduled,
			models.ApplicationStatusProceedToNextRound,
		} {
			err := ApplyTransition(app, target, "reason", testNow)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStateTransition), "%s -> %s", terminal, target)
			assert.Equal(t, terminal, app.Status)
		}
		// повтор терминального статуса - no-op
		assert.NoError(t, ApplyTransition(app, terminal, "reason", testNow))
	}
}

func TestApplyTransition_UnknownStatus(t *testing.T) {
	app := &models.Application{Status: models.ApplicationStatusApplied}
	err := ApplyTransition(app, "ONBOARDED", "", testNow)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidStatus))
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
}

func TestApplyTransition_BackwardsAllowedBeforeTerminal(t *testing.T) {
	app := &models.Application{Status: models.ApplicationStatusProceedToNextRound}
	require.NoError(t, ApplyTransition(app, models.ApplicationStatusInterviewScheduled, "", testNow))
	assert.Equal(t, models.ApplicationStatusInterviewScheduled, app.Status)
}
