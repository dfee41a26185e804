package repositories

import (
	"context"
	"testing"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestApplicationUpdate_GuardedByReadStatus(t *testing.T) {
	db := dryRunDB(t)
	var sql string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_sql", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
	}))

	app := &models.Application{
		Status:           models.ApplicationStatusInterviewScheduled,
		MatchScore:       88,
		ExtractedSummary: "stale summary",
	}
	app.ID = "3f1c8a52-2c1e-4a55-9d0e-0c3f8c7b1a10"

	// dry run ничего не обновляет, поэтому запись считается проигравшей гонку
	err := NewApplicationRepository().Update(context.Background(), db, app, models.ApplicationStatusApplied)
	assert.ErrorIs(t, err, ErrApplicationStatusChanged)

	assert.Contains(t, sql, `UPDATE "applications" SET`)
	assert.Contains(t, sql, "id = $")
	assert.Contains(t, sql, "AND status = $")
	assert.Contains(t, sql, `"status"=`)
	assert.Contains(t, sql, `"is_deleted"=`)
	assert.NotContains(t, sql, "match_score")
	assert.NotContains(t, sql, "extracted_")
	assert.NotContains(t, sql, "candidate_profile_id")
}

func TestApplicationChanges_Columns(t *testing.T) {
	changes := ApplicationChanges(&models.Application{Status: models.ApplicationStatusHired})
	assert.Equal(t, models.ApplicationStatusHired, changes["status"])
	for _, col := range []string{"match_score", "extracted_skills", "extracted_summary", "resume_analysis_date", "applied_date", "job_position_id"} {
		assert.NotContains(t, changes, col)
	}
}
