package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	pgx := &pgconn.PgError{Code: "23505", ConstraintName: CandidateEmailIndex}
	err := translateError(fmt.Errorf("insert: %w", pgx))
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, CandidateEmailIndex, ConstraintName(err))

	err = translateError(&pq.Error{Code: "23505", Constraint: ApplicationPairIndex})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, ApplicationPairIndex, ConstraintName(err))

	err = translateError(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, ErrReferenced)

	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicateKey)
	assert.Empty(t, ConstraintName(translateError(gorm.ErrDuplicatedKey)))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateError(plain))
	assert.NoError(t, translateError(nil))
}
