package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey - сработал уникальный индекс (23505)
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrReferenced - на запись ссылаются другие строки (23503)
	ErrReferenced = errors.New("record is referenced by other records")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError приводит ошибки драйверов (pgx под gorm или lib/pq) к нашим sentinel-ошибкам
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}

	var code, constraint string
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code, constraint = pgErr.Code, pgErr.ConstraintName
	case errors.As(err, &pqErr):
		code, constraint = string(pqErr.Code), pqErr.Constraint
	default:
		return err
	}

	switch code {
	case pgUniqueViolation:
		return &ConstraintError{Constraint: constraint, err: ErrDuplicateKey, cause: err}
	case pgForeignKeyViolation:
		return &ConstraintError{Constraint: constraint, err: ErrReferenced, cause: err}
	}
	return err
}

// ConstraintError несет имя нарушенного ограничения, чтобы сервис мог различить email и phone
type ConstraintError struct {
	Constraint string
	err        error
	cause      error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v (constraint %s): %v", e.err, e.Constraint, e.cause)
}

func (e *ConstraintError) Unwrap() error {
	return e.err
}

// ConstraintName возвращает имя ограничения, если оно известно
func ConstraintName(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// notDeleted - явный фильтр мягкого удаления; применяется каждым методом чтения по умолчанию
func notDeleted(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}

// PageQuery - параметры пагинации и сортировки списка
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalize подставляет значения по умолчанию
func (p PageQuery) Normalize() PageQuery {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if !strings.EqualFold(p.SortOrder, "asc") {
		p.SortOrder = "desc"
	} else {
		p.SortOrder = "asc"
	}
	return p
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// paginate - сортировка по белому списку (sortBy -> колонка) + limit/offset.
// Вторичная сортировка по id делает порядок детерминированным.
func paginate(p PageQuery, table string, sortable map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := sortable[p.SortBy]
		if !ok {
			column = "created_at"
		}
		return db.
			Order(fmt.Sprintf("%s.%s %s", table, column, p.SortOrder)).
			Order(table + ".id ASC").
			Limit(p.Limit).
			Offset(p.Offset())
	}
}
