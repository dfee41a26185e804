package services

import (
	"context"
	"strings"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/repositories"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services/dto"
	"github.com/ayanadankhan/wellYou-be-new-sub001/pkg/apperrors"

	"gorm.io/gorm"
)

func toPageQuery(q dto.PaginationQuery) repositories.PageQuery {
	return repositories.PageQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}.Normalize()
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// storeError оборачивает неклассифицированную ошибку хранилища
func storeError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}

// inTx выполняет fn в транзакции; без БД (тесты сервисов на in-memory репозиториях) вызывает fn напрямую
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
