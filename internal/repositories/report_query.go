package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Алиасы присоединяемых таблиц в отчетах
const (
	JobPositionsAlias = "jp"
	ApplicationsAlias = "app"
)

// ReportFilter - общий набор фильтров всех отчетов
type ReportFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	JobPositionID string
	Department    string
}

// Stage - один шаг построения отчетного запроса
type Stage interface {
	Name() string
	Apply(query *gorm.DB) *gorm.DB
}

type NotDeletedStage struct {
	Table string
}

func (s NotDeletedStage) Name() string { return "not_deleted:" + s.Table }

func (s NotDeletedStage) Apply(query *gorm.DB) *gorm.DB {
	return query.Where(s.Table + ".is_deleted = false")
}

// DateWindowStage - обе границы включительные
type DateWindowStage struct {
	Column string
	From   *time.Time
	To     *time.Time
}

func (s DateWindowStage) Name() string { return "date_window:" + s.Column }

func (s DateWindowStage) Apply(query *gorm.DB) *gorm.DB {
	if s.From != nil {
		query = query.Where(s.Column+" >= ?", *s.From)
	}
	if s.To != nil {
		query = query.Where(s.Column+" <= ?", *s.To)
	}
	return query
}

type EqualsStage struct {
	Column string
	Value  interface{}
}

func (s EqualsStage) Name() string { return "equals:" + s.Column }

func (s EqualsStage) Apply(query *gorm.DB) *gorm.DB {
	return query.Where(s.Column+" = ?", s.Value)
}

// JoinStage - INNER JOIN с отсечением удаленных строк присоединяемой таблицы
type JoinStage struct {
	Table      string
	Alias      string
	ForeignKey string
}

func (s JoinStage) Name() string { return "join:" + s.Alias }

func (s JoinStage) Apply(query *gorm.DB) *gorm.DB {
	return query.Joins(fmt.Sprintf(
		"JOIN %s %s ON %s.id = %s AND %s.is_deleted = false",
		s.Table, s.Alias, s.Alias, s.ForeignKey, s.Alias,
	))
}

// ReportQuery собирает типизированный список стадий до выполнения.
// Каждая стадия применяется по порядку к базовому запросу по Table.
type ReportQuery struct {
	table  string
	stages []Stage
	joined map[string]bool
}

func NewReportQuery(table string) *ReportQuery {
	return &ReportQuery{table: table, joined: map[string]bool{}}
}

func (q *ReportQuery) Table() string {
	return q.table
}

func (q *ReportQuery) add(stage Stage) *ReportQuery {
	q.stages = append(q.stages, stage)
	return q
}

func (q *ReportQuery) NotDeleted() *ReportQuery {
	return q.add(NotDeletedStage{Table: q.table})
}

// DateWindow не добавляет стадию, если обе границы пустые
func (q *ReportQuery) DateWindow(column string, from, to *time.Time) *ReportQuery {
	if from == nil && to == nil {
		return q
	}
	return q.add(DateWindowStage{Column: column, From: from, To: to})
}

// Equals не добавляет стадию для пустой строки
func (q *ReportQuery) Equals(column string, value interface{}) *ReportQuery {
	if s, ok := value.(string); ok && s == "" {
		return q
	}
	return q.add(EqualsStage{Column: column, Value: value})
}

// JoinJobPositions присоединяет job_positions как jp (один раз)
func (q *ReportQuery) JoinJobPositions(foreignKey string) *ReportQuery {
	return q.join(JoinStage{Table: "job_positions", Alias: JobPositionsAlias, ForeignKey: foreignKey})
}

// JoinApplications присоединяет applications как app (один раз)
func (q *ReportQuery) JoinApplications(foreignKey string) *ReportQuery {
	return q.join(JoinStage{Table: "applications", Alias: ApplicationsAlias, ForeignKey: foreignKey})
}

func (q *ReportQuery) join(stage JoinStage) *ReportQuery {
	if q.joined[stage.Alias] {
		return q
	}
	q.joined[stage.Alias] = true
	return q.add(stage)
}

// Department фильтрует по отделу вакансии; join с job_positions добавляется при необходимости
func (q *ReportQuery) Department(department, jobForeignKey string) *ReportQuery {
	if department == "" {
		return q
	}
	q.JoinJobPositions(jobForeignKey)
	return q.add(EqualsStage{Column: JobPositionsAlias + ".department", Value: department})
}

// Stages - имена стадий в порядке применения
func (q *ReportQuery) Stages() []string {
	names := make([]string, 0, len(q.stages))
	for _, s := range q.stages {
		names = append(names, s.Name())
	}
	return names
}

// Build применяет стадии к db.Table(table)
func (q *ReportQuery) Build(ctx context.Context, db *gorm.DB) *gorm.DB {
	query := db.WithContext(ctx).Table(q.table)
	for _, s := range q.stages {
		query = s.Apply(query)
	}
	return query
}
