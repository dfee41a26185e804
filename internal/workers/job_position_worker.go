package workers

import (
	"context"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"
	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/services"

	"gorm.io/gorm"
)

const jobPositionWorkerName = "job_position_worker"

type JobPositionWorker struct {
	db       *gorm.DB
	service  services.JobPositionService
	interval time.Duration
}

func NewJobPositionWorker(db *gorm.DB, service services.JobPositionService, interval time.Duration) *JobPositionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobPositionWorker{db: db, service: service, interval: interval}
}

// Start запускает фоновые задачи по вакансиям
func (w *JobPositionWorker) Start(ctx context.Context) {
	// Автозакрытие вакансий с прошедшей closingDate
	go w.autoClosePositions(ctx)
}

func (w *JobPositionWorker) autoClosePositions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Job position worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce закрывает просроченные вакансии один раз
func (w *JobPositionWorker) RunOnce(ctx context.Context) int64 {
	closed, err := w.service.CloseExpiredPositions(ctx, w.db)
	logger.WorkerLog(jobPositionWorkerName, "close_expired", closed, err)
	return closed
}
