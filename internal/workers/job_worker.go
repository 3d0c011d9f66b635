package workers

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/repositories"

	"gorm.io/gorm"
)

// JobWorker периодически деактивирует вакансии с прошедшим дедлайном
// и удаляет истёкшие refresh-токены.
type JobWorker struct {
	db       *gorm.DB
	jobs     repositories.JobRepository
	tokens   repositories.RefreshTokenRepository
	interval time.Duration
}

func NewJobWorker(db *gorm.DB, jobs repositories.JobRepository, tokens repositories.RefreshTokenRepository, interval time.Duration) *JobWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &JobWorker{db: db, jobs: jobs, tokens: tokens, interval: interval}
}

// Start запускает фоновые задачи
func (w *JobWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *JobWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Job worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx, time.Now())
		}
	}
}

// RunOnce выполняет один проход. Возвращает число закрытых вакансий.
func (w *JobWorker) RunOnce(ctx context.Context, now time.Time) int64 {
	closed, err := w.jobs.DeactivateExpired(w.db.WithContext(ctx), now)
	logger.WorkerLog("job_worker", "close_expired_jobs", err)
	if err == nil && closed > 0 {
		logger.Info("Auto-closed expired jobs", "count", closed)
	}

	if w.tokens != nil {
		purged, err := w.tokens.DeleteExpired(w.db.WithContext(ctx), now)
		logger.WorkerLog("job_worker", "clean_refresh_tokens", err)
		if err == nil && purged > 0 {
			logger.Info("Expired refresh tokens removed", "count", purged)
		}
	}
	return closed
}
