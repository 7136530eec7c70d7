package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ProgressBatchSize    = 100
	ProgressBatchTimeout = 3 * time.Second
	ProgressPollTimeout  = 1 * time.Second
)

// ProgressWorker drains autosave snapshots from the progress queue and
// flushes them to PostgreSQL. Snapshots are advisory: a lost snapshot costs
// the candidate a re-answer, not a submission, so failures are logged and
// dropped after one requeue-free retry batch.
type ProgressWorker struct {
	progressRepo *repository.ProgressRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewProgressWorker creates a new ProgressWorker.
func NewProgressWorker(progressRepo *repository.ProgressRepository, rdb *redis.Client, log zerolog.Logger) *ProgressWorker {
	return &ProgressWorker{
		progressRepo: progressRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "progress_worker").Logger(),
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *ProgressWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ProgressWorker started")

	batch := make([]model.TestProgress, 0, ProgressBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ProgressBatchSize || time.Since(lastFlush) >= ProgressBatchTimeout) {

			w.flush(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flush(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ProgressPollTimeout, config.WorkerKey.PersistProgressQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.TestProgress
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, p)
		}
	}
}

func (w *ProgressWorker) flush(ctx context.Context, batch []model.TestProgress) {
	if len(batch) == 0 {
		return
	}

	if err := w.progressRepo.BulkUpsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk upsert failed, using fallback")

		for i := range batch {
			if err := w.progressRepo.Upsert(ctx, &batch[i]); err != nil {
				w.log.Error().Err(err).
					Int("user_id", batch[i].UserID).
					Str("test_type", string(batch[i].TestType)).
					Msg("snapshot dropped")
			}
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("snapshots flushed")
}
