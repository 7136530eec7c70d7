package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains the persist queue and writes graded submissions to
// PostgreSQL in batches, then flips the matching per-test status columns.
type ResultWorker struct {
	responseRepo *repository.ResponseRepository
	userRepo     *repository.UserRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewResultWorker creates a new ResultWorker.
func NewResultWorker(
	responseRepo *repository.ResponseRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ResultWorker {
	return &ResultWorker{
		responseRepo: responseRepo,
		userRepo:     userRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "result_worker").Logger(),
	}
}

// Start runs the worker loop until the context is cancelled. A partial batch
// is flushed on shutdown.
func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]model.TestResponse, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var record model.TestResponse
			if err := json.Unmarshal([]byte(item[1]), &record); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, record)
		}
	}
}

// flushSafe persists a batch, falling back to row-by-row persistence with
// requeue on failure so no submission is lost.
func (w *ResultWorker) flushSafe(ctx context.Context, batch []model.TestResponse) {
	if len(batch) == 0 {
		return
	}

	if err := w.persistBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk persist failed, using fallback")

		for i := range batch {
			if err := w.persistSingle(ctx, &batch[i]); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(&batch[i])
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
	}
}

// persistBatch writes the batch in one statement, then updates the status
// column for each test type present.
func (w *ResultWorker) persistBatch(ctx context.Context, batch []model.TestResponse) error {
	if err := w.responseRepo.BulkInsert(ctx, batch); err != nil {
		return err
	}

	byType := make(map[scoring.TestType][]int)
	for _, record := range batch {
		byType[record.TestType] = append(byType[record.TestType], record.UserID)
	}

	for t, userIDs := range byType {
		if err := w.userRepo.BulkSetTestStatus(ctx, userIDs, t, model.TestStatusCompleted); err != nil {
			return err
		}
	}

	w.log.Info().Int("count", len(batch)).Msg("submissions persisted")
	return nil
}

func (w *ResultWorker) persistSingle(ctx context.Context, record *model.TestResponse) error {
	if err := w.responseRepo.Insert(ctx, record); err != nil {
		return err
	}
	return w.userRepo.SetTestStatus(ctx, record.UserID, record.TestType, model.TestStatusCompleted)
}
