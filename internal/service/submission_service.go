package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Submission errors mapped to API error codes by the handlers.
var (
	ErrUnknownTestType   = errors.New("unknown test type")
	ErrTestNotAssigned   = errors.New("test not assigned to candidate")
	ErrTestAlreadyDone   = errors.New("test already completed")
	ErrResponsesRequired = errors.New("responses are required")
)

// SubmissionService grades incoming submissions and hands them to the
// result worker queue. Grading is synchronous so the candidate gets their
// score in the submit response; persistence is asynchronous.
type SubmissionService struct {
	engine       *scoring.Engine
	userRepo     *repository.UserRepository
	responseRepo *repository.ResponseRepository
	progressRepo *repository.ProgressRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	engine *scoring.Engine,
	userRepo *repository.UserRepository,
	responseRepo *repository.ResponseRepository,
	progressRepo *repository.ProgressRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		engine:       engine,
		userRepo:     userRepo,
		responseRepo: responseRepo,
		progressRepo: progressRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "submission_service").Logger(),
	}
}

// SubmitResult is what the candidate gets back from a submission: the stored
// record's ID plus the score object, which is null for unscored test types.
type SubmitResult struct {
	ID       uuid.UUID        `json:"id"`
	TestType scoring.TestType `json:"testType"`
	Score    any              `json:"score"`
}

// Submit validates, grades, and enqueues one test submission.
func (s *SubmissionService) Submit(ctx context.Context, user *model.User, req *model.SubmitTestRequest) (*SubmitResult, error) {
	t := scoring.TestType(req.TestType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTestType, req.TestType)
	}
	if !user.Access.Allows(t) {
		return nil, ErrTestNotAssigned
	}
	if user.Statuses[t] == model.TestStatusCompleted {
		return nil, ErrTestAlreadyDone
	}

	var (
		score     any
		responses json.RawMessage
		err       error
	)

	switch {
	case t == scoring.TestGATBPart7:
		// Shape matching has no answer key: the client's match list is
		// recorded as reported.
		score = scoring.Part7Record{
			TotalQuestions: len(req.Matches),
			Matched:        len(req.Matches),
			Part:           req.Part,
		}
		responses, err = json.Marshal(map[string]any{
			"matches": req.Matches,
			"part":    req.Part,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal matches: %w", err)
		}

	case scoring.Scored(t):
		if len(req.Responses) == 0 {
			return nil, ErrResponsesRequired
		}
		score, err = s.engine.Grade(t, req.Responses)
		if err != nil {
			return nil, err
		}
		responses, err = json.Marshal(req.Responses)
		if err != nil {
			return nil, fmt.Errorf("marshal responses: %w", err)
		}

	default:
		// firo-b and personality-aspect store raw responses with no score.
		if len(req.Responses) == 0 {
			return nil, ErrResponsesRequired
		}
		responses, err = json.Marshal(req.Responses)
		if err != nil {
			return nil, fmt.Errorf("marshal responses: %w", err)
		}
	}

	record := model.TestResponse{
		ID:          uuid.New(),
		UserID:      user.ID,
		TestType:    t,
		Responses:   responses,
		CompletedAt: time.Now(),
	}
	if score != nil {
		record.Score, err = json.Marshal(score)
		if err != nil {
			return nil, fmt.Errorf("marshal score: %w", err)
		}
	}

	if err := s.enqueue(ctx, &record); err != nil {
		// Queue down: persist inline so the submission is never lost.
		s.log.Warn().Err(err).Msg("result queue unavailable, persisting inline")
		if err := s.responseRepo.Insert(ctx, &record); err != nil {
			return nil, fmt.Errorf("persist submission: %w", err)
		}
	}

	// The status flips synchronously so an immediate resubmission is
	// rejected; the result worker's bulk update is an idempotent repeat.
	if err := s.userRepo.SetTestStatus(ctx, user.ID, t, model.TestStatusCompleted); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	// The snapshot is stale the moment the submission lands.
	s.clearProgress(ctx, user.ID, t)

	s.log.Info().
		Int("user_id", user.ID).
		Str("test_type", string(t)).
		Str("submission_id", record.ID.String()).
		Msg("submission accepted")

	return &SubmitResult{ID: record.ID, TestType: t, Score: score}, nil
}

// enqueue pushes the record onto the persist queue consumed by the result
// worker.
func (s *SubmissionService) enqueue(ctx context.Context, record *model.TestResponse) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err()
}

func (s *SubmissionService) clearProgress(ctx context.Context, userID int, t scoring.TestType) {
	key := config.CacheKey.TestProgressKey(userID, string(t))
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("progress cache clear failed")
	}
	if err := s.progressRepo.Delete(ctx, userID, t); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("progress row clear failed")
	}
}

// ListResults retrieves a candidate's stored submissions.
func (s *SubmissionService) ListResults(ctx context.Context, userID int) ([]model.TestResponse, error) {
	results, err := s.responseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.TestResponse{}
	}
	return results, nil
}

// GetResult retrieves one submission with its submitting user attached.
func (s *SubmissionService) GetResult(ctx context.Context, id uuid.UUID) (*model.TestResponse, error) {
	return s.responseRepo.GetByID(ctx, id)
}

// ListAllResults retrieves recent submissions across candidates.
func (s *SubmissionService) ListAllResults(ctx context.Context, testType string, page, perPage int) ([]model.TestResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	results, total, err := s.responseRepo.List(ctx, testType, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	if results == nil {
		results = []model.TestResponse{}
	}
	return results, total, nil
}

// SaveProgress buffers an autosave snapshot in Redis and enqueues it for the
// progress worker to flush to PostgreSQL.
func (s *SubmissionService) SaveProgress(ctx context.Context, userID int, t scoring.TestType, responses scoring.Responses) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownTestType, t)
	}

	raw, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	key := config.CacheKey.TestProgressKey(userID, string(t))
	if err := s.rdb.Set(ctx, key, raw, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("buffer progress: %w", err)
	}

	job, err := json.Marshal(model.TestProgress{
		UserID:    userID,
		TestType:  t,
		Responses: raw,
	})
	if err != nil {
		return fmt.Errorf("marshal progress job: %w", err)
	}
	return s.rdb.RPush(ctx, config.WorkerKey.PersistProgressQueue, job).Err()
}

// GetProgress reads a candidate's saved snapshot, preferring the Redis
// buffer over the persisted row. A completed test has no resumable progress:
// a straggler autosave flushed after submission must never be served.
func (s *SubmissionService) GetProgress(ctx context.Context, user *model.User, t scoring.TestType) (json.RawMessage, error) {
	if user.Statuses[t] == model.TestStatusCompleted {
		return nil, repository.ErrNotFound
	}

	userID := user.ID
	key := config.CacheKey.TestProgressKey(userID, string(t))
	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("progress cache read failed")
	}

	p, err := s.progressRepo.Get(ctx, userID, t)
	if err != nil {
		return nil, err
	}
	return p.Responses, nil
}
