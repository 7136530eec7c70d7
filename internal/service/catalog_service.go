package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/config"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// questionCacheTTL bounds how stale a cached question payload can get after
// a dataset file is replaced on disk.
const questionCacheTTL = time.Hour

// CatalogQuestion is a question as delivered to candidates: identifiers and
// text only, with all correctness and attribute metadata stripped.
type CatalogQuestion struct {
	ID      string          `json:"id"`
	Number  string          `json:"questionNumber,omitempty"`
	Text    string          `json:"question"`
	Options []CatalogOption `json:"options,omitempty"`
}

// CatalogOption is an answer choice with its scoring metadata stripped.
type CatalogOption struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// CatalogService builds and caches the question payloads served to
// candidates. Answer keys live in the same dataset files the grading engine
// reads, so every payload is sanitized before it leaves this service.
type CatalogService struct {
	loader *scoring.Loader
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(loader *scoring.Loader, rdb *redis.Client, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		loader: loader,
		rdb:    rdb,
		log:    log.With().Str("component", "catalog_service").Logger(),
	}
}

// GetQuestions returns the cached sanitized question payload for a test
// type, building and caching it on a miss.
func (s *CatalogService) GetQuestions(ctx context.Context, t scoring.TestType) (json.RawMessage, error) {
	cacheKey := config.CacheKey.QuestionSetKey(string(t))

	cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Str("test_type", string(t)).Msg("question cache read failed, falling back to disk")
	}

	payload, err := s.buildPayload(t)
	if err != nil {
		return nil, err
	}

	if err := s.rdb.Set(ctx, cacheKey, []byte(payload), questionCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("test_type", string(t)).Msg("question cache write failed")
	}
	return payload, nil
}

// buildPayload reads a dataset from disk and produces the client-facing
// payload. GATB part 7 is a shape-matching exercise whose dataset carries no
// answer key, so its file is served verbatim; every other type is normalized
// and stripped.
func (s *CatalogService) buildPayload(t scoring.TestType) (json.RawMessage, error) {
	if t == scoring.TestGATBPart7 {
		return s.loader.RawFile(t)
	}

	questions, err := s.loader.Load(t)
	if err != nil {
		return nil, err
	}

	sanitized := make([]CatalogQuestion, 0, len(questions))
	for _, q := range questions {
		cq := CatalogQuestion{
			ID:     q.ID,
			Number: q.Number,
			Text:   q.Text,
		}
		for _, opt := range q.Options {
			cq.Options = append(cq.Options, CatalogOption{Label: opt.Label, Text: opt.Text})
		}
		sanitized = append(sanitized, cq)
	}

	payload, err := json.Marshal(sanitized)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	return payload, nil
}

// PrewarmAll builds and caches the payload for every test type that has a
// dataset on disk. Called at startup so first requests don't pay the disk
// read.
func (s *CatalogService) PrewarmAll(ctx context.Context) {
	for _, t := range scoring.AllTestTypes {
		payload, err := s.buildPayload(t)
		if err != nil {
			if errors.Is(err, scoring.ErrDataNotFound) || errors.Is(err, scoring.ErrUnsupportedTestType) {
				continue
			}
			s.log.Warn().Err(err).Str("test_type", string(t)).Msg("prewarm skipped")
			continue
		}
		cacheKey := config.CacheKey.QuestionSetKey(string(t))
		if err := s.rdb.Set(ctx, cacheKey, []byte(payload), questionCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("test_type", string(t)).Msg("prewarm cache write failed")
			continue
		}
		s.log.Info().Str("test_type", string(t)).Int("bytes", len(payload)).Msg("question payload cached")
	}
}

// Invalidate drops the cached payload for a test type. Used after a dataset
// file is replaced.
func (s *CatalogService) Invalidate(ctx context.Context, t scoring.TestType) error {
	return s.rdb.Del(ctx, config.CacheKey.QuestionSetKey(string(t))).Err()
}
