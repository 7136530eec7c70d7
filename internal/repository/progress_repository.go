package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// ProgressRepository handles autosave snapshot persistence.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Upsert merges a snapshot into the stored row for one (user, test type)
// pair. Merging lets partial snapshots (single autosaved answers) accumulate
// instead of clobbering the rest.
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.TestProgress) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_progress (user_id, test_type, responses, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, test_type)
		 DO UPDATE SET responses = test_progress.responses || EXCLUDED.responses, updated_at = NOW()`,
		p.UserID, p.TestType, p.Responses,
	)
	return err
}

// BulkUpsert flushes a batch of snapshots. Entries may be partial (a single
// autosaved answer) or full snapshots; they are merged key-by-key in batch
// order, and merged again with the stored row so answers accumulate.
func (r *ProgressRepository) BulkUpsert(ctx context.Context, batch []model.TestProgress) error {
	if len(batch) == 0 {
		return nil
	}

	// Merge within the batch first; an UNNEST upsert rejects the same
	// conflict target twice in one statement.
	type key struct {
		userID   int
		testType scoring.TestType
	}
	merged := make(map[key]map[string]json.RawMessage, len(batch))
	order := make([]key, 0, len(batch))
	for _, p := range batch {
		k := key{p.UserID, p.TestType}
		if _, ok := merged[k]; !ok {
			merged[k] = make(map[string]json.RawMessage)
			order = append(order, k)
		}
		var partial map[string]json.RawMessage
		if err := json.Unmarshal(p.Responses, &partial); err != nil {
			continue
		}
		for qid, ans := range partial {
			merged[k][qid] = ans
		}
	}

	userIDs := make([]int, 0, len(order))
	testTypes := make([]string, 0, len(order))
	responses := make([][]byte, 0, len(order))
	for _, k := range order {
		raw, err := json.Marshal(merged[k])
		if err != nil {
			return fmt.Errorf("marshal merged snapshot: %w", err)
		}
		userIDs = append(userIDs, k.userID)
		testTypes = append(testTypes, string(k.testType))
		responses = append(responses, raw)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_progress (user_id, test_type, responses, updated_at)
		 SELECT u, t, r, NOW() FROM UNNEST($1::int[], $2::text[], $3::jsonb[]) AS x(u, t, r)
		 ON CONFLICT (user_id, test_type)
		 DO UPDATE SET responses = test_progress.responses || EXCLUDED.responses, updated_at = NOW()`,
		userIDs, testTypes, responses,
	)
	return err
}

// Get retrieves the saved snapshot for a user and test type.
func (r *ProgressRepository) Get(ctx context.Context, userID int, t scoring.TestType) (*model.TestProgress, error) {
	p := &model.TestProgress{UserID: userID, TestType: t}
	err := r.pool.QueryRow(ctx,
		`SELECT responses, updated_at FROM test_progress WHERE user_id = $1 AND test_type = $2`,
		userID, t,
	).Scan(&p.Responses, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the snapshot after a successful submission.
func (r *ProgressRepository) Delete(ctx context.Context, userID int, t scoring.TestType) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM test_progress WHERE user_id = $1 AND test_type = $2`, userID, t,
	)
	return err
}
