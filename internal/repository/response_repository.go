package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
)

// ResponseRepository handles persistence of graded test submissions.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository creates a new ResponseRepository.
func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// Insert stores a single submission.
func (r *ResponseRepository) Insert(ctx context.Context, tr *model.TestResponse) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_responses (id, user_id, test_type, responses, score, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		tr.ID, tr.UserID, tr.TestType, tr.Responses, tr.Score, tr.CompletedAt,
	)
	return err
}

// BulkInsert stores a batch of submissions in a single statement. Used by the
// result worker to flush its queue.
func (r *ResponseRepository) BulkInsert(ctx context.Context, batch []model.TestResponse) error {
	if len(batch) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(batch))
	userIDs := make([]int, len(batch))
	testTypes := make([]string, len(batch))
	responses := make([][]byte, len(batch))
	scores := make([][]byte, len(batch))
	completedAts := make([]time.Time, len(batch))

	for i, tr := range batch {
		ids[i] = tr.ID
		userIDs[i] = tr.UserID
		testTypes[i] = string(tr.TestType)
		responses[i] = tr.Responses
		if tr.Score == nil {
			scores[i] = []byte("null")
		} else {
			scores[i] = tr.Score
		}
		completedAts[i] = tr.CompletedAt
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_responses (id, user_id, test_type, responses, score, completed_at)
		 SELECT * FROM UNNEST($1::uuid[], $2::int[], $3::text[], $4::jsonb[], $5::jsonb[], $6::timestamptz[])
		 ON CONFLICT (id) DO NOTHING`,
		ids, userIDs, testTypes, responses, scores, completedAts,
	)
	return err
}

// GetByID retrieves a submission together with the submitting user's name
// and email.
func (r *ResponseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TestResponse, error) {
	tr := &model.TestResponse{}
	err := r.pool.QueryRow(ctx,
		`SELECT tr.id, tr.user_id, u.name, u.email, tr.test_type, tr.responses, COALESCE(tr.score, 'null'::jsonb), tr.completed_at
		 FROM test_responses tr
		 JOIN users u ON u.id = tr.user_id
		 WHERE tr.id = $1`, id,
	).Scan(&tr.ID, &tr.UserID, &tr.UserName, &tr.UserEmail, &tr.TestType, &tr.Responses, &tr.Score, &tr.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// ListByUser retrieves every submission for one user, newest first.
func (r *ResponseRepository) ListByUser(ctx context.Context, userID int) ([]model.TestResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, test_type, responses, COALESCE(score, 'null'::jsonb), completed_at
		 FROM test_responses
		 WHERE user_id = $1
		 ORDER BY completed_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TestResponse
	for rows.Next() {
		var tr model.TestResponse
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.TestType, &tr.Responses, &tr.Score, &tr.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, tr)
	}
	return results, rows.Err()
}

// List retrieves recent submissions across all users with pagination,
// optionally filtered by test type.
func (r *ResponseRepository) List(ctx context.Context, testType string, page, limit int) ([]model.TestResponse, int, error) {
	offset := (page - 1) * limit

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_responses WHERE ($1 = '' OR test_type = $1)`, testType,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT tr.id, tr.user_id, u.name, u.email, tr.test_type, tr.responses, COALESCE(tr.score, 'null'::jsonb), tr.completed_at
		 FROM test_responses tr
		 JOIN users u ON u.id = tr.user_id
		 WHERE ($1 = '' OR tr.test_type = $1)
		 ORDER BY tr.completed_at DESC
		 LIMIT $2 OFFSET $3`, testType, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.TestResponse
	for rows.Next() {
		var tr model.TestResponse
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.UserName, &tr.UserEmail, &tr.TestType, &tr.Responses, &tr.Score, &tr.CompletedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, tr)
	}
	return results, total, rows.Err()
}
