package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardStats aggregates headline counts for the admin dashboard.
type DashboardStats struct {
	TotalCandidates   int            `json:"total_candidates"`
	TotalSubmissions  int            `json:"total_submissions"`
	SubmissionsToday  int            `json:"submissions_today"`
	InvitationsSent   int            `json:"invitations_sent"`
	ContactMessages   int            `json:"contact_messages"`
	SubmissionsByType map[string]int `json:"submissions_by_type"`
}

// DashboardRepository aggregates counts across the core tables.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Stats computes the dashboard counters in a single round of queries.
func (r *DashboardRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{SubmissionsByType: make(map[string]int)}

	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM test_responses),
			(SELECT COUNT(*) FROM test_responses WHERE completed_at >= CURRENT_DATE),
			(SELECT COUNT(*) FROM invitations),
			(SELECT COUNT(*) FROM contact_messages)`,
	).Scan(
		&stats.TotalCandidates,
		&stats.TotalSubmissions,
		&stats.SubmissionsToday,
		&stats.InvitationsSent,
		&stats.ContactMessages,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT test_type, COUNT(*) FROM test_responses GROUP BY test_type`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var testType string
		var count int
		if err := rows.Scan(&testType, &count); err != nil {
			return nil, err
		}
		stats.SubmissionsByType[testType] = count
	}
	return stats, rows.Err()
}
