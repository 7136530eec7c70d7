package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
)

// InvitationRepository handles invitation data access.
type InvitationRepository struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository creates a new InvitationRepository.
func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepository {
	return &InvitationRepository{pool: pool}
}

// Create records an invitation and returns its ID.
func (r *InvitationRepository) Create(ctx context.Context, inv *model.Invitation) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invitations (email, name, message, invited_by, delivered)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		inv.Email, inv.Name, inv.Message, inv.InvitedBy, inv.Delivered,
	).Scan(&id)
	return id, err
}

// MarkDelivered flags an invitation as successfully emailed.
func (r *InvitationRepository) MarkDelivered(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `UPDATE invitations SET delivered = TRUE WHERE id = $1`, id)
	return err
}

// List retrieves invitations newest first with pagination.
func (r *InvitationRepository) List(ctx context.Context, page, limit int) ([]model.Invitation, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invitations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email, COALESCE(name, ''), COALESCE(message, ''), invited_by, delivered, created_at
		 FROM invitations
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invitations []model.Invitation
	for rows.Next() {
		var inv model.Invitation
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Name, &inv.Message, &inv.InvitedBy, &inv.Delivered, &inv.CreatedAt); err != nil {
			return nil, 0, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, total, rows.Err()
}
