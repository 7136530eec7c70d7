package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
)

// ContactRepository handles contact message data access.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Create stores a contact form submission and returns its ID.
func (r *ContactRepository) Create(ctx context.Context, msg *model.ContactMessage) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	).Scan(&id)
	return id, err
}

// List retrieves contact messages newest first with pagination.
func (r *ContactRepository) List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, COALESCE(subject, ''), message, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var msg model.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, 0, err
		}
		messages = append(messages, msg)
	}
	return messages, total, rows.Err()
}

// Delete removes a contact message.
func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	return err
}
