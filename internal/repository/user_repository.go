package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// ErrDuplicateEmail is returned when an insert hits the users email unique
// constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = errors.New("not found")

const userColumns = `id, name, email, password_hash,
	COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(phone_no, ''), COALESCE(education, ''),
	email_verified, test_completed,
	enable_firo_b, enable_work_values, enable_general_aptitude,
	enable_interest_inventory, enable_personality_aspect, enable_behavior_response,
	firo_b_status, general_aptitude_status,
	gatb_part_2_status, gatb_part_3_status, gatb_part_4_status,
	gatb_part_5_status, gatb_part_6_status, gatb_part_7_status,
	work_values_status, interest_inventory_status,
	personality_aspect_status, behavior_response_status,
	created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, first_name, last_name, phone_no, education)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNo, u.Education,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// List returns candidates ordered by creation time, newest first, with an
// optional case-insensitive name/email search.
func (r *UserRepository) List(ctx context.Context, search string, limit, offset int) ([]model.User, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1)`,
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE ($1 = '%%' OR name ILIKE $1 OR email ILIKE $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int, req *model.UpdateProfileRequest) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET
			name = COALESCE(NULLIF($1, ''), name),
			first_name = COALESCE(NULLIF($2, ''), first_name),
			last_name = COALESCE(NULLIF($3, ''), last_name),
			phone_no = COALESCE(NULLIF($4, ''), phone_no),
			education = COALESCE(NULLIF($5, ''), education),
			updated_at = NOW()
		 WHERE id = $6`,
		req.Name, req.FirstName, req.LastName, req.PhoneNo, req.Education, id)
	return err
}

func (r *UserRepository) UpdateAccess(ctx context.Context, id int, access model.TestAccess) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET
			enable_firo_b = $1,
			enable_work_values = $2,
			enable_general_aptitude = $3,
			enable_interest_inventory = $4,
			enable_personality_aspect = $5,
			enable_behavior_response = $6,
			updated_at = NOW()
		 WHERE id = $7`,
		access.FiroB, access.WorkValues, access.GeneralAptitude,
		access.InterestInventory, access.PersonalityAspect, access.BehaviorResponse, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTestStatus marks one test as completed for a user. The column name is
// resolved through the model whitelist, never from request input.
func (r *UserRepository) SetTestStatus(ctx context.Context, id int, t scoring.TestType, status string) error {
	col, ok := model.StatusColumn(t)
	if !ok {
		return fmt.Errorf("no status column for test type %s", t)
	}
	_, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = NOW() WHERE id = $2`, col),
		status, id)
	return err
}

// BulkSetTestStatus marks one test as completed for many users at once.
func (r *UserRepository) BulkSetTestStatus(ctx context.Context, ids []int, t scoring.TestType, status string) error {
	col, ok := model.StatusColumn(t)
	if !ok {
		return fmt.Errorf("no status column for test type %s", t)
	}
	_, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = NOW() WHERE id = ANY($2)`, col),
		status, ids)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	statuses := make([]string, 12)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.PhoneNo, &u.Education,
		&u.EmailVerified, &u.TestCompleted,
		&u.Access.FiroB, &u.Access.WorkValues, &u.Access.GeneralAptitude,
		&u.Access.InterestInventory, &u.Access.PersonalityAspect, &u.Access.BehaviorResponse,
		&statuses[0], &statuses[1], &statuses[2], &statuses[3], &statuses[4],
		&statuses[5], &statuses[6], &statuses[7], &statuses[8], &statuses[9],
		&statuses[10], &statuses[11],
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Statuses = model.TestStatuses{
		scoring.TestFiroB:             statuses[0],
		scoring.TestGATBPart1:         statuses[1],
		scoring.TestGATBPart2:         statuses[2],
		scoring.TestGATBPart3:         statuses[3],
		scoring.TestGATBPart4:         statuses[4],
		scoring.TestGATBPart5:         statuses[5],
		scoring.TestGATBPart6:         statuses[6],
		scoring.TestGATBPart7:         statuses[7],
		scoring.TestWorkValues:        statuses[8],
		scoring.TestInterestInventory: statuses[9],
		scoring.TestPersonalityAspect: statuses[10],
		scoring.TestBehaviorResponse:  statuses[11],
	}
	return &u, nil
}
