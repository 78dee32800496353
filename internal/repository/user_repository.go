package repository

import (
	"context"
	"errors"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateUser is returned when the email or phone unique constraint fires.
var ErrDuplicateUser = errors.New("user with this email or phone already exists")

// UserRepository handles user account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, COALESCE(phone, ''), full_name, password_hash, roles, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Phone, &u.FullName, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, COALESCE(phone, ''), full_name, password_hash, roles, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Phone, &u.FullName, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Count returns the total number of registered users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, phone, full_name, password_hash, roles)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.Phone, u.FullName, u.PasswordHash, u.Roles,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// Update modifies a user's profile fields (never roles or password).
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET full_name = $1, phone = NULLIF($2, ''), updated_at = NOW() WHERE id = $3`,
		u.FullName, u.Phone, u.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// UpdateRoles replaces a user's role set.
func (r *UserRepository) UpdateRoles(ctx context.Context, id uuid.UUID, roles []string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET roles = $1, updated_at = NOW() WHERE id = $2`, roles, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}

// ListPaginated retrieves users ordered by creation date, newest first.
func (r *UserRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email, COALESCE(phone, ''), full_name, password_hash, roles, created_at, updated_at
		 FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Phone, &u.FullName, &u.PasswordHash, &u.Roles, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
