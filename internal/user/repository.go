package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store-level sentinel failures, mapped to the apperr taxonomy by the service.
var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, u User) error
	// FindByIdentifier looks a user up by email or phone; either may be
	// empty, and a user matches when either provided identifier does.
	FindByIdentifier(ctx context.Context, email, phone string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a new user. Duplicate email or phone reports ErrDuplicate.
func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, phone, password_hash, created_at, updated_at)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $5)`,
		id, u.Email, u.Phone, u.PasswordHash, u.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// FindByIdentifier fetches a user whose email or phone matches.
func (r *PostgresRepository) FindByIdentifier(ctx context.Context, email, phone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, COALESCE(email, ''), COALESCE(phone, ''), password_hash, created_at, updated_at
        FROM users
        WHERE (email = $1 AND $1 <> '') OR (phone = $2 AND $2 <> '')
        LIMIT 1`, email, phone)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, COALESCE(email, ''), COALESCE(phone, ''), password_hash, created_at, updated_at
        FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// List returns every user record.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(email, ''), COALESCE(phone, ''), password_hash, created_at, updated_at
        FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		id                   uuid.UUID
		createdAt, updatedAt time.Time
		u                    User
	)
	if err := row.Scan(&id, &u.Email, &u.Phone, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.ID = id.String()
	u.CreatedAt = createdAt.UTC()
	u.UpdatedAt = updatedAt.UTC()
	return u, nil
}
