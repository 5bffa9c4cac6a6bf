package contact

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound covers both a genuinely absent record and an ownership
// mismatch; the two are indistinguishable to callers on purpose.
var ErrNotFound = errors.New("contact not found")

// Repository persists contacts. Every read, update and delete is scoped to
// the owning user.
type Repository interface {
	Create(ctx context.Context, c Contact) error
	FindOwned(ctx context.Context, id, ownerID string) (Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Contact, error)
	Update(ctx context.Context, c Contact) error
	Delete(ctx context.Context, id, ownerID string) error
}

// PostgresRepository implements Repository using PostgreSQL. The nested name
// and address parts keep their document shape as jsonb.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed contact repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, owner_id, first_name, COALESCE(last_name, ''), address,
    phone, COALESCE(email, ''), COALESCE(notes, ''), favorite, created_at, updated_at`

// Create inserts a contact for its owner.
func (r *PostgresRepository) Create(ctx context.Context, c Contact) error {
	id, ownerID, err := parseIDs(c.ID, c.OwnerID)
	if err != nil {
		return err
	}
	address, err := marshalAddress(c.Address)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO contacts
        (id, owner_id, first_name, last_name, address, phone, email, notes, favorite, created_at, updated_at)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $10)`,
		id, ownerID, c.Name.First, c.Name.Last, address, c.Phone, c.Email, c.Notes, c.Favorite, c.CreatedAt.UTC())
	return err
}

// FindOwned fetches a contact iff it exists and belongs to ownerID.
func (r *PostgresRepository) FindOwned(ctx context.Context, id, ownerID string) (Contact, error) {
	contactID, owner, err := parseIDs(id, ownerID)
	if err != nil {
		return Contact{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+contactColumns+`
        FROM contacts WHERE id = $1 AND owner_id = $2`, contactID, owner)
	return scanContact(row)
}

// ListByOwner returns every contact belonging to ownerID.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Contact, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return []Contact{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+`
        FROM contacts WHERE owner_id = $1 ORDER BY created_at`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Update persists the contact's mutable fields, still scoped by owner.
func (r *PostgresRepository) Update(ctx context.Context, c Contact) error {
	id, ownerID, err := parseIDs(c.ID, c.OwnerID)
	if err != nil {
		return ErrNotFound
	}
	address, err := marshalAddress(c.Address)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE contacts SET
        first_name = $3, last_name = NULLIF($4, ''), address = $5, phone = $6,
        email = NULLIF($7, ''), notes = NULLIF($8, ''), favorite = $9, updated_at = $10
        WHERE id = $1 AND owner_id = $2`,
		id, ownerID, c.Name.First, c.Name.Last, address, c.Phone, c.Email, c.Notes, c.Favorite, c.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the contact iff it belongs to ownerID.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	contactID, owner, err := parseIDs(id, ownerID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, contactID, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func parseIDs(id, ownerID string) (uuid.UUID, uuid.UUID, error) {
	contactID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return contactID, owner, nil
}

func marshalAddress(a *Address) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (Contact, error) {
	var (
		id, ownerID          uuid.UUID
		address              []byte
		createdAt, updatedAt time.Time
		c                    Contact
	)
	err := row.Scan(&id, &ownerID, &c.Name.First, &c.Name.Last, &address,
		&c.Phone, &c.Email, &c.Notes, &c.Favorite, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		return Contact{}, err
	}
	if len(address) > 0 {
		c.Address = &Address{}
		if err := json.Unmarshal(address, c.Address); err != nil {
			return Contact{}, err
		}
	}
	c.ID = id.String()
	c.OwnerID = ownerID.String()
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}
