package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goodenergy/platform/internal/model"
)

// ReservationRepo provides access to the conference_reservations table.
// The table only ever grows: the write path inserts one row per
// accepted reservation and no update or delete statement exists.
// Emails are stored lowercased and trimmed; callers are expected to
// normalize before lookups so comparisons stay case-insensitive.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Count returns the total number of reservations currently stored.
// The capacity check and the post-insert recount both go through this
// method so the reserved count is always a fresh read, never an
// in-memory decrement.
func (r *ReservationRepo) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM conference_reservations`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindByEmail looks up a reservation by its normalized email.  It
// returns ErrReservationNotFound when no row matches.
func (r *ReservationRepo) FindByEmail(ctx context.Context, email string) (*model.Reservation, error) {
	const q = `SELECT id, name, email, phone, country, mode, created_at
	           FROM conference_reservations
	           WHERE email = ?`
	var res model.Reservation
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&res.ID, &res.Name, &res.Email, &phone, &res.Country, &res.Mode, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if phone.Valid {
		res.Phone = phone.String
	}
	return &res, nil
}

// Create inserts a new reservation row.  The caller supplies the
// generated ID and normalized fields; created_at is assigned by the
// database and read back onto the record.  A duplicate email violates
// the unique index on the email column and surfaces as a driver error.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO conference_reservations (id, name, email, phone, country, mode)
	           VALUES (?, ?, ?, ?, ?, ?)`
	var phone interface{}
	if res.Phone != "" {
		phone = res.Phone
	}
	if _, err := r.db.ExecContext(ctx, q, res.ID, res.Name, res.Email, phone, res.Country, res.Mode); err != nil {
		return err
	}
	// Query back created_at to populate the database-assigned timestamp
	const sel = `SELECT created_at FROM conference_reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}
