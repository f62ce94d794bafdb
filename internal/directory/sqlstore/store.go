// Package sqlstore implements the directory store on PostgreSQL or SQLite through sqlx.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/domain"
)

const userColumns = `id, sender_id, full_name, email, phone_number, is_operator, created_at`

// Store persists user records in the users table.
type Store struct {
	db *sqlx.DB
}

// New wraps an open connection. Queries are written with '?' and rebound per driver.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Insert creates the record and reads it back with the generated columns.
func (s *Store) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	q := s.db.Rebind(`INSERT INTO users (sender_id, full_name, email, phone_number, is_operator)
		VALUES (?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, q, u.SenderID, u.FullName, u.Email, u.PhoneNumber, u.IsOperator); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("insert sender %d: %w", u.SenderID, directory.ErrDuplicate)
		}
		return domain.User{}, fmt.Errorf("insert sender %d: %w", u.SenderID, err)
	}
	created, err := s.FindBySender(ctx, u.SenderID)
	if err != nil {
		return domain.User{}, err
	}
	if created == nil {
		return domain.User{}, fmt.Errorf("insert sender %d: record not visible after insert", u.SenderID)
	}
	return *created, nil
}

// FindBySender returns nil, nil when the sender has no record.
func (s *Store) FindBySender(ctx context.Context, senderID int64) (*domain.User, error) {
	var u domain.User
	q := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE sender_id = ?`)
	if err := s.db.GetContext(ctx, &u, q, senderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select sender %d: %w", senderID, err)
	}
	return &u, nil
}

// ListNonOperators orders by the surrogate key, which follows insertion order.
func (s *Store) ListNonOperators(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	q := s.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE is_operator = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &users, q, false); err != nil {
		return nil, fmt.Errorf("select non-operators: %w", err)
	}
	return users, nil
}

// SetOperator updates the flag; a missing record yields directory.ErrNotFound.
func (s *Store) SetOperator(ctx context.Context, senderID int64, operator bool) error {
	q := s.db.Rebind(`UPDATE users SET is_operator = ? WHERE sender_id = ?`)
	res, err := s.db.ExecContext(ctx, q, operator, senderID)
	if err != nil {
		return fmt.Errorf("update sender %d: %w", senderID, err)
	}
	return expectOne(res, senderID)
}

// Delete removes the record; a missing record yields directory.ErrNotFound.
func (s *Store) Delete(ctx context.Context, senderID int64) error {
	q := s.db.Rebind(`DELETE FROM users WHERE sender_id = ?`)
	res, err := s.db.ExecContext(ctx, q, senderID)
	if err != nil {
		return fmt.Errorf("delete sender %d: %w", senderID, err)
	}
	return expectOne(res, senderID)
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func expectOne(res sql.Result, senderID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for sender %d: %w", senderID, err)
	}
	if n == 0 {
		return fmt.Errorf("sender %d: %w", senderID, directory.ErrNotFound)
	}
	return nil
}

// isUniqueViolation recognises unique index conflicts from lib/pq and modernc sqlite.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
