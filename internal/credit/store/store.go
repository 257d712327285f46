package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bfstore/lojinha/internal/credit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateGrant appends the ledger row and applies it to the balance in one
// transaction so a crash cannot leave a grant unledgered or unapplied.
func (s *Store) CreateGrant(ctx context.Context, e *credit.LedgerEntry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	insert := `
		INSERT INTO credit_ledger (owner_id, amount, note, occurred_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, occurred_at
	`

	err = dbTx.QueryRowContext(ctx, insert,
		e.OwnerID,
		e.Amount,
		e.Note,
	).Scan(&e.ID, &e.OccurredAt)
	if err != nil {
		return fmt.Errorf("creating credit grant: %w", err)
	}

	apply := `
		UPDATE employees
		SET credit_balance = credit_balance + $2, updated_at = NOW()
		WHERE owner_id = $1
	`
	if _, err := dbTx.ExecContext(ctx, apply, e.OwnerID, e.Amount); err != nil {
		return fmt.Errorf("applying credit grant: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing credit grant: %w", err)
	}

	return nil
}

func (s *Store) ListGrants(ctx context.Context, filter credit.ListFilter) ([]*credit.LedgerEntry, error) {
	query := `
		SELECT c.id, c.owner_id, c.amount, c.note, c.occurred_at
		FROM credit_ledger c
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND c.owner_id = $%d", argIdx)

		args = append(args, *filter.OwnerID)
		argIdx++
	}

	if filter.Start != nil {
		query += fmt.Sprintf(" AND c.occurred_at >= $%d", argIdx)

		args = append(args, *filter.Start)
		argIdx++
	}

	if filter.End != nil {
		query += fmt.Sprintf(" AND c.occurred_at < $%d", argIdx)

		args = append(args, *filter.End)
		argIdx++
	}

	query += " ORDER BY c.occurred_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing credit grants: %w", err)
	}
	defer rows.Close()

	var entries []*credit.LedgerEntry

	for rows.Next() {
		var e credit.LedgerEntry

		var note sql.NullString

		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Amount, &note, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scanning credit grant: %w", err)
		}

		e.Note = note.String

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit grant rows: %w", err)
	}

	return entries, nil
}
