package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bfstore/lojinha/internal/catalog"
	"github.com/bfstore/lojinha/internal/purchase"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPurchaseColumns = `
	p.id, p.owner_id, p.item, p.unit_price, p.qty, p.total, p.occurred_at
`

func scanPurchase(s scanner) (*purchase.Purchase, error) {
	var p purchase.Purchase

	var itemStr string

	if err := s.Scan(
		&p.ID, &p.OwnerID, &itemStr, &p.UnitPrice, &p.Qty, &p.Total, &p.OccurredAt,
	); err != nil {
		return nil, err
	}

	p.Item = catalog.Item(itemStr)

	return &p, nil
}

// CreatePurchase inserts the row and settles the owner's credit atomically.
// The balance decrement is a single conditional update capped at the
// available balance, so it cannot go negative under concurrent purchases.
func (s *Store) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	insert := `
		INSERT INTO purchases (owner_id, item, unit_price, qty, total, occurred_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, occurred_at
	`

	err = dbTx.QueryRowContext(ctx, insert,
		p.OwnerID,
		p.Item,
		p.UnitPrice,
		p.Qty,
		p.Total,
	).Scan(&p.ID, &p.OccurredAt)
	if err != nil {
		return fmt.Errorf("creating purchase: %w", err)
	}

	settle := `
		UPDATE employees
		SET credit_balance = credit_balance - LEAST(credit_balance, $2), updated_at = NOW()
		WHERE owner_id = $1
	`
	if _, err := dbTx.ExecContext(ctx, settle, p.OwnerID, p.Total); err != nil {
		return fmt.Errorf("settling credit: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing purchase: %w", err)
	}

	return nil
}

func (s *Store) ListPurchases(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.OwnerID != nil {
		query += fmt.Sprintf(" AND p.owner_id = $%d", argIdx)

		args = append(args, *filter.OwnerID)
		argIdx++
	}

	if filter.Start != nil {
		query += fmt.Sprintf(" AND p.occurred_at >= $%d", argIdx)

		args = append(args, *filter.Start)
		argIdx++
	}

	// End is exclusive: a record exactly at the boundary belongs to the
	// next period.
	if filter.End != nil {
		query += fmt.Sprintf(" AND p.occurred_at < $%d", argIdx)

		args = append(args, *filter.End)
		argIdx++
	}

	query += " ORDER BY p.occurred_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchases, nil
}
