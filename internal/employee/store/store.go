package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/bfstore/lojinha/internal/employee"
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

const selectEmployeeColumns = `
	e.id, e.owner_id, e.name, e.sector, e.company, e.active, e.credit_balance,
	e.created_at, e.updated_at
`

// scanEmployee reads an employee row in selectEmployeeColumns order.
func scanEmployee(s scanner) (*employee.Employee, error) {
	var e employee.Employee

	var companyStr string

	if err := s.Scan(
		&e.ID, &e.OwnerID, &e.Name, &e.Sector, &companyStr, &e.Active,
		&e.CreditBalance, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Company = employee.Company(companyStr)

	return &e, nil
}

// CreateEmployee inserts the employee. The PIN is hashed inside the
// database (pgcrypto) so the plaintext never leaves this statement; an
// empty pin stores NULL and disables kiosk access.
func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee, pin string) error {
	query := `
		INSERT INTO employees (owner_id, name, sector, company, active, credit_balance, pin_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, CASE WHEN $6 = '' THEN NULL ELSE crypt($6, gen_salt('bf')) END, NOW(), NOW())
		RETURNING id, credit_balance, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.OwnerID,
		e.Name,
		e.Sector,
		e.Company,
		e.Active,
		pin,
	).Scan(&e.ID, &e.CreditBalance, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + `
		FROM employees e
		WHERE e.id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

func (s *Store) GetByOwner(ctx context.Context, ownerID string) (*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + `
		FROM employees e
		WHERE e.owner_id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee by owner: %w", err)
	}

	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter employee.ListFilter) ([]*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + `
		FROM employees e
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.ActiveOnly {
		query += " AND e.active"
	}

	if filter.Company != nil {
		query += fmt.Sprintf(" AND e.company = $%d", argIdx)

		args = append(args, *filter.Company)
		argIdx++
	}

	query += " ORDER BY e.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}

	return employees, nil
}

func (s *Store) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE employees
		SET active = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("setting active: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return employee.ErrNotFound
	}

	return nil
}

// VerifyPIN runs the comparison inside the database so the stored hash
// never crosses the wire. NULL pin_hash never matches.
func (s *Store) VerifyPIN(ctx context.Context, ownerID, pin string) (bool, error) {
	query := `
		SELECT pin_hash IS NOT NULL AND pin_hash = crypt($2, pin_hash)
		FROM employees
		WHERE owner_id = $1 AND active
	`

	var ok bool

	err := s.db.QueryRowContext(ctx, query, ownerID, pin).Scan(&ok)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, employee.ErrNotFound
		}

		return false, fmt.Errorf("verifying pin: %w", err)
	}

	return ok, nil
}
