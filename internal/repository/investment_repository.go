package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// InvestmentRepository provides data access methods for the investments table.
// Every query is scoped to a single user.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentColumns = `id, user_id, name, type, amount, yield_rate, date, maturity_date, notes, created_at, updated_at`

func scanInvestment(row interface{ Scan(...any) error }) (model.Investment, error) {
	var inv model.Investment
	var date, createdAt, updatedAt string
	var maturity sql.NullString

	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.Name,
		&inv.Type,
		&inv.Amount,
		&inv.YieldRate,
		&date,
		&maturity,
		&inv.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Investment{}, err
	}

	if inv.Date, err = ParseTime(date); err != nil {
		return model.Investment{}, err
	}
	if maturity.Valid && maturity.String != "" {
		m, err := ParseTime(maturity.String)
		if err != nil {
			return model.Investment{}, err
		}
		inv.MaturityDate = &m
	}
	if inv.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Investment{}, err
	}
	if inv.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Investment{}, err
	}
	return inv, nil
}

// ListInvestments retrieves a user's investments, newest date first.
// When filter.PerPage is positive only the requested page is returned.
// The second return value is the total number of matching rows.
func (r *InvestmentRepository) ListInvestments(ctx context.Context, filter model.InvestmentFilter) ([]model.Investment, int, error) {
	where := ` FROM investments WHERE user_id = ?`
	args := []any{filter.UserID}

	if filter.Type != "" {
		where += " AND type = ?"
		args = append(args, filter.Type)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count investments: %w", err)
	}

	query := `SELECT ` + investmentColumns + where + ` ORDER BY date DESC, created_at DESC`
	if filter.PerPage > 0 {
		page := max(filter.Page, 1)
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.PerPage, (page-1)*filter.PerPage)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query investments table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan investments table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating investments table: %w", err)
	}

	return investments, total, nil
}

// GetInvestment retrieves one of the user's investments.
// Returns apperrors.ErrInvestmentNotFound for unknown IDs and for rows owned by another user.
func (r *InvestmentRepository) GetInvestment(ctx context.Context, userID, investmentID string) (model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = ? AND user_id = ?`

	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, investmentID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment: %w", err)
	}
	return inv, nil
}

// InsertInvestment stores a new investment, assigning an ID when none is set.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}

	query := `
        INSERT INTO investments (` + investmentColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.UserID,
		inv.Name,
		inv.Type,
		inv.Amount,
		inv.YieldRate,
		formatDate(inv.Date),
		nullDate(inv.MaturityDate),
		inv.Notes,
		formatTimestamp(inv.CreatedAt),
		formatTimestamp(inv.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// UpdateInvestment overwrites the mutable fields of an existing investment.
func (r *InvestmentRepository) UpdateInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
        UPDATE investments
        SET name = ?, type = ?, amount = ?, yield_rate = ?, date = ?, maturity_date = ?, notes = ?, updated_at = ?
        WHERE id = ? AND user_id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		inv.Name,
		inv.Type,
		inv.Amount,
		inv.YieldRate,
		formatDate(inv.Date),
		nullDate(inv.MaturityDate),
		inv.Notes,
		formatTimestamp(inv.UpdatedAt),
		inv.ID,
		inv.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	return requireAffected(result, apperrors.ErrInvestmentNotFound)
}

// DeleteInvestment removes one of the user's investments.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	query := `DELETE FROM investments WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, investmentID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return requireAffected(result, apperrors.ErrInvestmentNotFound)
}
