package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rachaconta/backend/internal/models"
)

// defaultHistoryLimit caps the history page when the caller does not specify
// a limit.
const defaultHistoryLimit = 50

// SaveCalculation persists a calculation and its per-person shares.
func (s *SQLiteStore) SaveCalculation(ctx context.Context, calc *models.Calculation) error {
	// Generate IDs if not set
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt == 0 {
		calc.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO calculations (id, bill_amount, tip_percentage, tip_amount, total, division_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		calc.ID, calc.BillAmount, calc.TipPercentage, calc.TipAmount, calc.TotalBill,
		string(calc.DivisionMode), calc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	for i, share := range calc.Shares {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO calculation_shares (calculation_id, position, person_id, person_name, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			calc.ID, i, share.ID, share.Name, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListCalculations returns the most recent calculations, newest first.
func (s *SQLiteStore) ListCalculations(ctx context.Context, limit int) ([]models.Calculation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bill_amount, tip_percentage, tip_amount, total, division_mode, created_at
		 FROM calculations ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	var calcs []models.Calculation
	for rows.Next() {
		var c models.Calculation
		var mode string
		if err := rows.Scan(&c.ID, &c.BillAmount, &c.TipPercentage, &c.TipAmount, &c.TotalBill, &mode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		c.DivisionMode = models.DivisionMode(mode)
		calcs = append(calcs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calculations: %w", err)
	}

	for i := range calcs {
		shares, err := s.calculationShares(ctx, calcs[i].ID)
		if err != nil {
			return nil, err
		}
		calcs[i].Shares = shares
	}

	return calcs, nil
}

// calculationShares loads the ordered share list for one calculation.
func (s *SQLiteStore) calculationShares(ctx context.Context, calcID string) ([]models.PersonAmount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, person_name, amount FROM calculation_shares
		 WHERE calculation_id = ? ORDER BY position`,
		calcID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []models.PersonAmount
	for rows.Next() {
		var share models.PersonAmount
		if err := rows.Scan(&share.ID, &share.Name, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}
