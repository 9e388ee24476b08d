// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/rachaconta/backend/internal/models"
)

// Store defines the interface for RachaConta's persistence: the single AI
// credential slot and the saved calculation history.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// SetCredential stores the AI API key, replacing any previous value.
	SetCredential(ctx context.Context, value string) error

	// GetCredential returns the stored AI API key, or "" when none is
	// saved. Absence is not an error.
	GetCredential(ctx context.Context) (string, error)

	// DeleteCredential removes the stored AI API key. Deleting an absent
	// credential is a no-op.
	DeleteCredential(ctx context.Context) error

	// SaveCalculation persists a calculation.
	// The calc.ID and calc.CreatedAt fields will be populated by the store.
	SaveCalculation(ctx context.Context, calc *models.Calculation) error

	// ListCalculations returns the most recent calculations, newest first,
	// up to limit entries (limit <= 0 applies a default page size).
	ListCalculations(ctx context.Context, limit int) ([]models.Calculation, error)

	// Close releases any resources held by the store.
	Close() error
}
