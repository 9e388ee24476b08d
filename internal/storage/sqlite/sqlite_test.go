package sqlite

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rachaconta/backend/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "rachaconta-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("GetCredential is empty before any save", func(t *testing.T) {
		value, err := store.GetCredential(ctx)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if value != "" {
			t.Errorf("Expected empty credential, got %q", value)
		}
	})

	t.Run("SetCredential stores and overwrites", func(t *testing.T) {
		if err := store.SetCredential(ctx, "key-one"); err != nil {
			t.Fatalf("SetCredential failed: %v", err)
		}
		value, err := store.GetCredential(ctx)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if value != "key-one" {
			t.Errorf("Expected key-one, got %q", value)
		}

		// Only ever one credential row; a second save replaces it.
		if err := store.SetCredential(ctx, "key-two"); err != nil {
			t.Fatalf("SetCredential overwrite failed: %v", err)
		}
		value, err = store.GetCredential(ctx)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if value != "key-two" {
			t.Errorf("Expected key-two, got %q", value)
		}
	})

	t.Run("DeleteCredential removes and is idempotent", func(t *testing.T) {
		if err := store.DeleteCredential(ctx); err != nil {
			t.Fatalf("DeleteCredential failed: %v", err)
		}
		value, err := store.GetCredential(ctx)
		if err != nil {
			t.Fatalf("GetCredential failed: %v", err)
		}
		if value != "" {
			t.Errorf("Expected empty credential after delete, got %q", value)
		}
		if err := store.DeleteCredential(ctx); err != nil {
			t.Errorf("Deleting an absent credential should be a no-op: %v", err)
		}
	})

	t.Run("SaveCalculation generates ID and timestamp", func(t *testing.T) {
		calc := &models.Calculation{
			BillAmount:    100,
			TipPercentage: 20,
			TipAmount:     20,
			TotalBill:     120,
			DivisionMode:  models.DivisionEqual,
			Shares: []models.PersonAmount{
				{ID: "p1", Name: "Person 1", Amount: 60},
				{ID: "p2", Name: "Person 2", Amount: 60},
			},
		}

		if err := store.SaveCalculation(ctx, calc); err != nil {
			t.Fatalf("SaveCalculation failed: %v", err)
		}
		if calc.ID == "" {
			t.Error("Expected calculation ID to be generated")
		}
		if calc.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListCalculations returns newest first with ordered shares", func(t *testing.T) {
		older := &models.Calculation{
			BillAmount: 90, TipPercentage: 15, TipAmount: 13.5, TotalBill: 103.5,
			DivisionMode: models.DivisionPercentage,
			CreatedAt:    1000,
			Shares: []models.PersonAmount{
				{ID: "a", Name: "A", Amount: 62.10},
				{ID: "b", Name: "B", Amount: 41.40},
			},
		}
		newer := &models.Calculation{
			BillAmount: 50, TipPercentage: 10, TipAmount: 5, TotalBill: 55,
			DivisionMode: models.DivisionEqual,
			CreatedAt:    2000,
		}
		if err := store.SaveCalculation(ctx, older); err != nil {
			t.Fatalf("SaveCalculation failed: %v", err)
		}
		if err := store.SaveCalculation(ctx, newer); err != nil {
			t.Fatalf("SaveCalculation failed: %v", err)
		}

		calcs, err := store.ListCalculations(ctx, 2)
		if err != nil {
			t.Fatalf("ListCalculations failed: %v", err)
		}
		if len(calcs) != 2 {
			t.Fatalf("Expected 2 calculations, got %d", len(calcs))
		}
		if calcs[0].CreatedAt < calcs[1].CreatedAt {
			t.Error("Expected newest calculation first")
		}

		var restored *models.Calculation
		for i := range calcs {
			if calcs[i].ID == older.ID {
				restored = &calcs[i]
			}
		}
		if restored == nil {
			t.Fatal("Saved calculation missing from history")
		}
		if restored.DivisionMode != models.DivisionPercentage {
			t.Errorf("DivisionMode = %q, want percentage", restored.DivisionMode)
		}
		if len(restored.Shares) != 2 {
			t.Fatalf("Expected 2 shares, got %d", len(restored.Shares))
		}
		if restored.Shares[0].Name != "A" || restored.Shares[1].Name != "B" {
			t.Errorf("Share order not preserved: %+v", restored.Shares)
		}
		if math.Abs(restored.Shares[0].Amount-62.10) > 0.01 {
			t.Errorf("Share amount = %v, want 62.10", restored.Shares[0].Amount)
		}
	})

	t.Run("ListCalculations respects the limit", func(t *testing.T) {
		calcs, err := store.ListCalculations(ctx, 1)
		if err != nil {
			t.Fatalf("ListCalculations failed: %v", err)
		}
		if len(calcs) != 1 {
			t.Errorf("Expected 1 calculation, got %d", len(calcs))
		}
	})
}
