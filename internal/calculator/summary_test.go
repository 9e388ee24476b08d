package calculator

import (
	"strings"
	"testing"

	"github.com/rachaconta/backend/internal/models"
)

func TestSummaryEqualSplit(t *testing.T) {
	in := Input{
		BillAmount:    "100",
		TipPercentage: 20,
		DivisionMode:  models.DivisionEqual,
		SplitCount:    4,
	}
	got := Summary(in, Compute(in))

	for _, want := range []string{
		"Valor da Conta: R$ 100.00",
		"Gorjeta (20%): R$ 20.00",
		"Total: R$ 120.00",
		"Dividido por 4: R$ 30.00 por pessoa",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryPercentageSplit(t *testing.T) {
	in := Input{
		BillAmount:    "90",
		TipPercentage: 15,
		DivisionMode:  models.DivisionPercentage,
		People: []models.Person{
			{ID: "1", Name: "A", Percentage: "60"},
			{ID: "2", Name: "B", Percentage: "40"},
		},
	}
	got := Summary(in, Compute(in))

	for _, want := range []string{
		"Total: R$ 103.50",
		"A (60%): R$ 62.10",
		"B (40%): R$ 41.40",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryInvalidPercentageSplit(t *testing.T) {
	in := Input{
		BillAmount:    "90",
		TipPercentage: 15,
		DivisionMode:  models.DivisionPercentage,
		People: []models.Person{
			{ID: "1", Name: "A", Percentage: "60"},
		},
	}
	got := Summary(in, Compute(in))
	if !strings.Contains(got, "indisponível") {
		t.Errorf("summary should flag the invalid split:\n%s", got)
	}
}

func TestSummaryFractionalTipPercent(t *testing.T) {
	in := Input{
		BillAmount:    "100",
		TipPercentage: 18.5,
		DivisionMode:  models.DivisionEqual,
		SplitCount:    1,
	}
	got := Summary(in, Compute(in))
	if !strings.Contains(got, "Gorjeta (18.5%)") {
		t.Errorf("fractional percent should render without trailing zeros:\n%s", got)
	}
}
