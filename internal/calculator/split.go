// Package calculator implements the bill splitting engine.
//
// Everything here is a pure function of its inputs: no I/O, no stored state.
// Parsing is permissive on purpose; a value that does not parse as a
// non-negative number contributes zero instead of failing the calculation.
package calculator

import (
	"strconv"
	"strings"

	"github.com/rachaconta/backend/internal/models"
)

// Input carries the form state the engine computes from.
type Input struct {
	BillAmount    string              `json:"billAmount"`
	TipPercentage float64             `json:"tipPercentage"`
	DivisionMode  models.DivisionMode `json:"divisionMode"`
	SplitCount    int                 `json:"splitCount"`
	People        []models.Person     `json:"people,omitempty"`
}

// Result is the derived state for one Input.
type Result struct {
	BillAmount float64 `json:"billAmount"`
	TipAmount  float64 `json:"tipAmount"`
	TotalBill  float64 `json:"totalBill"`

	// SplitCount is the effective headcount after clamping (equal mode).
	SplitCount      int     `json:"splitCount"`
	PerPersonAmount float64 `json:"perPersonAmount"`

	// Individual holds the per-person amounts in percentage mode. It is
	// empty unless the shares sum to exactly 100 and the bill is positive.
	Individual []models.PersonAmount `json:"individualAmounts,omitempty"`

	// SplitValid reports whether Individual could be computed in
	// percentage mode; SplitMessage explains why not. Always true in
	// equal mode.
	SplitValid   bool   `json:"splitValid"`
	SplitMessage string `json:"splitMessage,omitempty"`
}

// ParseAmount parses a free-text monetary or percentage value.
// A comma decimal separator is accepted. Unparseable or negative values
// normalize to 0.
func ParseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Compute derives tip, total, and per-person amounts from in.
// It never fails; invalid numeric inputs are normalized per ParseAmount and
// a percentage split that breaks the 100% invariant yields an empty
// Individual list with SplitValid=false.
func Compute(in Input) Result {
	bill := ParseAmount(in.BillAmount)
	tip := bill * in.TipPercentage / 100
	total := bill + tip

	res := Result{
		BillAmount: bill,
		TipAmount:  tip,
		TotalBill:  total,
		SplitValid: true,
	}

	switch in.DivisionMode {
	case models.DivisionPercentage:
		res.SplitCount = len(in.People)
		res.Individual, res.SplitValid, res.SplitMessage = computeShares(in.People, bill, total)
	default:
		count := in.SplitCount
		if count < 1 {
			count = 1
		}
		res.SplitCount = count
		res.PerPersonAmount = total / float64(count)
	}

	return res
}

// computeShares resolves a custom percentage split against the total.
// Shares are computed only when the percentages sum to exactly 100 (no
// tolerance band; 99.999 does not qualify) and the bill is positive.
func computeShares(people []models.Person, bill, total float64) ([]models.PersonAmount, bool, string) {
	var sum float64
	anyPositive := false
	for _, p := range people {
		pct := ParseAmount(p.Percentage)
		sum += pct
		if pct > 0 {
			anyPositive = true
		}
	}

	if !anyPositive {
		return nil, true, ""
	}
	if sum != 100 {
		return nil, false, "as porcentagens devem somar exatamente 100%"
	}
	if bill <= 0 {
		return nil, false, "informe o valor da conta para calcular as divisões"
	}

	amounts := make([]models.PersonAmount, len(people))
	for i, p := range people {
		amounts[i] = models.PersonAmount{
			ID:     p.ID,
			Name:   DisplayName(p, i),
			Amount: total * ParseAmount(p.Percentage) / 100,
		}
	}
	return amounts, true, ""
}

// DisplayName returns the person's name, or "Person N" when blank.
func DisplayName(p models.Person, index int) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "Person " + strconv.Itoa(index+1)
	}
	return name
}
