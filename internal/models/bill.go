package models

// DivisionMode selects how the total bill is divided.
type DivisionMode string

const (
	// DivisionEqual splits the total evenly across a headcount.
	DivisionEqual DivisionMode = "equal"

	// DivisionPercentage splits the total by per-person percentage shares
	// that must sum to exactly 100.
	DivisionPercentage DivisionMode = "percentage"
)

// IsValid reports whether m is a recognised division mode.
func (m DivisionMode) IsValid() bool {
	return m == DivisionEqual || m == DivisionPercentage
}

// BillState holds the raw form inputs for one bill.
// Amount fields stay free text until parsed; unparseable values are treated
// as zero, never as errors.
type BillState struct {
	// BillAmount is the bill total as typed (e.g. "100", "89.90", "").
	BillAmount string `json:"billAmount"`

	// TipPercentage is the committed tip percentage, accepted in [0,100].
	// The slider shortcut covers 0-30 but typed values up to 100 apply.
	TipPercentage float64 `json:"tipPercentage"`

	// DivisionMode selects equal or percentage splitting.
	DivisionMode DivisionMode `json:"divisionMode"`

	// SplitCount is the headcount for equal mode, clamped to >= 1.
	SplitCount int `json:"splitCount"`

	// People is the ordered custom-split list for percentage mode.
	// It never becomes empty once populated.
	People []Person `json:"people,omitempty"`
}

// Person is one entry of a custom percentage split.
type Person struct {
	// ID is the unique identifier for the person (UUID format), stable
	// across edits.
	ID string `json:"id"`

	// Name is free text; blank names display as "Person N".
	Name string `json:"name"`

	// Percentage is this person's share as typed (e.g. "60", "33.5", "").
	Percentage string `json:"percentage"`
}

// PersonAmount is one person's computed share of the total bill.
type PersonAmount struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SuggestionResult is the structured output of the tip suggestion flow.
// Each new request overwrites the previous result.
type SuggestionResult struct {
	// SuggestedTipPercentage is in [0,100].
	SuggestedTipPercentage float64 `json:"suggestedTipPercentage"`

	// Reasoning is the model's non-empty justification for the percentage.
	Reasoning string `json:"reasoning"`
}

// Calculation is a saved bill calculation for the history view.
type Calculation struct {
	// ID is the unique identifier (UUID format), assigned by the store.
	ID string `json:"id"`

	// BillAmount is the parsed bill total at save time.
	BillAmount float64 `json:"billAmount"`

	// TipPercentage is the tip percentage applied.
	TipPercentage float64 `json:"tipPercentage"`

	// TipAmount and TotalBill are the derived amounts.
	TipAmount float64 `json:"tipAmount"`
	TotalBill float64 `json:"totalBill"`

	// DivisionMode records how the bill was divided.
	DivisionMode DivisionMode `json:"divisionMode"`

	// Shares is the per-person breakdown (one synthetic entry per head in
	// equal mode, one per person in percentage mode).
	Shares []PersonAmount `json:"shares"`

	// CreatedAt is the Unix timestamp when the calculation was saved.
	CreatedAt int64 `json:"createdAt"`
}
