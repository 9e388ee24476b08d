// Package form implements the bill form view-model: a single state struct
// mutated through explicit setters, with the calculator package as a pure
// function over that state.
package form

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rachaconta/backend/internal/calculator"
	"github.com/rachaconta/backend/internal/models"
)

var (
	// ErrLastPerson is returned when removing the only remaining person of
	// a custom split. The list never becomes empty.
	ErrLastPerson = errors.New("cannot remove the last person")

	// ErrPersonNotFound is returned when a person id does not exist.
	ErrPersonNotFound = errors.New("person not found")
)

const (
	defaultTipPercentage = 15
	defaultSplitCount    = 1

	// tipCommitDelay is the quiescence window for typed tip input; rapid
	// keystrokes coalesce into a single commit.
	tipCommitDelay = 500 * time.Millisecond
)

// Option configures a Form.
type Option func(*Form)

// WithTipCommitDelay overrides the debounce window for typed tip input.
// Primarily used in tests.
func WithTipCommitDelay(d time.Duration) Option {
	return func(f *Form) { f.tipDelay = d }
}

// Form owns all mutable bill state. All methods are safe for concurrent use;
// the debounce timer fires on its own goroutine.
type Form struct {
	mu         sync.Mutex
	state      models.BillState
	suggestion *models.SuggestionResult

	tipDelay time.Duration
	tipTimer *time.Timer

	// tipGen invalidates scheduled commits. Every cancel site bumps it under
	// mu; a commit callback that captured an older value drops its input,
	// even if it was already blocked on mu when the timer was stopped.
	tipGen uint64
}

// New creates a Form with the mount defaults: empty bill amount, 15% tip,
// headcount 1, equal division.
func New(opts ...Option) *Form {
	f := &Form{tipDelay: tipCommitDelay}
	f.state = defaultState()
	for _, o := range opts {
		o(f)
	}
	return f
}

func defaultState() models.BillState {
	return models.BillState{
		BillAmount:    "",
		TipPercentage: defaultTipPercentage,
		DivisionMode:  models.DivisionEqual,
		SplitCount:    defaultSplitCount,
	}
}

// Reset restores the mount defaults and clears any pending tip commit and
// suggestion state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTipCommitLocked()
	f.state = defaultState()
	f.suggestion = nil
}

// SetBillAmount stores the raw bill amount text.
func (f *Form) SetBillAmount(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.BillAmount = s
}

// SetSplitCount updates the equal-split headcount, clamped to a minimum of 1.
func (f *Form) SetSplitCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n < 1 {
		n = 1
	}
	f.state.SplitCount = n
}

// SetDivisionMode switches between equal and percentage splitting.
// Entering percentage mode seeds the people list so it is never empty.
func (f *Form) SetDivisionMode(m models.DivisionMode) {
	if !m.IsValid() {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.DivisionMode = m
	if m == models.DivisionPercentage && len(f.state.People) == 0 {
		f.state.People = append(f.state.People, newPerson())
	}
}

// SetTipPercentage commits a tip percentage immediately, cancelling any
// pending debounced commit. Values outside [0,100] are ignored.
func (f *Form) SetTipPercentage(p float64) {
	if p < 0 || p > 100 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTipCommitLocked()
	f.state.TipPercentage = p
}

// SetTipInput records a keystroke of the tip percentage text field.
// The value commits only after the quiescence window elapses with no further
// keystrokes, and only if it parses as a number in [0,100].
func (f *Form) SetTipInput(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTipCommitLocked()
	gen := f.tipGen
	f.tipTimer = time.AfterFunc(f.tipDelay, func() {
		f.commitTipInput(gen, s)
	})
}

func (f *Form) commitTipInput(gen uint64, s string) {
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || p < 0 || p > 100 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tipGen != gen {
		return
	}
	f.state.TipPercentage = p
}

// cancelTipCommitLocked invalidates any scheduled tip commit. Stopping the
// timer alone is not enough: a callback that already fired may be waiting on
// mu, so the generation bump is what makes it drop its value.
// Callers must hold mu.
func (f *Form) cancelTipCommitLocked() {
	f.tipGen++
	if f.tipTimer != nil {
		f.tipTimer.Stop()
		f.tipTimer = nil
	}
}

// AddPerson appends a person with a fresh id and empty fields, returning it.
func (f *Form) AddPerson() models.Person {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := newPerson()
	f.state.People = append(f.state.People, p)
	return p
}

func newPerson() models.Person {
	return models.Person{ID: uuid.New().String()}
}

// UpdatePersonName sets the name of the person with the given id.
func (f *Form) UpdatePersonName(id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.state.People {
		if f.state.People[i].ID == id {
			f.state.People[i].Name = name
			return nil
		}
	}
	return ErrPersonNotFound
}

// UpdatePersonPercentage sets the percentage text of the person with the
// given id.
func (f *Form) UpdatePersonPercentage(id, percentage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.state.People {
		if f.state.People[i].ID == id {
			f.state.People[i].Percentage = percentage
			return nil
		}
	}
	return ErrPersonNotFound
}

// RemovePerson deletes the person with the given id. Removing the last
// remaining person is rejected with ErrLastPerson.
func (f *Form) RemovePerson(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.state.People) <= 1 {
		return ErrLastPerson
	}
	for i := range f.state.People {
		if f.state.People[i].ID == id {
			f.state.People = append(f.state.People[:i], f.state.People[i+1:]...)
			return nil
		}
	}
	return ErrPersonNotFound
}

// ApplySuggestion feeds an AI suggestion into the tip percentage and records
// it for display. A pending debounced commit is cancelled so it cannot
// overwrite the applied value.
func (f *Form) ApplySuggestion(res models.SuggestionResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTipCommitLocked()
	f.state.TipPercentage = res.SuggestedTipPercentage
	f.suggestion = &res
}

// ClearSuggestion drops the recorded suggestion, e.g. when a new request
// starts.
func (f *Form) ClearSuggestion() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestion = nil
}

// Suggestion returns the last applied suggestion, or nil.
func (f *Form) Suggestion() *models.SuggestionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.suggestion == nil {
		return nil
	}
	s := *f.suggestion
	return &s
}

// State returns a copy of the current form state.
func (f *Form) State() models.BillState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.state
	st.People = append([]models.Person(nil), f.state.People...)
	return st
}

// Snapshot recomputes the derived state for the current inputs.
func (f *Form) Snapshot() (calculator.Input, calculator.Result) {
	st := f.State()
	in := calculator.Input{
		BillAmount:    st.BillAmount,
		TipPercentage: st.TipPercentage,
		DivisionMode:  st.DivisionMode,
		SplitCount:    st.SplitCount,
		People:        st.People,
	}
	return in, calculator.Compute(in)
}
