package intake

import (
	"strings"

	"leaddesk/internal/pkg/sanitize"
)

// State is the wizard's position in the intake flow.
type State string

const (
	StateBusinessInfo    State = "business_info"
	StateAccountingSetup State = "accounting_setup"
	StateServicesNotes   State = "services_notes"
	StateSubmitting      State = "submitting"
	StateSubmitted       State = "submitted"
)

type phase int

const (
	phaseEditing phase = iota
	phaseSubmitting
	phaseSubmitted
)

// Wizard is the form state controller: it owns the step index and the record,
// and only lets the visitor move forward past a step whose required fields
// are filled in. It is not safe for concurrent use; Session serializes access.
type Wizard struct {
	step   int // index into Steps
	phase  phase
	record Record
}

// NewWizard starts at the first step with an empty record.
func NewWizard() *Wizard {
	return &Wizard{record: NewRecord()}
}

// State returns the current step key, or submitting/submitted.
func (w *Wizard) State() State {
	switch w.phase {
	case phaseSubmitting:
		return StateSubmitting
	case phaseSubmitted:
		return StateSubmitted
	}
	return State(Steps[w.step].Key)
}

// Step returns the current step definition.
func (w *Wizard) Step() StepDefinition {
	return Steps[w.step]
}

// Record returns a copy of the answers collected so far.
func (w *Wizard) Record() Record {
	return w.record.Clone()
}

// Editable reports whether the record may still change.
func (w *Wizard) Editable() bool {
	return w.phase == phaseEditing
}

// CanAdvance reports whether the current step's predicate holds. Callers use
// it to enable or disable their "next" control.
func (w *Wizard) CanAdvance() bool {
	return w.Editable() && w.step < len(Steps)-1 && Steps[w.step].Valid(w.record)
}

// CanSubmit reports whether the wizard is on the last step with a complete record.
func (w *Wizard) CanSubmit() bool {
	return w.Editable() && w.step == len(Steps)-1 && w.record.Complete()
}

// Advance moves to the next step if the current one is valid and reports
// whether it moved. It is a no-op on the last step.
func (w *Wizard) Advance() bool {
	if !w.CanAdvance() {
		return false
	}
	w.step++
	return true
}

// Retreat moves to the previous step and reports whether it moved.
func (w *Wizard) Retreat() bool {
	if !w.Editable() || w.step == 0 {
		return false
	}
	w.step--
	return true
}

// Update sets a single field. Markup is stripped first, so the step checks
// see the value that will be stored.
func (w *Wizard) Update(f Field, value string) error {
	if !w.Editable() {
		return ErrNotEditable
	}
	return w.record.set(f, sanitize.Text(value))
}

// ToggleService adds code to the requested services, or removes it if present.
func (w *Wizard) ToggleService(code string) error {
	if !w.Editable() {
		return ErrNotEditable
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrUnknownOption
	}
	w.record.toggleService(code)
	return nil
}

// BeginSubmit freezes the record and marks a submission as in flight.
func (w *Wizard) BeginSubmit() (Record, error) {
	switch w.phase {
	case phaseSubmitting:
		return Record{}, ErrSubmissionInFlight
	case phaseSubmitted:
		return Record{}, ErrAlreadySubmitted
	}
	if !w.CanSubmit() {
		return Record{}, ErrIncomplete
	}
	w.phase = phaseSubmitting
	return w.record.Clone(), nil
}

// FinishSubmit settles an in-flight submission. On failure the wizard returns
// to the last step with every value intact; on success it becomes terminal
// and the record is dropped.
func (w *Wizard) FinishSubmit(err error) {
	if w.phase != phaseSubmitting {
		return
	}
	if err != nil {
		w.phase = phaseEditing
		return
	}
	w.phase = phaseSubmitted
	w.record = NewRecord()
}
