package intake

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillStep1(t *testing.T, w *Wizard) {
	t.Helper()
	for f, v := range map[Field]string{
		FieldLegalName:     "Acme LLC",
		FieldIndustry:      "ecommerce",
		FieldEntityType:    "llc",
		FieldStateProvince: "TX",
		FieldContactName:   "Jane Doe",
		FieldContactEmail:  "jane@acme.com",
	} {
		require.NoError(t, w.Update(f, v))
	}
}

func fillStep2(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Update(FieldAccountingPlatform, "quickbooks"))
	require.NoError(t, w.Update(FieldBankAccounts, "Chase checking"))
	require.NoError(t, w.Update(FieldTransactionVolume, "50-100"))
}

// readyWizard returns a wizard on the last step with a complete record.
func readyWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard()
	fillStep1(t, w)
	require.True(t, w.Advance())
	fillStep2(t, w)
	require.True(t, w.Advance())
	require.NoError(t, w.ToggleService("monthly"))
	return w
}

func TestWizard_Defaults(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StateBusinessInfo, w.State())
	assert.Equal(t, 1, w.Step().Number)
	assert.Equal(t, "USA", w.Record().Country)
	assert.Empty(t, w.Record().ServicesNeeded)
	assert.True(t, w.Editable())
}

func TestWizard_AdvanceGatedByStep(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.Update(FieldLegalName, "Acme LLC"))
	require.NoError(t, w.Update(FieldIndustry, "ecommerce"))

	assert.False(t, w.CanAdvance())
	assert.False(t, w.Advance())
	assert.Equal(t, StateBusinessInfo, w.State())

	fillStep1(t, w)
	assert.True(t, w.Advance())
	assert.Equal(t, StateAccountingSetup, w.State())

	assert.False(t, w.Advance())
	fillStep2(t, w)
	assert.True(t, w.Advance())
	assert.Equal(t, StateServicesNotes, w.State())

	// The last step only moves forward through submission.
	require.NoError(t, w.ToggleService("monthly"))
	assert.False(t, w.Advance())
	assert.Equal(t, StateServicesNotes, w.State())
}

func TestWizard_WhitespaceCountsAsEmpty(t *testing.T) {
	w := NewWizard()
	fillStep1(t, w)
	require.NoError(t, w.Update(FieldContactEmail, "   "))
	assert.False(t, w.Advance())
}

func TestWizard_MarkupOnlyCountsAsEmpty(t *testing.T) {
	w := NewWizard()
	fillStep1(t, w)
	require.NoError(t, w.Update(FieldLegalName, "<br>"))
	assert.Empty(t, w.Record().LegalName)
	assert.False(t, w.Advance())

	require.NoError(t, w.Update(FieldLegalName, "Acme LLC"))
	require.NoError(t, w.Update(FieldContactName, "<img src=x>"))
	assert.False(t, w.Advance())
	assert.Equal(t, StateBusinessInfo, w.State())
}

func TestWizard_UpdateStripsMarkup(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.Update(FieldLegalName, "  Acme <script>alert(1)</script>& Sons "))
	require.NoError(t, w.Update(FieldNotes, `<a href="http://evil">click</a>`))

	assert.Equal(t, "Acme & Sons", w.Record().LegalName)
	assert.Equal(t, "click", w.Record().Notes)
}

func TestWizard_RetreatKeepsValues(t *testing.T) {
	w := readyWizard(t)
	require.NoError(t, w.Update(FieldNotes, "Behind since March"))
	before := w.Record()

	assert.True(t, w.Retreat())
	assert.True(t, w.Retreat())
	assert.False(t, w.Retreat())
	assert.Equal(t, StateBusinessInfo, w.State())

	assert.True(t, w.Advance())
	assert.True(t, w.Advance())
	if diff := cmp.Diff(before, w.Record()); diff != "" {
		t.Fatalf("record changed across retreat/advance (-before +after):\n%s", diff)
	}
}

func TestWizard_ToggleServicePreservesOrder(t *testing.T) {
	w := NewWizard()
	for _, code := range []string{"monthly", "payroll", "reports"} {
		require.NoError(t, w.ToggleService(code))
	}
	require.NoError(t, w.ToggleService("payroll"))
	assert.Equal(t, []string{"monthly", "reports"}, w.Record().ServicesNeeded)

	require.NoError(t, w.ToggleService("payroll"))
	assert.Equal(t, []string{"monthly", "reports", "payroll"}, w.Record().ServicesNeeded)

	assert.ErrorIs(t, w.ToggleService("  "), ErrUnknownOption)
}

func TestWizard_RecordIsACopy(t *testing.T) {
	w := NewWizard()
	require.NoError(t, w.ToggleService("monthly"))
	rec := w.Record()
	rec.ServicesNeeded[0] = "cleanup"
	assert.Equal(t, []string{"monthly"}, w.Record().ServicesNeeded)
}

func TestWizard_BeginSubmit(t *testing.T) {
	w := NewWizard()
	_, err := w.BeginSubmit()
	assert.ErrorIs(t, err, ErrIncomplete)

	w = readyWizard(t)
	require.True(t, w.CanSubmit())
	rec, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "Acme LLC", rec.LegalName)
	assert.Equal(t, StateSubmitting, w.State())

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	assert.ErrorIs(t, w.Update(FieldNotes, "late edit"), ErrNotEditable)
	assert.ErrorIs(t, w.ToggleService("payroll"), ErrNotEditable)
	assert.False(t, w.Retreat())
	assert.False(t, w.Advance())
}

func TestWizard_FinishSubmitFailureKeepsRecord(t *testing.T) {
	w := readyWizard(t)
	before := w.Record()
	_, err := w.BeginSubmit()
	require.NoError(t, err)

	w.FinishSubmit(errors.New("insert failed"))

	assert.Equal(t, StateServicesNotes, w.State())
	assert.True(t, w.Editable())
	assert.Empty(t, cmp.Diff(before, w.Record()))

	_, err = w.BeginSubmit()
	assert.NoError(t, err)
}

func TestWizard_FinishSubmitSuccessIsTerminal(t *testing.T) {
	w := readyWizard(t)
	_, err := w.BeginSubmit()
	require.NoError(t, err)

	w.FinishSubmit(nil)

	assert.Equal(t, StateSubmitted, w.State())
	assert.False(t, w.Editable())
	assert.Empty(t, w.Record().LegalName)

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, w.Update(FieldNotes, "x"), ErrNotEditable)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("transaction_volume")
	require.NoError(t, err)
	assert.Equal(t, FieldTransactionVolume, f)

	_, err = ParseField("services_needed")
	assert.ErrorIs(t, err, ErrUnknownField)
}
