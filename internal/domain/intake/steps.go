package intake

// StepDefinition is one page of the intake wizard.
type StepDefinition struct {
	Number int               `json:"number"`
	Key    string            `json:"key"`
	Label  string            `json:"label"`
	Valid  func(Record) bool `json:"-"`
}

// Steps is the fixed wizard sequence.
var Steps = []StepDefinition{
	{
		Number: 1,
		Key:    string(StateBusinessInfo),
		Label:  "Business Info",
		Valid: func(r Record) bool {
			return filled(r.LegalName, r.Industry, r.EntityType, r.StateProvince, r.ContactName, r.ContactEmail)
		},
	},
	{
		Number: 2,
		Key:    string(StateAccountingSetup),
		Label:  "Accounting Setup",
		Valid: func(r Record) bool {
			return filled(r.AccountingPlatform, r.BankAccounts, r.TransactionVolume)
		},
	},
	{
		Number: 3,
		Key:    string(StateServicesNotes),
		Label:  "Services & Notes",
		Valid: func(r Record) bool {
			return len(r.ServicesNeeded) > 0
		},
	},
}
