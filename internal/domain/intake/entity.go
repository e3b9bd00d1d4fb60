package intake

import (
	"time"

	"leaddesk/internal/pkg/sanitize"
	"leaddesk/internal/pkg/utils"
)

const StatusNew = "new"

// Intake is a submitted intake form as stored in the intakes table.
type Intake struct {
	ID           int64  `gorm:"column:id;primaryKey" json:"id"`
	SubmissionID string `gorm:"column:submission_id;size:64;uniqueIndex" json:"submission_id"`

	LegalName     string  `gorm:"column:legal_name;not null" json:"legal_name"`
	DBA           *string `gorm:"column:dba" json:"dba,omitempty"`
	Industry      string  `gorm:"column:industry;not null" json:"industry"`
	EntityType    string  `gorm:"column:entity_type;not null" json:"entity_type"`
	StateProvince string  `gorm:"column:state_province;not null" json:"state_province"`
	Country       string  `gorm:"column:country;not null" json:"country"`

	ContactName  string  `gorm:"column:contact_name;not null" json:"contact_name"`
	ContactEmail string  `gorm:"column:contact_email;not null;index" json:"contact_email"`
	ContactPhone *string `gorm:"column:contact_phone" json:"contact_phone,omitempty"`

	AccountingPlatform string  `gorm:"column:accounting_platform;not null" json:"accounting_platform"`
	BankAccounts       string  `gorm:"column:bank_accounts;not null" json:"bank_accounts"`
	CreditCards        *string `gorm:"column:credit_cards" json:"credit_cards,omitempty"`
	MerchantAccounts   *string `gorm:"column:merchant_accounts" json:"merchant_accounts,omitempty"`
	TransactionVolume  string  `gorm:"column:transaction_volume;not null" json:"transaction_volume"`

	ServicesJSON string  `gorm:"column:services_needed;type:text;not null" json:"-"`
	Notes        *string `gorm:"column:notes" json:"notes,omitempty"`
	FileRefsJSON *string `gorm:"column:file_urls;type:text" json:"-"`

	Status    string    `gorm:"column:status;not null;default:new" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Intake) TableName() string { return "intakes" }

// Services decodes the requested service codes.
func (i *Intake) Services() []string {
	return utils.JSONToList(i.ServicesJSON)
}

// FileRefs decodes the stored attachment references. Nil means none.
func (i *Intake) FileRefs() []string {
	if i.FileRefsJSON == nil {
		return nil
	}
	return utils.JSONToList(*i.FileRefsJSON)
}

// newIntake builds the row for rec. Free text is stripped of markup and
// empty optional values become NULL.
func newIntake(submissionID string, rec Record, fileRefs []string, now time.Time) *Intake {
	in := &Intake{
		SubmissionID:       submissionID,
		LegalName:          sanitize.Text(rec.LegalName),
		DBA:                optional(rec.DBA),
		Industry:           rec.Industry,
		EntityType:         rec.EntityType,
		StateProvince:      sanitize.Text(rec.StateProvince),
		Country:            rec.Country,
		ContactName:        sanitize.Text(rec.ContactName),
		ContactEmail:       sanitize.Text(rec.ContactEmail),
		ContactPhone:       optional(rec.ContactPhone),
		AccountingPlatform: rec.AccountingPlatform,
		BankAccounts:       sanitize.Text(rec.BankAccounts),
		CreditCards:        optional(rec.CreditCards),
		MerchantAccounts:   optional(rec.MerchantAccounts),
		TransactionVolume:  rec.TransactionVolume,
		ServicesJSON:       utils.ListToJSON(rec.ServicesNeeded),
		Notes:              optional(rec.Notes),
		Status:             StatusNew,
		CreatedAt:          now,
	}
	if in.Country == "" {
		in.Country = DefaultCountry
	}
	if refs := utils.ListToJSON(fileRefs); refs != "" {
		in.FileRefsJSON = &refs
	}
	return in
}

func optional(s string) *string {
	clean := sanitize.Text(s)
	if clean == "" {
		return nil
	}
	return &clean
}
