package intake

import "strings"

// Field identifies one scalar field of the intake record. The set is closed;
// requested services are edited through ToggleService instead.
type Field string

const (
	FieldLegalName          Field = "legal_name"
	FieldDBA                Field = "dba"
	FieldIndustry           Field = "industry"
	FieldEntityType         Field = "entity_type"
	FieldStateProvince      Field = "state_province"
	FieldCountry            Field = "country"
	FieldContactName        Field = "contact_name"
	FieldContactEmail       Field = "contact_email"
	FieldContactPhone       Field = "contact_phone"
	FieldAccountingPlatform Field = "accounting_platform"
	FieldBankAccounts       Field = "bank_accounts"
	FieldCreditCards        Field = "credit_cards"
	FieldMerchantAccounts   Field = "merchant_accounts"
	FieldTransactionVolume  Field = "transaction_volume"
	FieldNotes              Field = "notes"
)

// Fields lists every editable scalar field in form order.
var Fields = []Field{
	FieldLegalName, FieldDBA, FieldIndustry, FieldEntityType, FieldStateProvince, FieldCountry,
	FieldContactName, FieldContactEmail, FieldContactPhone,
	FieldAccountingPlatform, FieldBankAccounts, FieldCreditCards, FieldMerchantAccounts, FieldTransactionVolume,
	FieldNotes,
}

// ParseField maps a wire name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(strings.TrimSpace(name))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

const DefaultCountry = "USA"

// Record is the visitor's intake answers.
type Record struct {
	// Business info
	LegalName     string `json:"legal_name"`
	DBA           string `json:"dba"`
	Industry      string `json:"industry"`
	EntityType    string `json:"entity_type"`
	StateProvince string `json:"state_province"`
	Country       string `json:"country"`

	// Primary contact
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	// Accounting setup
	AccountingPlatform string `json:"accounting_platform"`
	BankAccounts       string `json:"bank_accounts"`
	CreditCards        string `json:"credit_cards"`
	MerchantAccounts   string `json:"merchant_accounts"`
	TransactionVolume  string `json:"transaction_volume"`

	// Services & notes
	ServicesNeeded []string `json:"services_needed"`
	Notes          string   `json:"notes"`
}

// NewRecord returns an empty record with form defaults applied.
func NewRecord() Record {
	return Record{Country: DefaultCountry, ServicesNeeded: []string{}}
}

func (r *Record) ref(f Field) *string {
	switch f {
	case FieldLegalName:
		return &r.LegalName
	case FieldDBA:
		return &r.DBA
	case FieldIndustry:
		return &r.Industry
	case FieldEntityType:
		return &r.EntityType
	case FieldStateProvince:
		return &r.StateProvince
	case FieldCountry:
		return &r.Country
	case FieldContactName:
		return &r.ContactName
	case FieldContactEmail:
		return &r.ContactEmail
	case FieldContactPhone:
		return &r.ContactPhone
	case FieldAccountingPlatform:
		return &r.AccountingPlatform
	case FieldBankAccounts:
		return &r.BankAccounts
	case FieldCreditCards:
		return &r.CreditCards
	case FieldMerchantAccounts:
		return &r.MerchantAccounts
	case FieldTransactionVolume:
		return &r.TransactionVolume
	case FieldNotes:
		return &r.Notes
	}
	return nil
}

// Get returns the value of f, or "" for an unknown field.
func (r Record) Get(f Field) string {
	if p := r.ref(f); p != nil {
		return *p
	}
	return ""
}

func (r *Record) set(f Field, value string) error {
	p := r.ref(f)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	return nil
}

// HasService reports whether code is in the requested-services set.
func (r Record) HasService(code string) bool {
	for _, s := range r.ServicesNeeded {
		if s == code {
			return true
		}
	}
	return false
}

func (r *Record) toggleService(code string) {
	for i, s := range r.ServicesNeeded {
		if s == code {
			r.ServicesNeeded = append(r.ServicesNeeded[:i:i], r.ServicesNeeded[i+1:]...)
			return
		}
	}
	r.ServicesNeeded = append(r.ServicesNeeded, code)
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := r
	out.ServicesNeeded = append([]string{}, r.ServicesNeeded...)
	return out
}

// Complete reports whether every step predicate holds.
func (r Record) Complete() bool {
	for _, s := range Steps {
		if !s.Valid(r) {
			return false
		}
	}
	return true
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
