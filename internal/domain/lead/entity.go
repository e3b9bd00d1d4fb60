package lead

import "time"

// Status represents lead status
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
	StatusRejected  Status = "rejected"
	StatusLost      Status = "lost"
)

const SourceContactForm = "contact_form"

// Lead is a contact form submission as stored in the leads table.
type Lead struct {
	ID int64 `gorm:"column:id;primaryKey" json:"id"`

	// Contact person
	Name  string  `gorm:"column:name;not null" json:"name"`
	Email string  `gorm:"column:email;not null;index" json:"email"`
	Phone *string `gorm:"column:phone" json:"phone,omitempty"`

	// Business
	BusinessName    *string `gorm:"column:business_name" json:"business_name,omitempty"`
	RevenueRange    *string `gorm:"column:revenue_range" json:"revenue_range,omitempty"`
	BookkeepingTool *string `gorm:"column:bookkeeping_tool" json:"bookkeeping_tool,omitempty"`
	Message         *string `gorm:"column:message;type:text" json:"message,omitempty"`
	Source          string  `gorm:"column:source;not null" json:"source"`

	// Lead management
	Status          Status     `gorm:"column:status;not null;default:new;index" json:"status"`
	Notes           *string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	LastContactedAt *time.Time `gorm:"column:last_contacted_at" json:"last_contacted_at,omitempty"`
	FollowUpCount   int        `gorm:"column:follow_up_count;not null;default:0" json:"follow_up_count"`

	// Metadata
	IPAddress *string   `gorm:"column:ip_address" json:"-"`
	UserAgent *string   `gorm:"column:user_agent" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

// IsConverted returns true if lead became a client
func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}
