package intake

// UpdateFieldsRequest carries one or more field changes keyed by wire name.
type UpdateFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// NextSteps is shown to the visitor after a successful submission.
var NextSteps = []string{
	"We review your intake form and prepare for your consultation",
	"We'll email you to schedule a convenient time to talk",
	"During the call, we'll discuss your needs and create a plan",
}

const (
	SubmitSuccessMessage = "Intake form submitted successfully!"
	SubmitFailureMessage = "Failed to submit form. Please try again."
)

// SubmitResponse is returned by a successful submit.
type SubmitResponse struct {
	Message   string   `json:"message"`
	IntakeID  int64    `json:"intake_id"`
	NextSteps []string `json:"next_steps"`
}

// CatalogResponse lists the wizard steps and the option lists.
type CatalogResponse struct {
	Steps   []StepDefinition `json:"steps"`
	Options *Catalog         `json:"options"`
}

// IntakeResponse is the admin view of a stored intake.
type IntakeResponse struct {
	*Intake
	ServicesNeeded []string `json:"services_needed"`
	Files          []string `json:"files"`
}

// IntakeListResponse is a page of stored intakes.
type IntakeListResponse struct {
	Intakes []IntakeResponse `json:"intakes"`
	Total   int64            `json:"total"`
}

func toResponse(in *Intake) IntakeResponse {
	files := in.FileRefs()
	if files == nil {
		files = []string{}
	}
	return IntakeResponse{Intake: in, ServicesNeeded: in.Services(), Files: files}
}
