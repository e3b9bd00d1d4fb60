package intake

import "errors"

var (
	ErrUnknownField        = errors.New("unknown intake field")
	ErrUnknownOption       = errors.New("value is not one of the allowed options")
	ErrNotEditable         = errors.New("intake can no longer be edited")
	ErrIncomplete          = errors.New("intake is missing required fields")
	ErrSubmissionInFlight  = errors.New("submission already in progress")
	ErrAlreadySubmitted    = errors.New("intake already submitted")
	ErrSessionNotFound     = errors.New("intake session not found")
	ErrTooManySessions     = errors.New("too many open intake sessions")
	ErrStagingFull         = errors.New("attachment staging capacity reached")
	ErrIntakeNotFound      = errors.New("intake not found")
	ErrPersistFailed       = errors.New("failed to save intake")
	ErrDuplicateSubmission = errors.New("intake submission already stored")
)
