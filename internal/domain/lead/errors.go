package lead

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrAlreadyConverted = errors.New("lead already converted")
	ErrSaveFailed       = errors.New("failed to save lead")
)
