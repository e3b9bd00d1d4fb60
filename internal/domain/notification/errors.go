package notification

import "errors"

var (
	ErrInvalidNotice = errors.New("notice requires a name and an email")
	ErrDelivery      = errors.New("notification delivery failed")
)
