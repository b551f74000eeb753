package application

import "errors"

// Sentinel errors for application operations. A missing task is reported
// with task.ErrTaskNotFound.
var (
	// ErrApplicationFieldsRequired is returned when the applicant name or message is blank.
	ErrApplicationFieldsRequired = errors.New("name and message are required to apply")

	// ErrInvalidOffer is returned when an offer budget is given but is not a number.
	ErrInvalidOffer = errors.New("offer budget must be a number")
)
