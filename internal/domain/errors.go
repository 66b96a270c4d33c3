package domain

import "errors"

// Sentinel errors for scheduling precondition failures. Every rejection the
// engine produces wraps exactly one of these; none of them is fatal.
var (
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrAccountExists      = errors.New("account already exists")
	ErrUnknownAccountType = errors.New("unknown account type")
	ErrUnknownPriority    = errors.New("unknown priority type")
	ErrGuestForbidden     = errors.New("guest accounts cannot create events")
	ErrStaffHighForbidden = errors.New("staff accounts cannot create high priority events")
	ErrEventExists        = errors.New("event already exists")
	ErrBusyOnDate         = errors.New("account is busy on that date")
	ErrEventNotFound      = errors.New("event does not exist")
	ErrAlreadyInvited     = errors.New("account was already invited")
	ErrAlreadyAttending   = errors.New("account already attending another event")
	ErrUnknownResponse    = errors.New("unknown event response")
	ErrNotInvited         = errors.New("account is not on the invitation list")
	ErrAlreadyResponded   = errors.New("account has already responded")
)

// OpError reports a failed precondition together with the account or event
// name the check tripped on, so the delivery layers can phrase the rejection
// without re-running the validation.
type OpError struct {
	Subject string
	Err     error
}

func (e *OpError) Error() string {
	if e.Subject == "" {
		return e.Err.Error()
	}
	return e.Subject + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// Rejected builds the OpError for a precondition failure on subject.
func Rejected(subject string, err error) *OpError {
	return &OpError{Subject: subject, Err: err}
}
