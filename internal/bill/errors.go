package bill

import "errors"

// Validation errors returned by Session operations. The service layer maps them
// to InvalidArgument, NotFound or FailedPrecondition.
var (
	ErrEmptyName              = errors.New("participant name cannot be empty")
	ErrNameTooLong            = errors.New("participant name is too long")
	ErrDuplicateName          = errors.New("a participant with this name already exists")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrParticipantInUse       = errors.New("can't remove participant who is part of an expense")
	ErrEmptyDescription       = errors.New("please enter a description")
	ErrInvalidAmount          = errors.New("please enter a valid amount")
	ErrNoParticipantsSelected = errors.New("please select at least one participant to split with")
	ErrUnknownPayer           = errors.New("payer is not a participant")
	ErrUnknownParticipant     = errors.New("selected participant is not part of the bill")
	ErrDuplicateSelection     = errors.New("participant selected more than once")
	ErrInvalidShare           = errors.New("invalid amount")
	ErrSplitMismatch          = errors.New("the sum of custom amounts doesn't match the expense total")
	ErrExpenseNotFound        = errors.New("expense not found")
	ErrInvalidDate            = errors.New("date must be formatted as YYYY-MM-DD")
)
