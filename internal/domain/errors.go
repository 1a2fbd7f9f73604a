package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrInvalidGoal            = errors.New("monthly goal must be a positive amount")
	ErrUnknownPlatform        = errors.New("unknown platform")
	ErrUnknownExpenseCategory = errors.New("unknown expense category")
	ErrNoteTooLong            = errors.New("note exceeds maximum length")
	ErrCorruptRecord          = errors.New("corrupt ledger record")
	ErrStorage                = errors.New("ledger storage failure")
)

// Validation constants
const (
	MaxExpenseNoteLength = 255
)
