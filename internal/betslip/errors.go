package betslip

import "errors"

// Validation errors are local: they are surfaced to the caller immediately and
// never reach the network.
var (
	ErrOutOfRange        = errors.New("number out of range")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient balance")

	ErrEmptySlip        = errors.New("at least one number must be selected")
	ErrRoundUnavailable = errors.New("betting is not available for this round")
)
