package sim

import "errors"

// Trade rejections. A rejected trade leaves the ledger untouched; callers
// decide how to present the failure.
var (
	ErrNoSession            = errors.New("no active session")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings to sell")
	ErrUnresolvedPrice      = errors.New("no price in current snapshot")
)
