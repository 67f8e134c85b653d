package wallet

import "thriftsave/internal/pkg/apperr"

var (
	ErrInvalidAmount         = apperr.ValidationField("amount", "amount must be positive")
	ErrInvalidTxnType        = apperr.ValidationField("type", "unknown transaction type")
	ErrInsufficientFunds     = apperr.Validation("insufficient balance")
	ErrDuplicateReference    = apperr.Conflict("transaction reference already used")
	ErrPayoutAccountRequired = apperr.Validation("add a payout account before withdrawing")
	ErrPayoutAccountNotFound = apperr.NotFound("payout account not found")
	ErrInvalidAccountNumber  = apperr.ValidationField("account_number", "account number must be 10 digits")
)
