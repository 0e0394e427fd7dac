package utils

import (
	"errors"
	"fmt"
)

// Error groups. Every specific error below wraps exactly one of them so callers
// can branch on the group with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConflict       = errors.New("conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrProvider       = errors.New("payment provider error")
	ErrDatabaseError  = errors.New("database error")
)

var (
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	ErrInsufficientStock    = fmt.Errorf("%w: not enough stock", ErrInvalidRequest)
	ErrInvalidAmount        = fmt.Errorf("%w: malformed amount", ErrInvalidRequest)
	ErrInvalidQuantity      = fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
	ErrMissingPaymentTokens = fmt.Errorf("%w: cardToken and acceptanceToken are required", ErrInvalidRequest)
	ErrInvalidPage          = fmt.Errorf("%w: invalid page parameter", ErrInvalidRequest)
	ErrInvalidPageSize      = fmt.Errorf("%w: invalid page size parameter", ErrInvalidRequest)

	ErrTransactionProcessed = fmt.Errorf("%w: transaction already processed", ErrConflict)

	ErrInvalidSignature   = fmt.Errorf("%w: invalid webhook signature", ErrUnauthorized)
	ErrMissingReference   = fmt.Errorf("%w: webhook event reference missing", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)
