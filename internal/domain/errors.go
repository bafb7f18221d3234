package domain

import "errors"

// Domain errors (no external dependencies). Infrastructure wraps storage
// failures with fmt.Errorf; business rules surface as these sentinels.
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDuplicate              = errors.New("duplicate resource")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrMissingTargetWarehouse = errors.New("transfer requires a target warehouse")
	ErrInsufficientStock      = errors.New("insufficient stock")
)
