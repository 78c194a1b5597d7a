package model

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateStock = errors.New("duplicate stock")
	ErrUnknownStock   = errors.New("unknown stock")

	ErrInvalidSide     = fmt.Errorf("%w: side", ErrInvalidInput)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity", ErrInvalidInput)
	ErrInvalidPrice    = fmt.Errorf("%w: price", ErrInvalidInput)
)
