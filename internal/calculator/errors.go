package calculator

import (
	"errors"
	"fmt"
)

// Error kinds returned by Calculator operations. Match them with errors.Is.
var (
	ErrNotPowered       = errors.New("calculator is off")
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
	ErrNegativeRadicand = errors.New("cannot calculate square root of negative number")
	ErrUnknownOperation = errors.New("unknown operation")
)

// OperationError reports which operation failed and why.
type OperationError struct {
	Op   Operation
	Kind error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind.Error())
}

func (e *OperationError) Unwrap() error { return e.Kind }

func opError(op Operation, kind error) error {
	return &OperationError{Op: op, Kind: kind}
}
