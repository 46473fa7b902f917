package bdd

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder is returned by [Builder.Build] when the variable order has
	// no variables.
	ErrEmptyOrder = errors.New("variable order is empty")

	// ErrEmptyVariable is returned by [Builder.Build] when the order contains
	// an empty variable name.
	ErrEmptyVariable = errors.New("variable name must not be empty")

	// ErrReservedVariable is returned by [Builder.Build] when the order uses a
	// terminal label ("0" or "1") as a variable name.
	ErrReservedVariable = errors.New("terminal label used as variable name")

	// ErrNilOracle is returned by [Builder.Build] when no oracle is given.
	ErrNilOracle = errors.New("oracle must not be nil")
)

// DuplicateVariableError reports a variable that appears more than once in an
// order.
type DuplicateVariableError struct {
	Name  string
	First int // position of the first occurrence
	Again int // position of the repeated occurrence
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("duplicate variable %q at positions %d and %d", e.Name, e.First, e.Again)
}

// OracleError reports that the oracle could not produce a value for a total
// assignment. The whole construction fails: a missing leaf would make every
// ancestor node wrong.
type OracleError struct {
	Assignment map[string]bool
	Bits       string // the assignment in order, as "0"/"1" characters
	Err        error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle failed on assignment %s: %v", e.Bits, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// ValidateOrder checks that order is non-empty and holds distinct, non-empty
// variable names.
func ValidateOrder(order []string) error {
	if len(order) == 0 {
		return ErrEmptyOrder
	}
	seen := make(map[string]int, len(order))
	for i, v := range order {
		if v == "" {
			return fmt.Errorf("position %d: %w", i, ErrEmptyVariable)
		}
		if v == FalseLabel || v == TrueLabel {
			return fmt.Errorf("position %d: %w: %q", i, ErrReservedVariable, v)
		}
		if j, ok := seen[v]; ok {
			return &DuplicateVariableError{Name: v, First: j, Again: i}
		}
		seen[v] = i
	}
	return nil
}
