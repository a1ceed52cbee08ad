package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration reports a store that cannot collect with its current
	// setup: no driver, or a driver lacking a requested capability.
	ErrConfiguration = errors.New("coverage configuration error")
	// ErrInvalidInput reports a malformed expectation argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingExpectation is returned when covers are forced but none were declared.
	ErrMissingExpectation = errors.New("test declares no covered code")
	// ErrExpectationNotMet is returned when declared code never executed.
	ErrExpectationNotMet = errors.New("declared code was not executed")
	// ErrUnintentionallyCovered is returned when execution reached undeclared code.
	ErrUnintentionallyCovered = errors.New("undeclared code was executed")
	// ErrNotFound is returned by the filter for paths that do not exist.
	ErrNotFound = errors.New("path not found")
	// ErrBracketOpen is returned by Start while a bracket is already open.
	ErrBracketOpen = errors.New("coverage bracket already open")
	// ErrNoBracket is returned by Stop without a matching Start.
	ErrNoBracket = errors.New("no coverage bracket open")
)

// UnintentionallyCoveredError lists the code units that ran outside the
// declared expectation.
type UnintentionallyCoveredError struct {
	Units []string
}

func (e *UnintentionallyCoveredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnintentionallyCovered, strings.Join(e.Units, ", "))
}

func (e *UnintentionallyCoveredError) Unwrap() error {
	return ErrUnintentionallyCovered
}

// ExpectationNotMetError lists the declared code units that never ran.
type ExpectationNotMetError struct {
	Missing []string
}

func (e *ExpectationNotMetError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExpectationNotMet, strings.Join(e.Missing, ", "))
}

func (e *ExpectationNotMetError) Unwrap() error {
	return ErrExpectationNotMet
}
