// Package cnpj validates and formats Brazilian CNPJ registry numbers.
package cnpj

import (
	"errors"
	"fmt"
)

// Length is the number of digits in a CNPJ, check digits included.
const Length = 14

var (
	ErrInvalidLength      = errors.New("cnpj must contain 14 digits")
	ErrAllDigitsEqual     = errors.New("cnpj digits are all equal")
	ErrCheckDigitMismatch = errors.New("cnpj check digit mismatch")
)

// ValidationError reports why a value is not a valid CNPJ.
// Kind is one of ErrInvalidLength, ErrAllDigitsEqual or ErrCheckDigitMismatch.
type ValidationError struct {
	Kind  error
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Message returns the text shown to the user next to the field.
func (e *ValidationError) Message() string {
	if errors.Is(e.Kind, ErrInvalidLength) {
		return "CNPJ deve conter 14 dígitos"
	}
	return "CNPJ inválido"
}

// Code is a stable identifier for the error kind, used in API responses.
func (e *ValidationError) Code() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidLength):
		return "INVALID_LENGTH"
	case errors.Is(e.Kind, ErrAllDigitsEqual):
		return "ALL_DIGITS_EQUAL"
	default:
		return "CHECK_DIGIT_MISMATCH"
	}
}

// Normalize drops every byte that is not an ASCII decimal digit.
func Normalize(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	return string(digits)
}

// Check returns nil when s is a valid CNPJ, with or without punctuation.
// An empty value is not an error: whether the field is required is up to the caller.
func Check(s string) error {
	if s == "" {
		return nil
	}

	digits := Normalize(s)
	if len(digits) != Length {
		return &ValidationError{Kind: ErrInvalidLength, Value: s}
	}

	if allEqual(digits) {
		return &ValidationError{Kind: ErrAllDigitsEqual, Value: s}
	}

	if checkDigit(digits[:12]) != digits[12] {
		return &ValidationError{Kind: ErrCheckDigitMismatch, Value: s}
	}
	if checkDigit(digits[:13]) != digits[13] {
		return &ValidationError{Kind: ErrCheckDigitMismatch, Value: s}
	}

	return nil
}

// Validate reports whether s passes Check.
func Validate(s string) bool {
	return Check(s) == nil
}

// checkDigit computes the mod-11 check digit for base.
// Weights run 2..9 from the rightmost digit and wrap back to 2.
func checkDigit(base string) byte {
	sum := 0
	weight := 2
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}

	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

func allEqual(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
