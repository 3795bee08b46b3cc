// Package authflow implements the two-step passwordless sign-in flow:
// identifier validation, the session state machine sequencing the
// OTP / login / alias calls, and the mapping of call results to
// user-facing outcomes.
package authflow

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultIdentifierPattern is the allowed character class for the local
// part of an address. The effective pattern comes from configuration.
const DefaultIdentifierPattern = `^[A-Za-z0-9]+$`

var (
	ErrEmptyIdentifier   = errors.New("identifier must not be empty")
	ErrInvalidCharacters = errors.New("identifier may contain only letters and digits")
	ErrEmptyOTP          = errors.New("one-time passphrase must not be empty")
)

// Validator checks an identifier against the configured syntax rule.
// It is pure and synchronous; no network call happens before it passes.
type Validator struct {
	re *regexp.Regexp
}

func NewValidator(pattern string) (*Validator, error) {
	if pattern == "" {
		pattern = DefaultIdentifierPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling identifier pattern: %w", err)
	}
	return &Validator{re: re}, nil
}

// ValidateIdentifier returns nil when the identifier is acceptable,
// ErrEmptyIdentifier for the empty string and ErrInvalidCharacters for
// anything outside the allowed pattern.
func (v *Validator) ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if !v.re.MatchString(identifier) {
		return ErrInvalidCharacters
	}
	return nil
}
