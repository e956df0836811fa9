package normalizer

import (
	"errors"
	"fmt"
	"regexp"

	"osmclean/internal/rules"
)

// ErrInvalidPostcode is returned when a postcode value holds no ZIP code.
var ErrInvalidPostcode = errors.New("postcode does not contain a valid ZIP code")

// Validator checks tag values against the expected formats.
type Validator struct {
	postcode *regexp.Regexp
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{postcode: rules.PostcodePattern}
}

// Postcode returns the first ZIP code found in value.
func (v *Validator) Postcode(value string) (string, error) {
	match := v.postcode.FindString(value)
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPostcode, value)
	}

	return match, nil
}
