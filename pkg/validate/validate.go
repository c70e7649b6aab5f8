// Package validate holds the form checks the presentation layer runs before
// calling into the session and listing services.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var emailRx = regexp.MustCompile(`\S+@\S+\.\S+`)

var phoneRx = regexp.MustCompile(`^[0-9]{10}$`)

const minPasswordLength = 6

func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func Email(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRx.MatchString(v) {
		return fmt.Errorf("please enter a valid email")
	}
	return nil
}

func Password(v string) error {
	if v == "" {
		return fmt.Errorf("password is required")
	}
	if len(v) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// Phone accepts ten digits once whitespace is removed.
func Phone(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("phone number is required")
	}
	if !phoneRx.MatchString(strings.Join(strings.Fields(v), "")) {
		return fmt.Errorf("please enter a valid 10-digit phone number")
	}
	return nil
}

// Positive rejects zero, negatives, NaN and infinities.
func Positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("please enter a valid %s", field)
	}
	return nil
}

// Months accepts a reservation length of at least one month.
func Months(v int) error {
	if v < 1 {
		return fmt.Errorf("please enter at least 1 month")
	}
	return nil
}
