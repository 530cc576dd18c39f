package web

import (
	"regexp"
	"strconv"
	"strings"
)

// formErrors collects validation failures keyed by field name, rendered
// inline next to the offending input.
type formErrors map[string]string

var formEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (fe formErrors) required(field, value string) {
	if _, taken := fe[field]; taken {
		return
	}
	if strings.TrimSpace(value) == "" {
		fe[field] = "This field is required"
	}
}

func (fe formErrors) email(field, value string) {
	if _, taken := fe[field]; taken {
		return
	}
	if !formEmailPattern.MatchString(strings.TrimSpace(value)) {
		fe[field] = "Enter a valid email address"
	}
}

func (fe formErrors) minLength(field, value string, n int) {
	if _, taken := fe[field]; taken {
		return
	}
	if len(value) < n {
		fe[field] = "Must be at least " + strconv.Itoa(n) + " characters"
	}
}

func (fe formErrors) maxLength(field, value string, n int) {
	if _, taken := fe[field]; taken {
		return
	}
	if len(value) > n {
		fe[field] = "Must not exceed " + strconv.Itoa(n) + " characters"
	}
}

// confirm checks the password confirmation field.
func (fe formErrors) confirm(field, password, confirmation string) {
	if _, taken := fe[field]; taken {
		return
	}
	if password != confirmation {
		fe[field] = "Passwords do not match"
	}
}

func (fe formErrors) valid() bool {
	return len(fe) == 0
}
