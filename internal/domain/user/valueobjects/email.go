package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, lowercase-normalized email address.
type Email struct {
	value string
}

func NewEmail(value string) (*Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if len(normalized) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if len(normalized) > 254 {
		return nil, fmt.Errorf("email exceeds maximum length")
	}
	if !emailPattern.MatchString(normalized) {
		return nil, fmt.Errorf("invalid email format: %s", value)
	}
	return &Email{value: normalized}, nil
}

func (e *Email) String() string { return e.value }

func (e *Email) Equals(other *Email) bool {
	if other == nil {
		return false
	}
	return e.value == other.value
}
