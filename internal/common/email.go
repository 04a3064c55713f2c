package common

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail trims raw and accepts a bare address only ("a@x.com", not
// "A <a@x.com>"). Failures wrap ErrInvalidArgument.
func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is not a valid address", ErrInvalidArgument)
	}
	return email, nil
}
