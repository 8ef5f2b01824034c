package handlers

import (
	"net/mail"
	"net/url"

	"github.com/google/uuid"

	"coursedeck/internal/utils"
)

// Field validation mirrors the limits enforced at the API boundary: requests
// failing any rule are rejected with 400 and a structured error list before
// a handler runs any persistence call.

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func fieldErr(field, msg string) utils.FieldError {
	return utils.FieldError{Field: field, Message: msg}
}
