// Package apperr holds the sentinel errors shared between the store layer and
// the HTTP handlers. Handlers translate them to status codes at the boundary.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidToken = errors.New("invalid token")
)
