package services

import (
	"errors"
	"fmt"

	"github.com/princinho/todoapi/utils"
)

// Failure kinds. Callers test them with errors.Is; the HTTP layer maps each
// kind to one status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")

	ErrInvalidToken = utils.ErrInvalidToken
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
