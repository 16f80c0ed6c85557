package service

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation error")

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
