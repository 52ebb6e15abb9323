package services

import (
	"errors"
	"fmt"
)

// ErrNoOffer means the catalog has no flight for the route or no hotel under the
// requested nightly price.
var ErrNoOffer = errors.New("no suitable flights or hotels found")

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
