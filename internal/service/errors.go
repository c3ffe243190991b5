package service

import "errors"

// ErrNoFieldsProvided is returned by partial updates that carry no field.
var ErrNoFieldsProvided = errors.New("no fields provided")
