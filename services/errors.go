package services

import "errors"

// ErrInvalidArgument is returned for input the core cannot price, such as an
// unknown room type or a missing request. Handlers translate it into 400.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrExternalSourceUnavailable is returned when competitor data cannot be
// read. Handlers translate it into 500 without exposing the cause.
var ErrExternalSourceUnavailable = errors.New("external source unavailable")
