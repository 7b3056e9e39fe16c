package fluidcard

import "errors"

// ErrInvalidConfiguration is returned when a configuration value can't
// produce a valid animation. Errors wrapping it name the offending field.
var ErrInvalidConfiguration = errors.New("invalid configuration")
