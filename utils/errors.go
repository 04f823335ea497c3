package utils

import (
	"fmt"
)

var (
	ErrInvalidArgument      = fmt.Errorf("invalid argument")
	ErrDataTypeNotSupported = fmt.Errorf("data type not supported")
	ErrInvariantViolation   = fmt.Errorf("implementation error (invariant violation)")
	ErrRemoteFailure        = fmt.Errorf("remote service failure")
)
