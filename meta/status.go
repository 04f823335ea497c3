package meta

import (
	"fmt"

	"github.com/youtNa/doris/utils"
)

// StatusCode is the application-level result code of the metadata
// service, distinct from transport failures.
type StatusCode int32

const (
	StatusOK StatusCode = iota
	StatusInvalidArgument
	StatusNotFound
	StatusInternalError
)

var statusNames = map[StatusCode]string{
	StatusOK:              "OK",
	StatusInvalidArgument: "INVALID_ARGUMENT",
	StatusNotFound:        "NOT_FOUND",
	StatusInternalError:   "INTERNAL_ERROR",
}

func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}

	return fmt.Sprintf("StatusCode(%d)", int32(c))
}

type Status struct {
	Code    StatusCode
	Message string
}

func OK() Status { return Status{Code: StatusOK, Message: "succeeded"} }

// Err converts a non-success status into an error carrying the remote
// message verbatim.
func (s Status) Err() error {
	if s.Code == StatusOK {
		return nil
	}

	return fmt.Errorf("%s: %s: %w", s.Code, s.Message, utils.ErrRemoteFailure)
}
