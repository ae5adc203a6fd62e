package exceptions

import (
	"errors"
	"fmt"
	"intake-service/internal/pkg/constvars"
	"runtime"
)

// ErrorKind classifies a failure independently of how the transport renders it.
type ErrorKind string

const (
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindLocked              ErrorKind = "LOCKED"
	KindAlreadyDiscontinued ErrorKind = "ALREADY_DISCONTINUED"
	KindIllegalTransition   ErrorKind = "ILLEGAL_TRANSITION"
	KindSyncFailure         ErrorKind = "SYNC_FAILURE"
	KindConflict            ErrorKind = "CONFLICT"
	KindUnauthorized        ErrorKind = "UNAUTHORIZED"
	KindTooManyRequests     ErrorKind = "TOO_MANY_REQUESTS"
	KindInternal            ErrorKind = "INTERNAL"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          ErrorKind  `json:"kind,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[len(e.Locations)-1]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with a classification. When err already
// carries locations they are kept so the full call path is logged.
func BuildNewCustomError(err error, statusCode int, kind ErrorKind, clientMessage, devMessage string) *CustomError {
	locations := []Location{getLocation(3)}
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())

		var inner *CustomError
		if errors.As(err, &inner) {
			locations = append(append([]Location{}, inner.Locations...), locations...)
		}
	}

	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kind,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
		Err:           err,
	}
}

// KindOf returns the outermost classification found in err's chain.
func KindOf(err error) ErrorKind {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
