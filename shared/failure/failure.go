// Package failure carries an HTTP status alongside an error message. Services
// return failures for outcomes the caller can act on; anything else becomes a
// 500 at the transport edge.
package failure

import (
	"errors"
	"net/http"

	"hotelos/shared/constant"

	"github.com/lib/pq"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps a validation error. It returns nil for a nil err.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "booking not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict reports a state the request cannot be applied to, such as an
// overlapping stay or a booking that is not checked in.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError marks err as a deliberate 500 whose message may be shown.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// FromDatabase turns unique and exclusion constraint violations into a
// Conflict with message and check violations into a BadRequest naming the
// constraint. Other errors are returned as they are.
func FromDatabase(err error, message string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeExclusionViolation:
		return Conflict(message)
	case constant.PqErrorCodeCheckViolation:
		return BadRequestFromString("value rejected by constraint " + pqErr.Constraint)
	default:
		return err
	}
}

// IsFailure reports whether err wraps a Failure.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}

// GetCode returns the status of the wrapped Failure, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the message of the wrapped Failure without the wrap
// prefixes added on the way up, or err.Error() when there is none.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}

func IsConflict(err error) bool {
	return GetCode(err) == http.StatusConflict
}

func IsNotFound(err error) bool {
	return GetCode(err) == http.StatusNotFound
}

func IsBadRequest(err error) bool {
	return GetCode(err) == http.StatusBadRequest
}
