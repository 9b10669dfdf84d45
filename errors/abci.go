package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that the
	// processing was successful and no error is returned.
	SuccessABCICode = 0

	// All unclassified errors that do not provide an ABCI code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// Errors without an ABCI code are internal: they get code 1 and, unless
// debug is set, a generic log. A recovered panic keeps its code but not
// the panic value, which may reveal handler internals. In debug mode
// every log is the full "%+v" formatting of err.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	case ErrPanic.Is(err):
		return code, ErrPanic.Error()
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain
// that carries one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact hides what ABCIInfo would hide: errors without a code and
// panic values become a generic internal error. Debug keeps err.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError is the inverse of ABCIInfo. It returns the registered error
// of the given code wrapped with the log, so that Is checks work on the
// client side. Unknown codes are reported as internal errors.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok {
		return Wrap(e, log)
	}
	return Wrapf(usedCodes[internalABCICode], "code %d: %s", code, log)
}
