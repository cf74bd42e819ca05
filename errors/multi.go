package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned.
// If only one non-nil error is provided, it is returned unchanged.
// Otherwise a multi error is returned that allows to inspect each of the
// errors using the Unpack method. Multi errors are flattened.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, err)
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a collection of errors reported together. The first error
// is considered the cause, consistent with a fail-fast approach.
type multiErr []error

var (
	_ causer   = multiErr(nil)
	_ unpacker = multiErr(nil)
	_ coder    = multiErr(nil)
)

func (m multiErr) Error() string {
	if len(m) == 1 {
		return m[0].Error()
	}
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(points, "\n\t"))
}

// Cause returns the first error.
func (m multiErr) Cause() error {
	if len(m) == 0 {
		return nil
	}
	return m[0]
}

// Unpack returns all errors this multi error is made of.
func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error.
func (m multiErr) Code() uint32 {
	if len(m) == 0 {
		return SuccessCode
	}
	return errCode(m[0])
}

// unpacker is implemented by errors that are a collection of other errors.
type unpacker interface {
	Unpack() []error
}
