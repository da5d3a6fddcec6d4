// Package apperr carries the coded errors shared by every service.
package apperr

import "errors"

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
)

type coded struct {
	code Code
	msg  string
}

func (e coded) Error() string { return e.msg }
func (e coded) Code() Code    { return e.code }

func InvalidArgument(msg string) error { return coded{code: CodeInvalidArgument, msg: msg} }
func NotFound(msg string) error        { return coded{code: CodeNotFound, msg: msg} }

// CodeOf extracts the error code, or "" for plain errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
