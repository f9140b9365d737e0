// Package curated is a thin helper around the plain Go error type. We think
// of these errors as curated: a caller can test what kind of error it has
// received with Is()/Has() without string-matching the formatted message.
//
// Adapted from the teacher's errors package: the normalisation logic that
// drops a duplicated adjacent message part when errors are wrapped is kept
// verbatim, since it is the one genuinely subtle piece of the original.
package curated

import (
	"fmt"
	"strings"
)

// Values is the type used to specify arguments for a curated error.
type Values []interface{}

type curated struct {
	message string
	values  Values
}

// Errorf creates a new curated error.
func Errorf(message string, values ...interface{}) error {
	return curated{message: message, values: values}
}

// Error implements the go language error interface. The message chain is
// normalised so that adjacent duplicate parts (caused by wrapping a curated
// error inside another curated error with the same head) are collapsed.
func (er curated) Error() string {
	s := fmt.Errorf(er.message, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}
	return strings.Join(p, ": ")
}

// Head returns the leading part of the message, the part passed to Errorf
// before any interpolated values. If err is a plain (non-curated) error then
// Error() is returned instead.
func Head(err error) string {
	if er, ok := err.(curated); ok {
		return er.message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsAny reports whether err is a curated error of any kind.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is reports whether err is a curated error with the given head: its message
// is either exactly head or head followed by ": " and further detail.
func Is(err error, head string) bool {
	if err == nil {
		return false
	}
	er, ok := err.(curated)
	return ok && (er.message == head || strings.HasPrefix(er.message, head+": "))
}

// Has reports whether head appears anywhere in err's wrapped chain.
func Has(err error, head string) bool {
	if !IsAny(err) {
		return false
	}
	if Is(err, head) {
		return true
	}
	for _, v := range err.(curated).values {
		if e, ok := v.(error); ok && Has(e, head) {
			return true
		}
	}
	return false
}
