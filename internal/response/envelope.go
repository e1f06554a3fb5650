// Package response builds the uniform success/error envelopes returned by
// every endpoint.
package response

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	DefaultSuccessMessage = "Success"
	DefaultErrorMessage   = "Error"
)

// Envelope is implemented by Success and Error.
type Envelope interface {
	HTTPStatus() int
}

// Success is the envelope for a successful request.
type Success struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	StatusCode int    `json:"-"`
}

// HTTPStatus returns the status code the envelope is sent with.
func (s Success) HTTPStatus() int { return s.StatusCode }

// FailedRequest identifies the request that produced an error envelope.
type FailedRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Error is the envelope for a failed request. FirstError is always the first
// element of the flattened Errors, or nil when there is none.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	Errors        any           `json:"errors"`
	FirstError    *string       `json:"first_error"`
	FailedRequest FailedRequest `json:"failed_request"`
	StatusCode    int           `json:"-"`
}

// HTTPStatus returns the status code the envelope is sent with.
func (e Error) HTTPStatus() int { return e.StatusCode }

// NewSuccess builds a success envelope. Empty arguments fall back to
// "Success", an empty list and 200.
func NewSuccess(message string, data any, statusCode int) Success {
	if message == "" {
		message = DefaultSuccessMessage
	}
	if data == nil {
		data = []any{}
	}
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	return Success{
		Status:     StatusSuccess,
		Message:    message,
		Data:       data,
		StatusCode: statusCode,
	}
}

// NewError builds an error envelope for req. Empty arguments fall back to
// "Error", an empty list and 422.
func NewError(req FailedRequest, message string, errs any, statusCode int) Error {
	if message == "" {
		message = DefaultErrorMessage
	}
	if errs == nil {
		errs = []any{}
	}
	if statusCode == 0 {
		statusCode = http.StatusUnprocessableEntity
	}
	return Error{
		Status:        StatusError,
		Message:       message,
		Errors:        errs,
		FirstError:    FirstError(errs),
		FailedRequest: req,
		StatusCode:    statusCode,
	}
}

// Flattener is implemented by error collections that know their own order,
// such as validation errors keyed by field.
type Flattener interface {
	Flatten() []string
}

// FirstError returns the first flattened message of errs.
func FirstError(errs any) *string {
	flat := Flatten(errs)
	if len(flat) == 0 {
		return nil
	}
	first := flat[0]
	return &first
}

// Flatten collapses a nested error collection into a single ordered list of
// messages. Plain maps carry no order, so their keys are visited sorted.
func Flatten(v any) []string {
	var out []string
	flattenInto(&out, v)
	return out
}

func flattenInto(out *[]string, v any) {
	switch t := v.(type) {
	case nil:
		return
	case Flattener:
		*out = append(*out, t.Flatten()...)
		return
	case string:
		*out = append(*out, t)
		return
	case []string:
		*out = append(*out, t...)
		return
	case error:
		*out = append(*out, t.Error())
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		flattenInto(out, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			flattenInto(out, rv.Index(i).Interface())
		}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			flattenInto(out, rv.MapIndex(k).Interface())
		}
	default:
		*out = append(*out, fmt.Sprint(v))
	}
}
