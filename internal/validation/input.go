package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrMalformedBody is returned when the request body cannot be decoded.
var ErrMalformedBody = errors.New("malformed request body")

// Input is the field map of a request: query string merged with the body.
// Values are strings, numbers, bools, nil, nested JSON values or
// *multipart.FileHeader for uploads.
type Input map[string]any

// Has reports whether field was sent, even if empty.
func (in Input) Has(field string) bool {
	_, ok := in[field]
	return ok
}

// Filled reports whether field was sent with a non-empty value.
func (in Input) Filled(field string) bool {
	v, ok := in[field]
	return ok && !isEmpty(v)
}

// String returns field as a trimmed string, or "" when absent.
func (in Input) String(field string) string {
	v, ok := in[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// StringPtr returns nil when field is absent or empty.
func (in Input) StringPtr(field string) *string {
	if !in.Filled(field) {
		return nil
	}
	s := in.String(field)
	return &s
}

// File returns the uploaded file for field, if any.
func (in Input) File(field string) *multipart.FileHeader {
	fh, _ := in[field].(*multipart.FileHeader)
	return fh
}

// Only returns the subset of in named by rules.
func (in Input) Only(rules RuleSet) Input {
	out := make(Input, len(rules))
	for _, fr := range rules {
		if v, ok := in[fr.Field]; ok {
			out[fr.Field] = v
		}
	}
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case *multipart.FileHeader:
		return t == nil
	}
	return false
}

// InputFrom collects the request's fields: query parameters first, then
// JSON, urlencoded or multipart body fields on top.
func InputFrom(c *fiber.Ctx) (Input, error) {
	in := Input{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		in[string(k)] = string(v)
	})

	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		if len(c.Body()) == 0 {
			return in, nil
		}
		var body map[string]any
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		for k, v := range body {
			in[k] = v
		}
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		for k, vs := range form.Value {
			in[k] = formValue(vs)
		}
		for k, files := range form.File {
			if len(files) > 0 {
				in[k] = files[0]
			}
		}
	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			in[string(k)] = string(v)
		})
	}
	return in, nil
}

func formValue(vs []string) any {
	if len(vs) == 1 {
		return vs[0]
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
