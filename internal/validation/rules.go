package validation

import (
	"context"
	"fmt"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Env is what a rule may consult while checking a value.
type Env struct {
	Validate *validator.Validate
	Presence PresenceVerifier
	Input    Input
}

// Rule is a single constraint on a field.
type Rule interface {
	Name() string
	Check(ctx context.Context, env *Env, field string, value any) (bool, error)
	Message(field string, value any) string
}

// implicit rules run even when the field is absent or empty.
type implicit interface {
	implicit()
}

// FieldRules binds an ordered list of rules to a field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// RuleSet is the ordered list of field rules for a request.
type RuleSet []FieldRules

// On declares the rules for field.
func On(field string, rules ...Rule) FieldRules {
	return FieldRules{Field: field, Rules: rules}
}

// Attribute renders a field name the way messages show it.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

type marker string

func (m marker) Name() string { return string(m) }
func (m marker) Check(context.Context, *Env, string, any) (bool, error) {
	return true, nil
}
func (m marker) Message(string, any) string { return "" }

const (
	markerNullable  marker = "nullable"
	markerSometimes marker = "sometimes"
	markerBail      marker = "bail"
)

// Nullable lets a present null value skip the field's other rules.
func Nullable() Rule { return markerNullable }

// Sometimes only validates the field when it is present.
func Sometimes() Rule { return markerSometimes }

// Bail stops at the field's first failing rule.
func Bail() Rule { return markerBail }

type requiredRule struct{}

func (requiredRule) implicit()    {}
func (requiredRule) Name() string { return "required" }
func (requiredRule) Check(_ context.Context, _ *Env, _ string, value any) (bool, error) {
	return !isEmpty(value), nil
}
func (requiredRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s field is required.", Attribute(field))
}

// Required fails on absent or empty values.
func Required() Rule { return requiredRule{} }

type requiredWithoutRule struct {
	others []string
}

func (requiredWithoutRule) implicit()    {}
func (requiredWithoutRule) Name() string { return "required_without" }
func (r requiredWithoutRule) Check(_ context.Context, env *Env, _ string, value any) (bool, error) {
	for _, other := range r.others {
		if !env.Input.Filled(other) {
			return !isEmpty(value), nil
		}
	}
	return true, nil
}
func (r requiredWithoutRule) Message(field string, _ any) string {
	names := make([]string, len(r.others))
	for i, o := range r.others {
		names[i] = Attribute(o)
	}
	return fmt.Sprintf("The %s field is required when %s is not present.", Attribute(field), strings.Join(names, " / "))
}

// RequiredWithout requires the field whenever any of others is missing.
func RequiredWithout(others ...string) Rule { return requiredWithoutRule{others: others} }

type stringRule struct{}

func (stringRule) Name() string { return "string" }
func (stringRule) Check(_ context.Context, _ *Env, _ string, value any) (bool, error) {
	_, ok := value.(string)
	return ok, nil
}
func (stringRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s must be a string.", Attribute(field))
}

// String requires a string value.
func String() Rule { return stringRule{} }

type emailRule struct{}

func (emailRule) Name() string { return "email" }
func (emailRule) Check(_ context.Context, env *Env, _ string, value any) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	return env.Validate.Var(s, "email") == nil, nil
}
func (emailRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s must be a valid email address.", Attribute(field))
}

// Email requires a well-formed email address.
func Email() Rule { return emailRule{} }

type confirmedRule struct{}

func (confirmedRule) Name() string { return "confirmed" }
func (confirmedRule) Check(_ context.Context, env *Env, field string, value any) (bool, error) {
	other, ok := env.Input[field+"_confirmation"]
	return ok && reflect.DeepEqual(value, other), nil
}
func (confirmedRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s confirmation does not match.", Attribute(field))
}

// Confirmed requires a matching "<field>_confirmation" value.
func Confirmed() Rule { return confirmedRule{} }

type sizeKind int

const (
	sizeString sizeKind = iota
	sizeNumeric
	sizeFile
	sizeArray
	sizeUnknown
)

func sizeOf(value any) (sizeKind, any) {
	switch t := value.(type) {
	case nil:
		return sizeString, ""
	case string:
		return sizeString, t
	case *multipart.FileHeader:
		if t == nil {
			return sizeUnknown, nil
		}
		return sizeFile, float64(t.Size) / 1024
	case float64, float32, int, int64, int32:
		return sizeNumeric, t
	case []any:
		return sizeArray, t
	}
	return sizeUnknown, nil
}

type boundRule struct {
	name string
	tag  string
	n    int
}

func (r boundRule) Name() string { return r.name }
func (r boundRule) Check(_ context.Context, env *Env, _ string, value any) (bool, error) {
	kind, v := sizeOf(value)
	switch kind {
	case sizeString, sizeArray:
		return env.Validate.Var(v, fmt.Sprintf("%s=%d", r.tag, r.n)) == nil, nil
	case sizeFile, sizeNumeric:
		op := "lte"
		if r.tag == "min" {
			op = "gte"
		}
		return env.Validate.Var(v, fmt.Sprintf("%s=%d", op, r.n)) == nil, nil
	}
	return false, nil
}
func (r boundRule) Message(field string, value any) string {
	attr := Attribute(field)
	kind, _ := sizeOf(value)
	if r.tag == "max" {
		switch kind {
		case sizeString:
			return fmt.Sprintf("The %s must not be greater than %d characters.", attr, r.n)
		case sizeFile:
			return fmt.Sprintf("The %s must not be greater than %d kilobytes.", attr, r.n)
		case sizeArray:
			return fmt.Sprintf("The %s must not have more than %d items.", attr, r.n)
		}
		return fmt.Sprintf("The %s must not be greater than %d.", attr, r.n)
	}
	switch kind {
	case sizeString:
		return fmt.Sprintf("The %s must be at least %d characters.", attr, r.n)
	case sizeFile:
		return fmt.Sprintf("The %s must be at least %d kilobytes.", attr, r.n)
	case sizeArray:
		return fmt.Sprintf("The %s must have at least %d items.", attr, r.n)
	}
	return fmt.Sprintf("The %s must be at least %d.", attr, r.n)
}

// Max bounds string length in characters, file size in kilobytes, numbers
// by value and lists by item count.
func Max(n int) Rule { return boundRule{name: "max", tag: "max", n: n} }

// Min is the lower-bound counterpart of Max.
func Min(n int) Rule { return boundRule{name: "min", tag: "min", n: n} }
