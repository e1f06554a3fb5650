// Package validation checks request fields against declarative rule sets
// before a handler runs.
package validation

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator evaluates rule sets against request input.
type Validator struct {
	validate *validator.Validate
	presence PresenceVerifier
}

// New creates a Validator. presence may be nil when no rule set uses
// exists or unique.
func New(presence PresenceVerifier) *Validator {
	return &Validator{
		validate: validator.New(),
		presence: presence,
	}
}

// Validate checks in against rules. It returns nil when every field passes,
// a *ValidationError listing the failures, or any other error when a rule
// could not be evaluated.
//
// A field that is absent, holds a blank string, or holds null under
// Nullable is only checked by implicit rules (Required, RequiredWithout).
// Once an implicit rule fails the field's remaining rules are skipped.
func (v *Validator) Validate(ctx context.Context, in Input, rules RuleSet) error {
	env := &Env{Validate: v.validate, Presence: v.presence, Input: in}
	errs := NewErrors()

	for _, fr := range rules {
		value, present := in[fr.Field]
		if hasMarker(fr.Rules, markerSometimes) && !present {
			continue
		}
		nullable := hasMarker(fr.Rules, markerNullable)
		bail := hasMarker(fr.Rules, markerBail)

		for _, rule := range fr.Rules {
			if _, ok := rule.(marker); ok {
				continue
			}
			_, isImplicit := rule.(implicit)
			if !isImplicit && !validatable(value, present, nullable) {
				continue
			}

			ok, err := rule.Check(ctx, env, fr.Field, value)
			if err != nil {
				return fmt.Errorf("failed to evaluate %s on %s: %w", rule.Name(), fr.Field, err)
			}
			if ok {
				continue
			}
			errs.Add(fr.Field, rule.Message(fr.Field, value))
			if bail || isImplicit {
				break
			}
		}
	}

	if !errs.Empty() {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func validatable(value any, present, nullable bool) bool {
	if !present {
		return false
	}
	if s, ok := value.(string); ok && isEmpty(s) {
		return false
	}
	if value == nil && nullable {
		return false
	}
	return true
}

func hasMarker(rules []Rule, m marker) bool {
	for _, r := range rules {
		if mk, ok := r.(marker); ok && mk == m {
			return true
		}
	}
	return false
}
