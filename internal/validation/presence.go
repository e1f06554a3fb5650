package validation

import (
	"context"
	"fmt"
	"strings"
)

// PresenceQuery asks how many rows of Collection hold Value in Column,
// optionally leaving out the row whose IgnoreColumn equals IgnoreID.
type PresenceQuery struct {
	Collection   string
	Column       string
	Value        any
	IgnoreColumn string
	IgnoreID     any
}

// PresenceVerifier answers existence and uniqueness questions for the
// exists and unique rules.
type PresenceVerifier interface {
	Count(ctx context.Context, q PresenceQuery) (int64, error)
}

func scalar(value any) (any, bool) {
	switch t := value.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		if t == float64(int64(t)) {
			return int64(t), true
		}
		return t, true
	case int, int64, int32, bool:
		return t, true
	}
	return nil, false
}

type existsRule struct {
	collection string
	column     string
}

func (existsRule) Name() string { return "exists" }
func (r existsRule) Check(ctx context.Context, env *Env, _ string, value any) (bool, error) {
	v, ok := scalar(value)
	if !ok {
		return false, nil
	}
	if env.Presence == nil {
		return false, fmt.Errorf("exists:%s requires a presence verifier", r.collection)
	}
	n, err := env.Presence.Count(ctx, PresenceQuery{Collection: r.collection, Column: r.column, Value: v})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
func (existsRule) Message(field string, _ any) string {
	return fmt.Sprintf("The selected %s is invalid.", Attribute(field))
}

// Exists requires a row in collection whose column equals the value.
func Exists(collection, column string) Rule {
	return existsRule{collection: collection, column: column}
}

// UniqueRule requires that no other row in a collection holds the value.
type UniqueRule struct {
	collection   string
	column       string
	ignoreColumn string
	ignoreID     any
}

// Unique requires that no row in collection has column equal to the value.
func Unique(collection, column string) UniqueRule {
	return UniqueRule{collection: collection, column: column, ignoreColumn: "id"}
}

// Ignore leaves the row with the given id out of the check, so a record
// does not conflict with itself on update. Empty ids are ignored.
func (r UniqueRule) Ignore(id any) UniqueRule {
	r.ignoreID = id
	return r
}

// IgnoreOn is Ignore with an explicit id column.
func (r UniqueRule) IgnoreOn(column string, id any) UniqueRule {
	r.ignoreColumn = column
	r.ignoreID = id
	return r
}

func (UniqueRule) Name() string { return "unique" }
func (r UniqueRule) Check(ctx context.Context, env *Env, _ string, value any) (bool, error) {
	v, ok := scalar(value)
	if !ok {
		return false, nil
	}
	if env.Presence == nil {
		return false, fmt.Errorf("unique:%s requires a presence verifier", r.collection)
	}
	q := PresenceQuery{Collection: r.collection, Column: r.column, Value: v}
	if !isEmpty(r.ignoreID) {
		q.IgnoreColumn = r.ignoreColumn
		q.IgnoreID = r.ignoreID
	}
	n, err := env.Presence.Count(ctx, q)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
func (UniqueRule) Message(field string, _ any) string {
	return fmt.Sprintf("The %s has already been taken.", Attribute(field))
}
