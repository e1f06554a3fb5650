package repositories

import (
	"context"
	"fmt"
	"regexp"

	"tradefeed/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// GORMPresenceVerifier answers exists/unique validation queries with
// row counts.
type GORMPresenceVerifier struct {
	db *gorm.DB
}

// NewGORMPresenceVerifier creates a new instance of GORMPresenceVerifier.
func NewGORMPresenceVerifier(db *gorm.DB) *GORMPresenceVerifier {
	return &GORMPresenceVerifier{db: db}
}

// Count returns the number of matching rows.
func (r *GORMPresenceVerifier) Count(ctx context.Context, q validation.PresenceQuery) (int64, error) {
	for _, name := range []string{q.Collection, q.Column} {
		if !identifier.MatchString(name) {
			return 0, fmt.Errorf("invalid identifier %q in presence query", name)
		}
	}
	if q.IgnoreColumn != "" && !identifier.MatchString(q.IgnoreColumn) {
		return 0, fmt.Errorf("invalid identifier %q in presence query", q.IgnoreColumn)
	}

	tx := r.db.WithContext(ctx).Table(q.Collection).
		Where(clause.Eq{Column: clause.Column{Name: q.Column}, Value: q.Value})
	if q.IgnoreColumn != "" {
		tx = tx.Where(clause.Neq{Column: clause.Column{Name: q.IgnoreColumn}, Value: q.IgnoreID})
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s.%s: %w", q.Collection, q.Column, err)
	}
	return n, nil
}
