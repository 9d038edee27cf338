package repo

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"business-directory/internal/domain"
	"business-directory/internal/feature/business"
)

// likeEscaper escapes LIKE wildcards so search terms match literally. '!' is
// used as the escape character because it needs no quoting in any dialect.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// renderClause turns a clause into a SQL fragment and its arguments.
func renderClause(c business.Clause) (string, []any, error) {
	switch c := c.(type) {
	case business.Contains:
		col := c.Field.FoldColumn()
		if col == "" {
			return "", nil, fmt.Errorf("field %q is not searchable", c.Field)
		}
		pattern := "%" + likeEscaper.Replace(domain.Fold(c.Term)) + "%"
		return fmt.Sprintf("%s LIKE ? ESCAPE '!'", col), []any{pattern}, nil
	case business.Equals:
		return fmt.Sprintf("%s = ?", c.Field), []any{c.Value}, nil
	case business.AnyOf:
		if len(c) == 0 {
			return "1 = 0", nil, nil
		}
		parts := make([]string, 0, len(c))
		var args []any
		for _, sub := range c {
			sql, a, err := renderClause(sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
			args = append(args, a...)
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}
	return "", nil, fmt.Errorf("unsupported clause %T", c)
}

// wherePredicate is a gorm scope ANDing every clause of p.
func wherePredicate(p business.Predicate) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, c := range p.Clauses {
			sql, args, err := renderClause(c)
			if err != nil {
				_ = tx.AddError(err)
				return tx
			}
			tx = tx.Where(sql, args...)
		}
		return tx
	}
}
