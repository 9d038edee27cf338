package business

import (
	"math"
	"strconv"
	"strings"

	"business-directory/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Field names a searchable Business attribute. The value is the column name.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCity        Field = "city"
	FieldCategory    Field = "category"
)

// FoldColumn is the lower-cased search column of f, or "" when f has none.
func (f Field) FoldColumn() string {
	switch f {
	case FieldName, FieldDescription, FieldCity:
		return string(f) + "_fold"
	}
	return ""
}

func (f Field) valueOf(b *domain.Business) string {
	switch f {
	case FieldName:
		return b.Name
	case FieldDescription:
		return b.Description
	case FieldCity:
		return b.City
	case FieldCategory:
		return b.Category
	}
	return ""
}

// Clause is one condition of a Predicate. Stores render clauses with a type
// switch; Match evaluates the same condition in memory.
type Clause interface {
	Match(b *domain.Business) bool
}

// Contains is a case-insensitive literal substring match.
type Contains struct {
	Field Field
	Term  string
}

func (c Contains) Match(b *domain.Business) bool {
	return strings.Contains(domain.Fold(c.Field.valueOf(b)), domain.Fold(c.Term))
}

// Equals is an exact match.
type Equals struct {
	Field Field
	Value string
}

func (e Equals) Match(b *domain.Business) bool { return e.Field.valueOf(b) == e.Value }

// AnyOf holds when at least one of its clauses holds.
type AnyOf []Clause

func (a AnyOf) Match(b *domain.Business) bool {
	for _, c := range a {
		if c.Match(b) {
			return true
		}
	}
	return false
}

// Predicate is the AND of its clauses. The zero value matches everything.
type Predicate struct {
	Clauses []Clause
}

func (p *Predicate) And(c Clause) { p.Clauses = append(p.Clauses, c) }

func (p Predicate) Match(b *domain.Business) bool {
	for _, c := range p.Clauses {
		if !c.Match(b) {
			return false
		}
	}
	return true
}

// Window is a 1-based page of Limit records.
type Window struct {
	Page  int
	Limit int
}

func (w Window) Offset() int { return (w.Page - 1) * w.Limit }

// Pages is ceil(total/limit); zero matches give zero pages.
func (w Window) Pages(total int64) int {
	if total <= 0 || w.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(w.Limit)))
}

// Params are the optional list filters as received from a caller.
// Nil Page/Limit select the defaults; explicit values must be positive.
type Params struct {
	Search   string
	Category string
	City     string
	Page     *int
	Limit    *int
}

// Query is a predicate plus the window to read. Results are always ordered
// newest first.
type Query struct {
	Where  Predicate
	Window Window
}

// Page is the result of running a Query.
type Page struct {
	Total int64
	Page  int
	Pages int
	Data  []domain.Business
}

// Builder turns Params into a Query.
type Builder struct {
	DefaultLimit int
	MaxLimit     int
}

func NewBuilder(defaultLimit, maxLimit int) Builder {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return Builder{DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

func (b Builder) Build(p Params) (Query, error) {
	w := Window{Page: DefaultPage, Limit: b.DefaultLimit}
	if p.Page != nil {
		if *p.Page < 1 {
			return Query{}, queryErr("page", "Page must be a positive integer")
		}
		w.Page = *p.Page
	}
	if p.Limit != nil {
		if *p.Limit < 1 {
			return Query{}, queryErr("limit", "Limit must be a positive integer")
		}
		if *p.Limit > b.MaxLimit {
			return Query{}, queryErr("limit", "Limit cannot exceed "+strconv.Itoa(b.MaxLimit))
		}
		w.Limit = *p.Limit
	}
	// offset 必须落在 int 内
	if w.Limit > 0 && w.Page-1 > math.MaxInt/w.Limit {
		return Query{}, queryErr("page", "Page is out of range")
	}

	var where Predicate
	if s := strings.TrimSpace(p.Search); s != "" {
		where.And(AnyOf{
			Contains{Field: FieldName, Term: s},
			Contains{Field: FieldDescription, Term: s},
			Contains{Field: FieldCity, Term: s},
		})
	}
	if c := strings.TrimSpace(p.Category); c != "" && c != domain.CategoryAll {
		where.And(Equals{Field: FieldCategory, Value: c})
	}
	// city is ANDed even when search already looks at city.
	if c := strings.TrimSpace(p.City); c != "" {
		where.And(Contains{Field: FieldCity, Term: c})
	}
	return Query{Where: where, Window: w}, nil
}

func queryErr(field, msg string) error {
	return &domain.ValidationError{Resource: "Query", Field: field, Message: msg}
}
