package table

import (
	"sort"

	"github.com/kbukum/flo/expr"
	"github.com/kbukum/flo/flow"
)

// Series is an immutable named column of values. Filters return new Series
// sharing no state with the receiver.
type Series struct {
	name   string
	values []any
}

// NewSeries builds a Series from values.
func NewSeries(name string, values ...any) *Series {
	vs := make([]any, len(values))
	copy(vs, values)
	return &Series{name: name, values: vs}
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Len returns the number of values.
func (s *Series) Len() int { return len(s.values) }

// Values returns a copy of the values.
func (s *Series) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Flow streams the series values.
func (s *Series) Flow() *flow.Flow {
	return flow.ForEach(s.values...)
}

// filter keeps values matching the expression; evaluation failures drop
// the value.
func (s *Series) filter(e *expr.Expr) *Series {
	pred := e.Pred()
	out := make([]any, 0, len(s.values))
	for _, v := range s.values {
		if ok, err := pred(v); err == nil && ok {
			out = append(out, v)
		}
	}
	return &Series{name: s.name, values: out}
}

// Only keeps values equal to v. A nil v keeps nil values.
func (s *Series) Only(v any) *Series {
	if v == nil {
		return s.filter(expr.X.IsNil())
	}
	return s.filter(expr.X.Eq(v))
}

// Without drops values equal to v. A nil v drops nil values.
func (s *Series) Without(v any) *Series {
	if v == nil {
		return s.filter(expr.X.NotNil())
	}
	return s.filter(expr.X.Ne(v))
}

// OnlyIf keeps values for which the expression evaluates truthy.
func (s *Series) OnlyIf(e *expr.Expr) *Series { return s.filter(e) }

// OnlyIn keeps values present in the given set.
func (s *Series) OnlyIn(included ...any) *Series {
	return s.filter(expr.X.In(included))
}

// NotIn drops values present in the given set.
func (s *Series) NotIn(excluded ...any) *Series {
	return s.filter(expr.X.NotIn(excluded))
}

// Gt keeps values greater than v.
func (s *Series) Gt(v any) *Series { return s.filter(expr.X.Gt(v)) }

// Ge keeps values greater than or equal to v.
func (s *Series) Ge(v any) *Series { return s.filter(expr.X.Ge(v)) }

// Lt keeps values less than v.
func (s *Series) Lt(v any) *Series { return s.filter(expr.X.Lt(v)) }

// Le keeps values less than or equal to v.
func (s *Series) Le(v any) *Series { return s.filter(expr.X.Le(v)) }

// Between keeps values inside the interval spec, e.g. "[2,10)".
func (s *Series) Between(spec string) *Series {
	return s.filter(expr.X.BetweenSpec(spec))
}

// ValueCount pairs a distinct value with its occurrence count.
type ValueCount struct {
	Value any
	Count int
}

// CountDistinct counts occurrences of each distinct value, most frequent
// first. Ties keep first-seen order. Values must be comparable.
func (s *Series) CountDistinct() []ValueCount {
	counts := make(map[any]int)
	order := make([]any, 0)
	for _, v := range s.values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	out := make([]ValueCount, len(order))
	for i, v := range order {
		out[i] = ValueCount{Value: v, Count: counts[v]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
