package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/flo/expr"
	"github.com/kbukum/flo/flow"
)

// Row is one record of a Frame, keyed by column name.
type Row map[string]any

// Frame is an immutable sequence of rows. Filters return new Frames
// sharing no state with the receiver.
type Frame struct {
	columns []string
	rows    []Row
}

// NewFrame builds a Frame with the given column order.
func NewFrame(columns []string, rows ...Row) *Frame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	rs := make([]Row, len(rows))
	copy(rs, rows)
	return &Frame{columns: cols, rows: rs}
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Rows returns a copy of the row slice. Row maps are shared, not copied.
func (f *Frame) Rows() []Row {
	out := make([]Row, len(f.rows))
	copy(out, f.rows)
	return out
}

// Col extracts one column as a Series.
func (f *Frame) Col(name string) *Series {
	values := make([]any, len(f.rows))
	for i, r := range f.rows {
		values[i] = r[name]
	}
	return &Series{name: name, values: values}
}

// Flow streams the frame's rows.
func (f *Frame) Flow() *flow.Flow {
	rows := make([]any, len(f.rows))
	for i, r := range f.rows {
		rows[i] = r
	}
	return flow.ForEach(rows...)
}

// filterCol keeps rows whose value in col matches the expression;
// evaluation failures drop the row.
func (f *Frame) filterCol(col string, e *expr.Expr) *Frame {
	pred := e.Pred()
	out := make([]Row, 0, len(f.rows))
	for _, r := range f.rows {
		if ok, err := pred(r[col]); err == nil && ok {
			out = append(out, r)
		}
	}
	return &Frame{columns: f.columns, rows: out}
}

// Only keeps rows where each given column equals its value. A nil value
// matches nil cells.
func (f *Frame) Only(conditions Row) *Frame {
	out := f
	for col, v := range conditions {
		if v == nil {
			out = out.filterCol(col, expr.X.IsNil())
		} else {
			out = out.filterCol(col, expr.X.Eq(v))
		}
	}
	return out
}

// Without drops rows where any given column equals its value. A nil value
// drops nil cells.
func (f *Frame) Without(conditions Row) *Frame {
	out := f
	for col, v := range conditions {
		if v == nil {
			out = out.filterCol(col, expr.X.NotNil())
		} else {
			out = out.filterCol(col, expr.X.Ne(v))
		}
	}
	return out
}

// OnlyIf keeps rows where the expression over the column value is truthy.
func (f *Frame) OnlyIf(col string, e *expr.Expr) *Frame {
	return f.filterCol(col, e)
}

// OnlyIn keeps rows whose column value is in the given set.
func (f *Frame) OnlyIn(col string, included ...any) *Frame {
	return f.filterCol(col, expr.X.In(included))
}

// NotIn drops rows whose column value is in the given set.
func (f *Frame) NotIn(col string, excluded ...any) *Frame {
	return f.filterCol(col, expr.X.NotIn(excluded))
}

// Gt keeps rows whose column value is greater than v.
func (f *Frame) Gt(col string, v any) *Frame { return f.filterCol(col, expr.X.Gt(v)) }

// Ge keeps rows whose column value is greater than or equal to v.
func (f *Frame) Ge(col string, v any) *Frame { return f.filterCol(col, expr.X.Ge(v)) }

// Lt keeps rows whose column value is less than v.
func (f *Frame) Lt(col string, v any) *Frame { return f.filterCol(col, expr.X.Lt(v)) }

// Le keeps rows whose column value is less than or equal to v.
func (f *Frame) Le(col string, v any) *Frame { return f.filterCol(col, expr.X.Le(v)) }

// Between keeps rows whose column value is inside the interval spec,
// e.g. "(1,3]".
func (f *Frame) Between(col, spec string) *Frame {
	return f.filterCol(col, expr.X.BetweenSpec(spec))
}

// GroupCount pairs a group key (column values joined in column order) with
// its row count.
type GroupCount struct {
	Key   string
	Count int
}

// CountBy counts rows per distinct combination of the given columns,
// largest group first. Ties keep first-seen order.
func (f *Frame) CountBy(cols ...string) []GroupCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range f.rows {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = stringify(r[c])
		}
		key := strings.Join(parts, "/")
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	out := make([]GroupCount, len(order))
	for i, k := range order {
		out[i] = GroupCount{Key: k, Count: counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func stringify(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}
