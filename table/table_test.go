package table

import (
	"context"
	"reflect"
	"testing"

	"github.com/kbukum/flo/expr"
)

func TestSeries_Filters(t *testing.T) {
	s := NewSeries("age", 1, 5, nil, 9, 5)

	tests := []struct {
		name string
		got  *Series
		want []any
	}{
		{"only", s.Only(5), []any{5, 5}},
		{"only nil", s.Only(nil), []any{nil}},
		{"without", s.Without(5), []any{1, 9}},
		{"without nil", s.Without(nil), []any{1, 5, 9, 5}},
		{"gt", s.Gt(4), []any{5, 9, 5}},
		{"ge", s.Ge(5), []any{5, 9, 5}},
		{"lt", s.Lt(5), []any{1}},
		{"le", s.Le(5), []any{1, 5, 5}},
		{"only in", s.OnlyIn(1, 9), []any{1, 9}},
		{"not in", s.NotIn(1, 9, nil), []any{5, 5}},
		{"between closed-open", s.Between("[1,9)"), []any{1, 5, 5}},
		{"between open-closed", s.Between("(1,9]"), []any{5, 9, 5}},
		{"only if", s.OnlyIf(expr.X.Mod(2).Eq(1)), []any{1, 5, 9, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got.Values(), tt.want) {
				t.Errorf("got %v, want %v", tt.got.Values(), tt.want)
			}
		})
	}

	// The source series is untouched by filtering.
	if s.Len() != 5 {
		t.Errorf("source series mutated: %v", s.Values())
	}
}

func TestSeries_CountDistinct(t *testing.T) {
	s := NewSeries("word", "a", "b", "a", "c", "a", "b")
	got := s.CountDistinct()
	want := []ValueCount{{"a", 3}, {"b", 2}, {"c", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSeries_Flow(t *testing.T) {
	out, err := NewSeries("n", 1, 2, 3).Flow().Slice(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, []any{1, 2, 3}) {
		t.Errorf("got %v", out)
	}
}

func sampleFrame() *Frame {
	return NewFrame([]string{"name", "country", "age"},
		Row{"name": "ada", "country": "UK", "age": 36},
		Row{"name": "blaise", "country": "FR", "age": 39},
		Row{"name": "carl", "country": "DE", "age": 77},
		Row{"name": "emmy", "country": "DE", "age": 53},
		Row{"name": "nil-age", "country": "UK", "age": nil},
	)
}

func names(f *Frame) []string {
	out := make([]string, f.Len())
	for i, r := range f.Rows() {
		out[i] = r["name"].(string)
	}
	return out
}

func TestFrame_Filters(t *testing.T) {
	f := sampleFrame()

	tests := []struct {
		name string
		got  *Frame
		want []string
	}{
		{"only", f.Only(Row{"country": "DE"}), []string{"carl", "emmy"}},
		{"only multi", f.Only(Row{"country": "DE", "age": 53}), []string{"emmy"}},
		{"only nil", f.Only(Row{"age": nil}), []string{"nil-age"}},
		{"without", f.Without(Row{"country": "DE"}), []string{"ada", "blaise", "nil-age"}},
		{"without nil", f.Without(Row{"age": nil}), []string{"ada", "blaise", "carl", "emmy"}},
		{"gt", f.Gt("age", 40), []string{"carl", "emmy"}},
		{"le", f.Le("age", 39), []string{"ada", "blaise"}},
		{"only in", f.OnlyIn("country", "UK", "FR"), []string{"ada", "blaise", "nil-age"}},
		{"not in", f.NotIn("country", "UK"), []string{"blaise", "carl", "emmy"}},
		{"between", f.Between("age", "[36,53)"), []string{"ada", "blaise"}},
		{"only if", f.OnlyIf("name", expr.X.Len().Le(4)), []string{"ada", "carl", "emmy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(names(tt.got), tt.want) {
				t.Errorf("got %v, want %v", names(tt.got), tt.want)
			}
		})
	}

	if f.Len() != 5 {
		t.Errorf("source frame mutated")
	}
}

func TestFrame_Col(t *testing.T) {
	s := sampleFrame().Col("country")
	if s.Name() != "country" || s.Len() != 5 {
		t.Fatalf("col = %s, %d values", s.Name(), s.Len())
	}
	got := s.CountDistinct()
	if got[0].Value != "UK" && got[0].Value != "DE" {
		t.Errorf("top group = %v", got[0])
	}
}

func TestFrame_CountBy(t *testing.T) {
	got := sampleFrame().CountBy("country")
	want := []GroupCount{{"UK", 2}, {"DE", 2}, {"FR", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	multi := sampleFrame().CountBy("country", "age")
	if len(multi) != 5 {
		t.Errorf("expected all distinct pairs, got %v", multi)
	}
}

func TestFrame_Flow(t *testing.T) {
	out, err := sampleFrame().Flow().Slice(context.Background())
	if err != nil || len(out) != 5 {
		t.Errorf("got %d rows, %v", len(out), err)
	}
}
