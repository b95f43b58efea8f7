package flow

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/flo/errors"
	"github.com/kbukum/flo/expr"
)

func ctx() context.Context { return context.Background() }

func mustSlice(t *testing.T, f *Flow) []any {
	t.Helper()
	out, err := f.Slice(ctx())
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	return out
}

func TestMap_AppliesInOrder(t *testing.T) {
	f := Slice([]int{1, 2, 3}).Map(func(v any) (any, error) {
		return v.(int) * 2, nil
	})
	got := mustSlice(t, f)
	want := []any{2, 4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilter_OrderPreserving(t *testing.T) {
	isEven := func(v any) (bool, error) { return v.(int)%2 == 0, nil }
	got := mustSlice(t, Slice([]int{1, 2, 3, 4}).Filter(isEven))
	want := []any{2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// A failing predicate abandons the element immediately: later stages never
// see it.
func TestFilter_ShortCircuitsPerElement(t *testing.T) {
	var sawAfterFilter []any
	f := Slice([]int{1, 2, 3, 4}).
		Filter(func(v any) (bool, error) { return v.(int)%2 == 0, nil }).
		Map(func(v any) (any, error) {
			sawAfterFilter = append(sawAfterFilter, v)
			return v, nil
		})
	mustSlice(t, f)
	if !reflect.DeepEqual(sawAfterFilter, []any{2, 4}) {
		t.Errorf("later stage ran for abandoned elements: %v", sawAfterFilter)
	}
}

func TestExclude(t *testing.T) {
	got := mustSlice(t, Slice([]int{1, 2, 3, 4}).Exclude(func(v any) (bool, error) {
		return v.(int)%2 == 0, nil
	}))
	if !reflect.DeepEqual(got, []any{1, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestForEach(t *testing.T) {
	got := mustSlice(t, ForEach("a", "b"))
	if !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

// Appending a stage produces a new Flow; the original stays usable with
// its stage list unchanged.
func TestAppend_DoesNotMutateOriginal(t *testing.T) {
	base := Slice([]int{1, 2, 3, 4})
	evens := base.Filter(func(v any) (bool, error) { return v.(int)%2 == 0, nil })
	doubled := base.Map(func(v any) (any, error) { return v.(int) * 10, nil })

	if n := len(base.Stages()); n != 0 {
		t.Fatalf("base gained %d stages", n)
	}
	if !reflect.DeepEqual(mustSlice(t, evens), []any{2, 4}) {
		t.Error("evens flow broken")
	}
	if !reflect.DeepEqual(mustSlice(t, doubled), []any{10, 20, 30, 40}) {
		t.Error("doubled flow broken")
	}
	if !reflect.DeepEqual(mustSlice(t, base), []any{1, 2, 3, 4}) {
		t.Error("base flow broken")
	}
}

// A built expression is reusable: two pipelines sharing it produce the same
// per-element results as inlining it twice.
func TestExpressionReuse(t *testing.T) {
	upper := expr.X.Upper()
	a := mustSlice(t, Slice([]string{"ab", "cd"}).MapE(upper))
	b := mustSlice(t, Slice([]string{"ab", "cd"}).MapE(upper))
	inline := mustSlice(t, Slice([]string{"ab", "cd"}).MapE(expr.X.Upper()))
	if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, inline) {
		t.Errorf("reuse mismatch: %v %v %v", a, b, inline)
	}
}

// Terminal calls pull one source element at a time: a bounded terminal
// over an unbounded source terminates after exactly N pulls survive.
func TestLaziness_UnboundedSourceWithTake(t *testing.T) {
	pulled := 0
	naturals := Gen(func() (any, bool) {
		pulled++
		return pulled, true
	})
	got := mustSlice(t, naturals.Map(func(v any) (any, error) {
		return v.(int) * v.(int), nil
	}).Take(3))
	if !reflect.DeepEqual(got, []any{1, 4, 9}) {
		t.Errorf("got %v", got)
	}
	if pulled != 3 {
		t.Errorf("source pulled %d times, want 3", pulled)
	}
}

func TestFirst_PullsOneElement(t *testing.T) {
	pulled := 0
	f := Gen(func() (any, bool) {
		pulled++
		return pulled, true
	})
	v, ok, err := f.First(ctx())
	if err != nil || !ok || v != 1 {
		t.Fatalf("First = %v, %v, %v", v, ok, err)
	}
	if pulled != 1 {
		t.Errorf("source pulled %d times, want 1", pulled)
	}
}

func TestRestartable_SliceSource(t *testing.T) {
	f := Slice([]int{1, 2}).Map(func(v any) (any, error) { return v.(int) + 1, nil })
	first := mustSlice(t, f)
	second := mustSlice(t, f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("restartable source gave %v then %v", first, second)
	}
}

func TestSinglePass_GenSource(t *testing.T) {
	n := 0
	f := Gen(func() (any, bool) {
		n++
		return n, n <= 4
	})
	first := mustSlice(t, f.Take(2))
	second := mustSlice(t, f.Take(2))
	if !reflect.DeepEqual(first, []any{1, 2}) {
		t.Errorf("first pass = %v", first)
	}
	// A single-pass source continues from its cursor.
	if !reflect.DeepEqual(second, []any{3, 4}) {
		t.Errorf("second pass = %v", second)
	}
}

func TestStageError_TaggedWithPosition(t *testing.T) {
	boom := stderrors.New("boom")
	f := Slice([]int{1}).
		Map(func(v any) (any, error) { return v, nil }).
		Filter(func(v any) (bool, error) { return false, boom })
	_, err := f.Slice(ctx())
	if err == nil {
		t.Fatal("expected failure")
	}
	if errors.CodeOf(err) != errors.ErrCodeStageFailed {
		t.Fatalf("expected STAGE_FAILED, got %v", err)
	}
	if pos, ok := errors.Position(err); !ok || pos != 1 {
		t.Errorf("expected stage position 1, got %d (ok=%v)", pos, ok)
	}
	if !stderrors.Is(err, boom) {
		t.Error("underlying error kind should stay reachable")
	}
}

func TestFlatten(t *testing.T) {
	got := mustSlice(t, Slice([][]string{{"3", "1"}, {"a"}, {"b", "c"}}).Flatten())
	if !reflect.DeepEqual(got, []any{"3", "1", "a", "b", "c"}) {
		t.Errorf("got %v", got)
	}
}

func TestFlatMap(t *testing.T) {
	got := mustSlice(t, Slice([]string{"3,1", "a"}).FlatMap(func(v any) (any, error) {
		return strings.Split(v.(string), ","), nil
	}))
	if !reflect.DeepEqual(got, []any{"3", "1", "a"}) {
		t.Errorf("got %v", got)
	}
}

func TestFlatMap_SplitExpression(t *testing.T) {
	got := mustSlice(t, Slice([]string{"3,1", "a", "b,c,d"}).
		MapE(expr.X.Split(",")).
		Flatten())
	want := []any{"3", "1", "a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTakeWhile_DropWhile(t *testing.T) {
	under3 := func(v any) (bool, error) { return v.(int) < 3, nil }
	got := mustSlice(t, Slice([]int{1, 2, 3, 1}).TakeWhile(under3))
	if !reflect.DeepEqual(got, []any{1, 2}) {
		t.Errorf("takewhile = %v", got)
	}
	got = mustSlice(t, Slice([]int{1, 2, 3, 1}).DropWhile(under3))
	if !reflect.DeepEqual(got, []any{3, 1}) {
		t.Errorf("dropwhile = %v", got)
	}
}

func TestChain(t *testing.T) {
	second := Slice([]int{3, 4, 5}).Take(2)
	got := mustSlice(t, Slice([]int{1, 2}).Chain(second))
	if !reflect.DeepEqual(got, []any{1, 2, 3, 4}) {
		t.Errorf("got %v", got)
	}

	// The chained flow stays usable on its own.
	got = mustSlice(t, second)
	if !reflect.DeepEqual(got, []any{3, 4}) {
		t.Errorf("second = %v", got)
	}
}

func TestTap_PassesThrough(t *testing.T) {
	var seen []any
	f := Slice([]int{1, 2}).Tap(func(v any) error {
		seen = append(seen, v)
		return nil
	})
	got := mustSlice(t, f)
	if !reflect.DeepEqual(got, []any{1, 2}) || !reflect.DeepEqual(seen, got) {
		t.Errorf("got %v, seen %v", got, seen)
	}
}

func TestCache_AvoidsRecomputation(t *testing.T) {
	computed := 0
	f := Slice([]int{1, 2, 3}).Map(func(v any) (any, error) {
		computed++
		return v, nil
	}).Cache()

	first := mustSlice(t, f)
	second := mustSlice(t, f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache changed results: %v vs %v", first, second)
	}
	if computed != 3 {
		t.Errorf("stage recomputed: ran %d times, want 3", computed)
	}
}

func TestLabel_ReadsLikeThePipeline(t *testing.T) {
	f := Slice([]string{"a"}).MapE(expr.X.Upper()).FilterE(expr.X.Has("E"))
	label := f.String()
	for _, part := range []string{"slice[1]", "* _.Upper()", `/ _.Has("E")`} {
		if !strings.Contains(label, part) {
			t.Errorf("label %q missing %q", label, part)
		}
	}
}

func TestChan(t *testing.T) {
	ch := make(chan any, 3)
	for i := 1; i <= 3; i++ {
		ch <- i
	}
	close(ch)
	got := mustSlice(t, Chan(ch))
	if !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestFunc_RestartableFactory(t *testing.T) {
	f := Func(func(context.Context) Iterator {
		return &sliceIter{items: []any{1, 2}}
	})
	if !reflect.DeepEqual(mustSlice(t, f), mustSlice(t, f)) {
		t.Error("factory source should restart")
	}
}

func ExampleFlow() {
	out, _ := Slice([]string{"pretty", "cool", "items", "kiddo"}).
		MapE(expr.X.Upper()).
		FilterE(expr.X.Has("E")).
		Slice(context.Background())
	fmt.Println(out)
	// Output: [PRETTY ITEMS]
}
