package attempt

import (
	"fmt"
	"strconv"
	"testing"
)

func TestOf_Success(t *testing.T) {
	a := Of(func() (int, error) { return strconv.Atoi("42") })
	if !a.Succeeded() || a.Failed() {
		t.Fatal("expected success")
	}
	v, err := a.Result()
	if err != nil || v != 42 {
		t.Errorf("Result = %v, %v", v, err)
	}
}

func TestOf_Error(t *testing.T) {
	a := Of(func() (int, error) { return strconv.Atoi("nope") })
	if a.Succeeded() || !a.Failed() {
		t.Fatal("expected failure")
	}
	if a.Err() == nil {
		t.Error("expected captured error")
	}
}

func TestOf_PanicRecovered(t *testing.T) {
	a := Of(func() (int, error) {
		var xs []int
		return xs[3], nil
	})
	if !a.Failed() {
		t.Fatal("expected failure from panic")
	}
	if a.Err() == nil {
		t.Error("expected panic converted to error")
	}
}

func TestCall(t *testing.T) {
	a := Call(strconv.Atoi, "7")
	if v := a.OrElse(0); v != 7 {
		t.Errorf("got %d", v)
	}
}

func TestOrElse(t *testing.T) {
	if got := Failure[int](fmt.Errorf("boom")).OrElse(9); got != 9 {
		t.Errorf("got %d", got)
	}
	if got := Success(3).OrElse(9); got != 3 {
		t.Errorf("got %d", got)
	}
}

func TestOrElseGet(t *testing.T) {
	called := false
	got := Success("x").OrElseGet(func() string {
		called = true
		return "fallback"
	})
	if got != "x" || called {
		t.Errorf("fallback should not run on success")
	}
	got = Failure[string](fmt.Errorf("boom")).OrElseGet(func() string { return "fallback" })
	if got != "fallback" {
		t.Errorf("got %q", got)
	}
}

func TestOrElseLog(t *testing.T) {
	if got := Failure[int](fmt.Errorf("boom")).OrElseLog(5, nil); got != 5 {
		t.Errorf("got %d", got)
	}
	if got := Success(2).OrElseLog(5, nil); got != 2 {
		t.Errorf("got %d", got)
	}
}

func TestAndThen(t *testing.T) {
	t.Run("chains on success", func(t *testing.T) {
		a := AndThen(Success("21"), strconv.Atoi)
		b := AndThen(a, func(n int) (int, error) { return n * 2, nil })
		if v := b.OrElse(0); v != 42 {
			t.Errorf("got %d", v)
		}
	})

	t.Run("propagates failure", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		a := AndThen(Failure[string](boom), strconv.Atoi)
		if a.Err() != boom {
			t.Errorf("expected original error, got %v", a.Err())
		}
	})

	t.Run("captures new failure", func(t *testing.T) {
		a := AndThen(Success("nope"), strconv.Atoi)
		if !a.Failed() {
			t.Error("expected failure")
		}
	})
}

func TestMust(t *testing.T) {
	if v := Success(7).Must(); v != 7 {
		t.Errorf("got %d", v)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on failed attempt")
		}
	}()
	Failure[int](fmt.Errorf("boom")).Must()
}
