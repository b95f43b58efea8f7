package check

import (
	"strings"
	"testing"

	"github.com/kbukum/flo/errors"
	"github.com/kbukum/flo/expr"
)

func TestThat(t *testing.T) {
	t.Run("passing test returns value", func(t *testing.T) {
		got, err := That(3, expr.X.Ge(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 3 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("failing test reports value and test", func(t *testing.T) {
		_, err := That(3, expr.X.Ge(4))
		if errors.CodeOf(err) != errors.ErrCodeCheckFailed {
			t.Fatalf("expected CHECK_FAILED, got %v", err)
		}
		if !strings.Contains(err.Error(), "(3)") || !strings.Contains(err.Error(), "_ >= 4") {
			t.Errorf("message missing context: %v", err)
		}
	})

	t.Run("custom message prepended", func(t *testing.T) {
		_, err := That(3, expr.X.Ge(4), "port out of range")
		if err == nil || !strings.Contains(err.Error(), "port out of range") {
			t.Errorf("custom message missing: %v", err)
		}
	})

	t.Run("non-bool result rejected", func(t *testing.T) {
		_, err := That("abc", expr.X.Upper())
		if errors.CodeOf(err) != errors.ErrCodeCheckFailed {
			t.Fatalf("expected CHECK_FAILED, got %v", err)
		}
		if !strings.Contains(err.Error(), "bool") {
			t.Errorf("message should mention bool: %v", err)
		}
	})
}

func TestEach(t *testing.T) {
	t.Run("all pass", func(t *testing.T) {
		got, err := Each(expr.X.Ge(2), 3, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("all failures reported", func(t *testing.T) {
		_, err := Each(expr.X.Gt(3), 3, 2)
		if err == nil {
			t.Fatal("expected failure")
		}
		msg := err.Error()
		if !strings.Contains(msg, "value #1") || !strings.Contains(msg, "value #2") {
			t.Errorf("expected both failures listed: %v", msg)
		}
	})
}

func TestEachNamed(t *testing.T) {
	err := EachNamed(expr.X.NotNil(), map[string]any{"myvar": 3})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err = EachNamed(expr.X.Ge(3), map[string]any{"yourvar": 2})
	if err == nil || !strings.Contains(err.Error(), "yourvar") {
		t.Errorf("expected named failure: %v", err)
	}
}

func TestMust(t *testing.T) {
	if got := Must(That(3, expr.X.Ge(0))); got != 3 {
		t.Errorf("got %v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must(That(-1, expr.X.Ge(0)))
}

func TestValidator(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Validator
		wantErr bool
	}{
		{
			"all pass",
			func() *Validator {
				return New().Required("name", "flo").Range("port", 8080, 1, 65535)
			},
			false,
		},
		{
			"missing required",
			func() *Validator { return New().Required("name", "  ") },
			true,
		},
		{
			"bad uuid",
			func() *Validator { return New().RequiredUUID("id", "not-a-uuid") },
			true,
		},
		{
			"nil uuid",
			func() *Validator {
				return New().RequiredUUID("id", "00000000-0000-0000-0000-000000000000")
			},
			true,
		},
		{
			"optional uuid empty ok",
			func() *Validator { return New().OptionalUUID("id", "") },
			false,
		},
		{
			"range violation",
			func() *Validator { return New().Range("port", 0, 1, 65535) },
			true,
		},
		{
			"pattern mismatch",
			func() *Validator { return New().Pattern("slug", "Has Spaces", `^[a-z-]+$`) },
			true,
		},
		{
			"one of",
			func() *Validator { return New().OneOf("mode", "xml", []string{"json", "console"}) },
			true,
		},
		{
			"expression test",
			func() *Validator { return New().Test("age", -1, expr.X.Ge(0)) },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.CodeOf(err) != errors.ErrCodeCheckFailed {
				t.Errorf("expected CHECK_FAILED, got %v", errors.CodeOf(err))
			}
		})
	}
}

func TestValidator_CollectsAllErrors(t *testing.T) {
	v := New().Required("name", "").Min("count", 1, 2)
	if len(v.Errors()) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(v.Errors()))
	}
}

func TestRequiredUUID(t *testing.T) {
	id, err := RequiredUUID("id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("got %s", id)
	}

	if _, err := RequiredUUID("id", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestStruct(t *testing.T) {
	type job struct {
		Name    string `json:"name" validate:"required"`
		Workers int    `json:"workers" validate:"min=1,max=64"`
	}

	if err := Struct(job{Name: "index", Workers: 4}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := Struct(job{Workers: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("expected field name in message: %v", err)
	}
}
