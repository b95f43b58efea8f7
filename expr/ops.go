package expr

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/kbukum/flo/errors"
)

// binaryOp applies op to fully evaluated operands.
func binaryOp(op string, a, b any) (any, error) {
	switch op {
	case "==":
		return equals(a, b), nil
	case "!=":
		return !equals(a, b), nil
	case "<", "<=", ">", ">=":
		c, err := order(a, b)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return c < 0, nil
		case "<=":
			return c <= 0, nil
		case ">":
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case "+", "-", "*", "/", "%":
		return arith(op, a, b)
	}
	return nil, errors.Unsupported(op, a)
}

// equals compares operands, treating numeric values of different widths as
// equal when their values are.
func equals(a, b any) bool {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// order returns -1, 0 or 1. Numbers order numerically across widths;
// strings order lexically. Anything else is unsupported.
func order(a, b any) (int, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), nil
	}
	return 0, errors.Unsupported("compare", a)
}

func arith(op string, a, b any) (any, error) {
	if op == "+" {
		if as, ok := a.(string); ok {
			if bs, ok := b.(string); ok {
				return as + bs, nil
			}
		}
	}

	ai, aInt := asInt(a)
	bi, bInt := asInt(b)
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return nil, errors.Unsupported(op, a)
	}

	switch op {
	case "+":
		if aInt && bInt {
			return ai + bi, nil
		}
		return af + bf, nil
	case "-":
		if aInt && bInt {
			return ai - bi, nil
		}
		return af - bf, nil
	case "*":
		if aInt && bInt {
			return ai * bi, nil
		}
		return af * bf, nil
	case "/":
		// Division always yields a float, like the original.
		if bf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return af / bf, nil
	case "%":
		if aInt && bInt {
			if bi == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return ai % bi, nil
		}
		if bf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Mod(af, bf), nil
	}
	return nil, errors.Unsupported(op, a)
}

func negate(v any) (any, error) {
	if i, ok := asInt(v); ok {
		return -i, nil
	}
	if f, ok := asFloat(v); ok {
		return -f, nil
	}
	return nil, errors.Unsupported("-", v)
}

// asInt reports whether v is a signed or unsigned integer, normalized to
// int64.
func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

// asFloat reports whether v is any numeric value, normalized to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", errors.Unsupported("string operation", v)
}

// truthy mirrors the original's coercion: nil, zero numbers, empty strings
// and empty collections are false, everything else is true.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return truthy(rv.Elem().Interface())
	}
	return true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// contains tests membership: substring for strings, key presence for maps,
// element equality for slices and arrays.
func contains(container, item any) (bool, error) {
	if isNil(container) {
		return false, nil
	}
	if s, ok := container.(string); ok {
		sub, ok := item.(string)
		if !ok {
			return false, errors.Unsupported("contains", item)
		}
		return strings.Contains(s, sub), nil
	}
	rv := reflect.ValueOf(container)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(item)
		if !kv.IsValid() || !kv.Type().ConvertibleTo(rv.Type().Key()) {
			return false, nil
		}
		return rv.MapIndex(kv.Convert(rv.Type().Key())).IsValid(), nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equals(rv.Index(i).Interface(), item) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, errors.Unsupported("contains", container)
}

func length(v any) (any, error) {
	if v == nil {
		return nil, errors.Unsupported("len", v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len(), nil
	}
	return nil, errors.Unsupported("len", v)
}
