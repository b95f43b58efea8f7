package expr

import (
	"reflect"
	"unicode"

	"github.com/kbukum/flo/errors"
)

// attrGet resolves an exported struct field or a string-keyed map entry.
func attrGet(v any, name string) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.NoSuchAttr(name, v)
	}
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, errors.NoSuchAttr(name, v)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if !exported(name) {
			return nil, errors.NoSuchAttr(name, v)
		}
		f := rv.FieldByName(name)
		if !f.IsValid() {
			return nil, errors.NoSuchAttr(name, v)
		}
		return f.Interface(), nil
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, errors.NoSuchAttr(name, v)
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(kt))
		if !mv.IsValid() {
			return nil, errors.NoSuchAttr(name, v)
		}
		return mv.Interface(), nil
	}
	return nil, errors.NoSuchAttr(name, v)
}

// itemGet resolves a map entry or a slice/array/string index. Negative
// indexes count from the end. String indexing yields a one-byte string.
func itemGet(v any, key any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.NoSuchItem(key, v)
	}
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, errors.NoSuchItem(key, v)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() || !kv.Type().ConvertibleTo(rv.Type().Key()) {
			return nil, errors.NoSuchItem(key, v)
		}
		mv := rv.MapIndex(kv.Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, errors.NoSuchItem(key, v)
		}
		return mv.Interface(), nil
	case reflect.Slice, reflect.Array, reflect.String:
		idx, ok := asInt(key)
		if !ok {
			return nil, errors.NoSuchItem(key, v)
		}
		if rv.Kind() == reflect.String {
			// Strings index by rune, not byte.
			runes := []rune(rv.String())
			n := int64(len(runes))
			if idx < 0 {
				idx += n
			}
			if idx < 0 || idx >= n {
				return nil, errors.NoSuchItem(key, v)
			}
			return string(runes[idx]), nil
		}
		n := int64(rv.Len())
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			return nil, errors.NoSuchItem(key, v)
		}
		return rv.Index(int(idx)).Interface(), nil
	}
	return nil, errors.NoSuchItem(key, v)
}

// callMethod invokes the exported method name on v with the captured args.
// Pointer-receiver methods on addressable copies of value operands work.
// A trailing error result is unwrapped into the second return value.
func callMethod(v any, name string, args []any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errors.NoSuchMethod(name, v)
	}
	m := rv.MethodByName(name)
	if !m.IsValid() && rv.Kind() != reflect.Ptr {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		m = pv.MethodByName(name)
	}
	if !m.IsValid() {
		return nil, errors.NoSuchMethod(name, v)
	}

	in, err := methodArgs(m.Type(), name, args)
	if err != nil {
		return nil, err
	}
	return methodResults(m.Call(in))
}

func methodArgs(mt reflect.Type, name string, args []any) ([]reflect.Value, error) {
	numIn := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, errors.Newf(errors.ErrCodeNoSuchMethod,
				"method %q wants at least %d args, got %d", name, numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, errors.Newf(errors.ErrCodeNoSuchMethod,
			"method %q wants %d args, got %d", name, numIn, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if mt.IsVariadic() && i >= numIn-1 {
			pt = mt.In(numIn - 1).Elem()
		} else {
			pt = mt.In(i)
		}
		av := reflect.ValueOf(arg)
		switch {
		case !av.IsValid():
			in[i] = reflect.Zero(pt)
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, errors.Newf(errors.ErrCodeNoSuchMethod,
				"method %q arg %d: cannot use %T as %s", name, i, arg, pt)
		}
	}
	return in, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func methodResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type().Implements(errType) {
			if out[0].IsNil() {
				return nil, nil
			}
			return nil, out[0].Interface().(error)
		}
		return out[0].Interface(), nil
	default:
		last := out[len(out)-1]
		if last.Type().Implements(errType) {
			var err error
			if !last.IsNil() {
				err = last.Interface().(error)
			}
			if len(out) == 2 {
				return out[0].Interface(), err
			}
			vals := make([]any, len(out)-1)
			for i := range vals {
				vals[i] = out[i].Interface()
			}
			return vals, err
		}
		vals := make([]any, len(out))
		for i := range vals {
			vals[i] = out[i].Interface()
		}
		return vals, nil
	}
}

func exported(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
