package flow

import (
	"reflect"

	"github.com/kbukum/flo/errors"
)

// Mapper is a transform-stage function.
type Mapper func(any) (any, error)

// PredicateFunc is a predicate-stage function.
type PredicateFunc func(any) (bool, error)

// Evaluator is the structural contract for expression-valued stages. Any
// value with Eval and String works; expr.Expr satisfies it without this
// package importing it.
type Evaluator interface {
	Eval(v any) (any, error)
	String() string
}

// StageKind discriminates transform from predicate stages.
type StageKind int

const (
	// Transform replaces the current value with fn(current).
	Transform StageKind = iota
	// Predicate abandons the current element when fn(current) is false.
	Predicate
)

// Stage is one recorded pipeline step. Immutable once appended.
type Stage struct {
	kind   StageKind
	mapFn  Mapper
	predFn PredicateFunc
	label  string
}

// Kind returns the stage kind.
func (s Stage) Kind() StageKind { return s.kind }

// Label returns the stage's display label.
func (s Stage) Label() string { return s.label }

func transformStage(label string, fn Mapper) Stage {
	return Stage{kind: Transform, mapFn: fn, label: label}
}

func predicateStage(label string, fn PredicateFunc) Stage {
	return Stage{kind: Predicate, predFn: fn, label: label}
}

// Key adapts an Evaluator to the Mapper shape, for collector key options.
func Key(e Evaluator) Mapper { return e.Eval }

// evalPredicate adapts an Evaluator to a predicate, coercing the evaluated
// result to its truthiness: false for nil, false, zero numbers, empty
// strings and empty collections.
func evalPredicate(e Evaluator) PredicateFunc {
	return func(v any) (bool, error) {
		out, err := e.Eval(v)
		if err != nil {
			return false, err
		}
		return truthy(out), nil
	}
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// applyStages feeds v through the stages in insertion order. A false
// predicate abandons the element immediately: remaining stages do not run.
// A stage failure is tagged with the stage's zero-based position.
func applyStages(stages []Stage, v any) (out any, keep bool, err error) {
	for i, s := range stages {
		switch s.kind {
		case Transform:
			v, err = s.mapFn(v)
			if err != nil {
				return nil, false, errors.StageFailed(i, s.label, err)
			}
		case Predicate:
			ok, err := s.predFn(v)
			if err != nil {
				return nil, false, errors.StageFailed(i, s.label, err)
			}
			if !ok {
				return nil, false, nil
			}
		}
	}
	return v, true, nil
}
