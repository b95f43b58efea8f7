package check

import (
	"fmt"
	"strings"

	"github.com/kbukum/flo/errors"
)

// Expression is the structural contract for test expressions. expr.Expr
// satisfies it; so does any value with Eval and String.
type Expression interface {
	Eval(v any) (any, error)
	String() string
}

// That evaluates test against val and returns val when the test passes.
// The test must evaluate to a bool; any other result type fails the check.
// Optional msg strings are prepended to the failure message.
func That(val any, test Expression, msg ...string) (any, error) {
	out, err := test.Eval(val)
	if err != nil {
		return nil, errors.CheckFailed(fmt.Sprintf("test %s for %v could not be evaluated", test.String(), val)).WithCause(err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return nil, errors.CheckFailed(fmt.Sprintf("test %s for %v does not evaluate to a bool", test.String(), val))
	}
	if !ok {
		return nil, errors.CheckFailed(failureMessage(msg, fmt.Sprintf("value (%v) failed test %s", val, test.String())))
	}
	return val, nil
}

// Each evaluates test against every value and returns the values when all
// pass. All failures are reported together, labeled by position.
func Each(test Expression, vals ...any) ([]any, error) {
	labeled := make([]labeledValue, len(vals))
	for i, v := range vals {
		labeled[i] = labeledValue{label: fmt.Sprintf("value #%d", i+1), value: v}
	}
	if err := eachLabeled(test, labeled, nil); err != nil {
		return nil, err
	}
	return vals, nil
}

// EachNamed is Each with caller-supplied labels, typically argument names.
func EachNamed(test Expression, vals map[string]any, msg ...string) error {
	labeled := make([]labeledValue, 0, len(vals))
	for name, v := range vals {
		labeled = append(labeled, labeledValue{label: name, value: v})
	}
	return eachLabeled(test, labeled, msg)
}

// Must panics when err is non-nil, otherwise returns val. For use at
// initialization boundaries where a failed check is a programming error.
func Must(val any, err error) any {
	if err != nil {
		panic(err)
	}
	return val
}

type labeledValue struct {
	label string
	value any
}

func eachLabeled(test Expression, vals []labeledValue, msg []string) error {
	var failures []string
	for _, lv := range vals {
		out, err := test.Eval(lv.value)
		if err != nil {
			return errors.CheckFailed(fmt.Sprintf("test %s for %s = %v could not be evaluated", test.String(), lv.label, lv.value)).WithCause(err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return errors.CheckFailed(fmt.Sprintf("test %s for %s = %v does not evaluate to a bool", test.String(), lv.label, lv.value))
		}
		if !ok {
			failures = append(failures, fmt.Sprintf("%s = %v failed test %s", lv.label, lv.value, test.String()))
		}
	}
	if len(failures) > 0 {
		return errors.CheckFailed(failureMessage(msg, strings.Join(failures, "; ")))
	}
	return nil
}

func failureMessage(msg []string, detail string) string {
	if len(msg) == 0 {
		return detail
	}
	return strings.TrimSpace(strings.Join(msg, " ")) + ": " + detail
}
