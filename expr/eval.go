package expr

import (
	"regexp"
	"strings"

	"github.com/kbukum/flo/errors"
)

// Eval replays the chain from the root against v: the identity root yields
// v, and each subsequent node evaluates its operand first, then applies its
// own operation to the result. The node graph is never mutated and nothing
// is cached between calls, so concurrent evaluation is safe.
//
// Any failure raised by the underlying access propagates with its kind
// reachable through errors.Unwrap, tagged once with the zero-based position
// of the failing node.
func (e *Expr) Eval(v any) (any, error) {
	if e.kind == KindIdentity {
		if e.isConst {
			return e.value, nil
		}
		return v, nil
	}

	base, err := e.parent.Eval(v)
	if err != nil {
		return nil, err
	}

	out, err := e.apply(base, v)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeEvalFailed {
			// Already tagged by a nested expression operand.
			return nil, err
		}
		return nil, errors.EvalFailed(e.position(), strings.TrimSpace(e.render()), err)
	}
	return out, nil
}

// Fn adapts the expression to the transform-stage function shape.
func (e *Expr) Fn() func(any) (any, error) {
	return e.Eval
}

// Pred adapts the expression to the predicate-stage function shape. The
// evaluated result is coerced with the same truthiness rules as Truthy.
func (e *Expr) Pred() func(any) (bool, error) {
	return func(v any) (bool, error) {
		out, err := e.Eval(v)
		if err != nil {
			return false, err
		}
		return truthy(out), nil
	}
}

// apply performs this node's own operation on the evaluated operand value.
// input is the original evaluation input, needed so that expression-valued
// binary operands evaluate against the same input independently.
func (e *Expr) apply(base, input any) (any, error) {
	switch e.kind {
	case KindAttr:
		return attrGet(base, e.op)
	case KindItem:
		return itemGet(base, e.args[0])
	case KindCall:
		if e.builtin {
			return e.applyBuiltin(base)
		}
		return callMethod(base, e.op, e.args)
	case KindUnary:
		switch e.op {
		case "!":
			return !truthy(base), nil
		case "-":
			return negate(base)
		}
		return nil, errors.Unsupported(e.op, base)
	case KindBinary:
		rhs := e.args[0]
		if re, ok := rhs.(*Expr); ok {
			rv, err := re.Eval(input)
			if err != nil {
				return nil, err
			}
			rhs = rv
		}
		return binaryOp(e.op, base, rhs)
	}
	return nil, errors.Unsupported(e.op, base)
}

func (e *Expr) applyBuiltin(v any) (any, error) {
	// A builder that failed to parse its arguments records the error as the
	// first captured arg; it surfaces on first evaluation.
	if len(e.args) > 0 {
		if err, ok := e.args[0].(error); ok {
			return nil, errors.InvalidOption(e.op, err.Error()).WithCause(err)
		}
	}

	switch e.op {
	case "Apply":
		fn := e.args[0].(func(any) (any, error))
		return fn(v)
	case "Has":
		if isNil(v) {
			return false, nil
		}
		return contains(v, e.args[0])
	case "IsNil":
		return isNil(v), nil
	case "NotNil":
		return !isNil(v), nil
	case "In":
		return contains(e.args[0], v)
	case "NotIn":
		ok, err := contains(e.args[0], v)
		if err != nil {
			return nil, err
		}
		return !ok, nil
	case "Truthy":
		return truthy(v), nil
	case "Falsey":
		return !truthy(v), nil
	case "Between":
		return between(v, e.args[0], e.args[1], e.args[2].(bool), e.args[3].(bool))
	case "Matches":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return e.args[0].(*regexp.Regexp).MatchString(s), nil
	case "Replace":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return e.args[0].(*regexp.Regexp).ReplaceAllString(s, e.args[1].(string)), nil
	case "Upper":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return strings.ToUpper(s), nil
	case "Lower":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return strings.ToLower(s), nil
	case "TrimSpace":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(s), nil
	case "Split":
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return strings.Split(s, e.args[0].(string)), nil
	case "Len":
		return length(v)
	}
	return nil, errors.Unsupported(e.op, v)
}

func between(v, lo, hi any, leftInclusive, rightInclusive bool) (bool, error) {
	cl, err := order(lo, v)
	if err != nil {
		return false, err
	}
	if leftInclusive {
		if cl > 0 {
			return false, nil
		}
	} else if cl >= 0 {
		return false, nil
	}
	cr, err := order(v, hi)
	if err != nil {
		return false, err
	}
	if rightInclusive {
		return cr <= 0, nil
	}
	return cr < 0, nil
}
