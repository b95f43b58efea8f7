package expr

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the recorded operation of a node.
type Kind int

const (
	// KindIdentity yields the input unchanged. Only the root has it.
	KindIdentity Kind = iota
	// KindAttr gets an attribute (struct field or string map key).
	KindAttr
	// KindItem gets an item (map entry, slice/array/string index).
	KindItem
	// KindCall invokes a method or a named built-in on the operand value.
	KindCall
	// KindUnary applies a unary operator.
	KindUnary
	// KindBinary applies a binary operator to the operand value and a
	// captured right-hand side.
	KindBinary
)

// Expr is one node of a deferred expression chain. A node records a single
// operation, a reference to its operand node, and a snapshot of any literal
// arguments captured at construction time. Nodes are never mutated after
// creation, so expressions are safe to share and reuse across pipelines
// and goroutines.
type Expr struct {
	kind    Kind
	parent  *Expr
	op      string
	args    []any
	builtin bool
	isConst bool
	value   any
}

// X is the shared placeholder: the identity expression every chain extends.
var X = &Expr{kind: KindIdentity, op: "_"}

// Value builds a constant expression that ignores its input and always
// yields v.
func Value(v any) *Expr {
	return &Expr{kind: KindIdentity, op: fmt.Sprintf("%v", v), isConst: true, value: v}
}

// derive extends the chain by one node, snapshotting args.
func (e *Expr) derive(kind Kind, op string, args ...any) *Expr {
	captured := make([]any, len(args))
	copy(captured, args)
	return &Expr{kind: kind, parent: e, op: op, args: captured}
}

func (e *Expr) call(name string, args ...any) *Expr {
	n := e.derive(KindCall, name, args...)
	n.builtin = true
	return n
}

// --- Access ---

// Attr records an attribute access: an exported struct field or a
// string-keyed map entry named name.
func (e *Expr) Attr(name string) *Expr {
	return e.derive(KindAttr, name)
}

// Item records an item access: a map entry, or a slice/array/string index.
// Negative indexes count from the end.
func (e *Expr) Item(key any) *Expr {
	return e.derive(KindItem, "", key)
}

// Method records an invocation of the exported method name with the given
// literal arguments.
func (e *Expr) Method(name string, args ...any) *Expr {
	return e.derive(KindCall, name, args...)
}

// Apply records an invocation of an arbitrary function on the operand value.
func (e *Expr) Apply(fn func(any) (any, error)) *Expr {
	return e.call("Apply", fn)
}

// --- Comparison operators ---

// Eq compares for equality. A rhs that is itself an expression is evaluated
// against the same input independently.
func (e *Expr) Eq(rhs any) *Expr { return e.derive(KindBinary, "==", rhs) }

// Ne compares for inequality.
func (e *Expr) Ne(rhs any) *Expr { return e.derive(KindBinary, "!=", rhs) }

// Lt compares with <.
func (e *Expr) Lt(rhs any) *Expr { return e.derive(KindBinary, "<", rhs) }

// Le compares with <=.
func (e *Expr) Le(rhs any) *Expr { return e.derive(KindBinary, "<=", rhs) }

// Gt compares with >.
func (e *Expr) Gt(rhs any) *Expr { return e.derive(KindBinary, ">", rhs) }

// Ge compares with >=.
func (e *Expr) Ge(rhs any) *Expr { return e.derive(KindBinary, ">=", rhs) }

// --- Arithmetic operators ---

// Add applies +. Numbers add; strings concatenate.
func (e *Expr) Add(rhs any) *Expr { return e.derive(KindBinary, "+", rhs) }

// Sub applies -.
func (e *Expr) Sub(rhs any) *Expr { return e.derive(KindBinary, "-", rhs) }

// Mul applies *.
func (e *Expr) Mul(rhs any) *Expr { return e.derive(KindBinary, "*", rhs) }

// Div applies /. Division always yields a float.
func (e *Expr) Div(rhs any) *Expr { return e.derive(KindBinary, "/", rhs) }

// Mod applies %.
func (e *Expr) Mod(rhs any) *Expr { return e.derive(KindBinary, "%", rhs) }

// --- Unary operators ---

// Not negates the truthiness of the operand value.
func (e *Expr) Not() *Expr { return e.derive(KindUnary, "!") }

// Neg arithmetically negates the operand value.
func (e *Expr) Neg() *Expr { return e.derive(KindUnary, "-") }

// --- Built-ins ---

// Has tests whether the operand value contains item: substring for strings,
// key for maps, element for slices and arrays. A nil operand yields false.
func (e *Expr) Has(item any) *Expr { return e.call("Has", item) }

// IsNil tests whether the operand value is nil.
func (e *Expr) IsNil() *Expr { return e.call("IsNil") }

// NotNil tests whether the operand value is not nil.
func (e *Expr) NotNil() *Expr { return e.call("NotNil") }

// In tests whether the operand value is an element of container.
func (e *Expr) In(container any) *Expr { return e.call("In", container) }

// NotIn tests whether the operand value is not an element of container.
func (e *Expr) NotIn(container any) *Expr { return e.call("NotIn", container) }

// Truthy converts the operand value to its truthiness: false for nil, zero
// numbers, empty strings, and empty slices/maps/arrays.
func (e *Expr) Truthy() *Expr { return e.call("Truthy") }

// Falsey is the negation of Truthy.
func (e *Expr) Falsey() *Expr { return e.call("Falsey") }

// Between tests lo <= v < hi.
func (e *Expr) Between(lo, hi any) *Expr {
	return e.BetweenBounds(lo, hi, true, false)
}

// BetweenBounds tests that the operand value lies between lo and hi with
// explicit bound inclusivity.
func (e *Expr) BetweenBounds(lo, hi any, leftInclusive, rightInclusive bool) *Expr {
	return e.call("Between", lo, hi, leftInclusive, rightInclusive)
}

// BetweenSpec tests that the operand value lies in the interval written in
// mathematical form, e.g. "[2,10)" for 2 <= v < 10 or "(1,3]" for
// 1 < v <= 3.
func (e *Expr) BetweenSpec(spec string) *Expr {
	lo, hi, leftInc, rightInc, err := parseInterval(spec)
	if err != nil {
		return e.call("Between", err, spec)
	}
	return e.BetweenBounds(lo, hi, leftInc, rightInc)
}

// Matches tests the operand string against pattern, case-insensitively.
// The match is anchored at the start of the string. Use MatchesCase for a
// case-sensitive match.
func (e *Expr) Matches(pattern string) *Expr {
	return e.matches("(?i)^(?:"+pattern+")", pattern)
}

// MatchesCase tests the operand string against pattern, case-sensitively.
// The match is anchored at the start of the string.
func (e *Expr) MatchesCase(pattern string) *Expr {
	return e.matches("^(?:"+pattern+")", pattern)
}

func (e *Expr) matches(compiled, display string) *Expr {
	re, err := regexp.Compile(compiled)
	if err != nil {
		return e.call("Matches", err, display)
	}
	return e.call("Matches", re, display)
}

// Replace substitutes every match of pattern in the operand string with
// repl.
func (e *Expr) Replace(pattern, repl string) *Expr {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return e.call("Replace", err, pattern)
	}
	return e.call("Replace", re, repl, pattern)
}

// Upper uppercases the operand string.
func (e *Expr) Upper() *Expr { return e.call("Upper") }

// Lower lowercases the operand string.
func (e *Expr) Lower() *Expr { return e.call("Lower") }

// TrimSpace trims whitespace from the operand string.
func (e *Expr) TrimSpace() *Expr { return e.call("TrimSpace") }

// Split splits the operand string around sep.
func (e *Expr) Split(sep string) *Expr { return e.call("Split", sep) }

// Len yields the length of the operand string, slice, map, or array.
func (e *Expr) Len() *Expr { return e.call("Len") }

// --- Introspection ---

// Kind returns the kind of the final node of the chain.
func (e *Expr) Kind() Kind { return e.kind }

// position is the zero-based index of this node counted from the root.
func (e *Expr) position() int {
	n := 0
	for p := e.parent; p != nil; p = p.parent {
		n++
	}
	return n
}

// String renders the whole chain, placeholder first.
func (e *Expr) String() string {
	if e.parent == nil {
		return e.op
	}
	return e.parent.String() + e.render()
}

// render formats only this node's own operation.
func (e *Expr) render() string {
	switch e.kind {
	case KindIdentity:
		return e.op
	case KindAttr:
		return "." + e.op
	case KindItem:
		return fmt.Sprintf("[%v]", e.args[0])
	case KindCall:
		return fmt.Sprintf(".%s(%s)", e.op, renderArgs(e.displayArgs()))
	case KindUnary:
		return " " + e.op
	case KindBinary:
		return fmt.Sprintf(" %s %s", e.op, renderArg(e.args[0]))
	}
	return "?"
}

// displayArgs hides internal argument rewrites (compiled regexps, parsed
// bounds) behind the original textual form where one was kept.
func (e *Expr) displayArgs() []any {
	if !e.builtin {
		return e.args
	}
	if len(e.args) > 0 {
		if _, ok := e.args[0].(error); ok {
			return e.args[1:]
		}
	}
	switch e.op {
	case "Matches":
		if len(e.args) >= 2 {
			if s, ok := e.args[1].(string); ok {
				return []any{s}
			}
		}
	case "Replace":
		if len(e.args) >= 3 {
			if s, ok := e.args[2].(string); ok {
				return []any{s, e.args[1]}
			}
		}
	case "Apply":
		return []any{"fn"}
	}
	return e.args
}

func renderArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = renderArg(a)
	}
	return strings.Join(parts, ", ")
}

func renderArg(a any) string {
	switch v := a.(type) {
	case *Expr:
		return v.String()
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
