package psuutils

import (
	"fmt"
)

// Kind tags the payload held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt64
	KindUint64
	KindDouble
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindDouble:
		return "double"
	default:
		return "invalid"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindString; k <= KindDouble; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// Primitive is the closed set of Go types a Value can hold.
type Primitive interface {
	string | bool | int64 | uint64 | float64
}

// Value is a property value whose type is only known at runtime.
// The zero Value is invalid.
type Value struct {
	kind Kind
	v    any
}

func StringValue(s string) Value  { return Value{kind: KindString, v: s} }
func BoolValue(b bool) Value      { return Value{kind: KindBool, v: b} }
func Int64Value(i int64) Value    { return Value{kind: KindInt64, v: i} }
func Uint64Value(u uint64) Value  { return Value{kind: KindUint64, v: u} }
func DoubleValue(f float64) Value { return Value{kind: KindDouble, v: f} }

// ValueOf wraps a decoded wire value. Signed and unsigned integers of any width
// are widened to int64 and uint64; other types are rejected.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case int16:
		return Int64Value(int64(t)), nil
	case int32:
		return Int64Value(int64(t)), nil
	case int64:
		return Int64Value(t), nil
	case int:
		return Int64Value(int64(t)), nil
	case uint8:
		return Uint64Value(uint64(t)), nil
	case uint16:
		return Uint64Value(uint64(t)), nil
	case uint32:
		return Uint64Value(uint64(t)), nil
	case uint64:
		return Uint64Value(t), nil
	case float64:
		return DoubleValue(t), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedKind, x)
	}
}

func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a payload.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Interface returns the payload, or nil for the zero Value.
func (v Value) Interface() any { return v.v }

func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("%v", v.v)
}

// As narrows v to T. It never converts: asking for a bool from a string
// Value returns a *TypeMismatchError.
func As[T Primitive](v Value) (T, error) {
	t, ok := v.v.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{Want: kindOf(zero), Got: v.kind}
	}
	return t, nil
}

func kindOf(x any) Kind {
	switch x.(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case int64:
		return KindInt64
	case uint64:
		return KindUint64
	case float64:
		return KindDouble
	default:
		return KindInvalid
	}
}
