package psuutils

import (
	"errors"
	"testing"
)

func TestAs_MatchingKind(t *testing.T) {
	b, err := As[bool](BoolValue(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b {
		t.Errorf("As[bool] = true, want false")
	}

	s, err := As[string](StringValue("psu"))
	if err != nil || s != "psu" {
		t.Errorf("As[string] = %q, %v", s, err)
	}
}

func TestAs_MismatchNeverCoerces(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		run  func(Value) error
		got  Kind
	}{
		{"string as bool", StringValue("true"), func(v Value) error { _, err := As[bool](v); return err }, KindString},
		{"bool as string", BoolValue(true), func(v Value) error { _, err := As[string](v); return err }, KindBool},
		{"uint64 as int64", Uint64Value(1), func(v Value) error { _, err := As[int64](v); return err }, KindUint64},
		{"invalid as bool", Value{}, func(v Value) error { _, err := As[bool](v); return err }, KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(tt.v)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("err = %v, want ErrTypeMismatch", err)
			}
			var tm *TypeMismatchError
			if !errors.As(err, &tm) {
				t.Fatalf("err is %T, want *TypeMismatchError", err)
			}
			if tm.Got != tt.got {
				t.Errorf("Got = %s, want %s", tm.Got, tt.got)
			}
		})
	}
}

func TestAs_MismatchReturnsZero(t *testing.T) {
	b, err := As[bool](StringValue("yes"))
	if err == nil {
		t.Fatal("expected error")
	}
	if b {
		t.Error("mismatch must not yield true")
	}
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
		want any
	}{
		{"x", KindString, "x"},
		{true, KindBool, true},
		{int16(-2), KindInt64, int64(-2)},
		{int32(-3), KindInt64, int64(-3)},
		{int64(4), KindInt64, int64(4)},
		{uint8(5), KindUint64, uint64(5)},
		{uint16(6), KindUint64, uint64(6)},
		{uint32(7), KindUint64, uint64(7)},
		{uint64(8), KindUint64, uint64(8)},
		{1.5, KindDouble, 1.5},
	}
	for _, tt := range tests {
		v, err := ValueOf(tt.in)
		if err != nil {
			t.Fatalf("ValueOf(%#v): %v", tt.in, err)
		}
		if v.Kind() != tt.kind {
			t.Errorf("ValueOf(%#v).Kind() = %s, want %s", tt.in, v.Kind(), tt.kind)
		}
		if v.Interface() != tt.want {
			t.Errorf("ValueOf(%#v).Interface() = %#v, want %#v", tt.in, v.Interface(), tt.want)
		}
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	_, err := ValueOf([]string{"a"})
	if !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("err = %v, want ErrUnsupportedKind", err)
	}
}

func TestParseKind(t *testing.T) {
	for k := KindString; k <= KindDouble; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("invalid"); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("ParseKind(invalid) err = %v", err)
	}
}
