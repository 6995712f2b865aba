package probes

import (
	"fmt"
	"reflect"
	"runtime"
)

// Kind classifies a captured value.
type Kind string

const (
	KindUndefined Kind = "undefined"
	KindBoolean   Kind = "boolean"
	KindNumber    Kind = "number"
	KindString    Kind = "string"
	KindFunction  Kind = "function"
	KindObject    Kind = "object"
	KindFuture    Kind = "future"
)

// Descriptor is a serializable rendering of a value captured at a call
// site. It never holds a reference to the value itself.
type Descriptor struct {
	Kind Kind `json:"type"`
	// Value is the string form of the value; empty for functions.
	Value string `json:"value,omitempty"`
	// Name is the function name; only set for functions.
	Name string `json:"name,omitempty"`
	// Type is the Go type name; only set for objects.
	Type string `json:"proto,omitempty"`
}

// Describe captures v as a Descriptor.
func Describe(v any) Descriptor {
	if v == nil {
		return Descriptor{Kind: KindUndefined}
	}
	if h, ok := v.(*Handle); ok && h != nil {
		return Descriptor{Kind: KindFuture, Value: h.String()}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Descriptor{Kind: KindBoolean, Value: fmt.Sprint(v)}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return Descriptor{Kind: KindNumber, Value: fmt.Sprint(v)}
	case reflect.String:
		return Descriptor{Kind: KindString, Value: rv.String()}
	case reflect.Func:
		return Descriptor{Kind: KindFunction, Name: funcName(rv)}
	default:
		return Descriptor{Kind: KindObject, Value: render(v), Type: rv.Type().String()}
	}
}

func funcName(rv reflect.Value) string {
	if rv.IsNil() {
		return ""
	}
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return ""
}

// render stringifies v, falling back to its type when a String or Error
// method panics (typically on a nil receiver).
func render(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("%T", v)
		}
	}()
	switch x := v.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}
