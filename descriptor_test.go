package probes

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type panickyStringer struct{ s *string }

func (p panickyStringer) String() string { return *p.s }

func sampleMethod() {}

func TestDescribe(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Descriptor
	}{
		{name: "nil", in: nil, want: Descriptor{Kind: KindUndefined}},
		{name: "bool", in: true, want: Descriptor{Kind: KindBoolean, Value: "true"}},
		{name: "int", in: 42, want: Descriptor{Kind: KindNumber, Value: "42"}},
		{name: "float", in: 1.5, want: Descriptor{Kind: KindNumber, Value: "1.5"}},
		{name: "string", in: "foo", want: Descriptor{Kind: KindString, Value: "foo"}},
		{name: "error", in: errors.New("boom"), want: Descriptor{Kind: KindObject, Value: "boom", Type: "*errors.errorString"}},
		{name: "struct", in: struct{ A int }{A: 1}, want: Descriptor{Kind: KindObject, Value: "{1}", Type: "struct { A int }"}},
		{name: "slice", in: []int{1, 2}, want: Descriptor{Kind: KindObject, Value: "[1 2]", Type: "[]int"}},
		{name: "panicking_stringer", in: panickyStringer{}, want: Descriptor{Kind: KindObject, Value: "probes.panickyStringer", Type: "probes.panickyStringer"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Describe(tc.in)); diff != "" {
				t.Fatalf("Describe(%#v) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestDescribeFunction(t *testing.T) {
	d := Describe(sampleMethod)
	if d.Kind != KindFunction {
		t.Fatalf("expected function kind; got %q", d.Kind)
	}
	if !strings.HasSuffix(d.Name, ".sampleMethod") {
		t.Fatalf("unexpected function name %q", d.Name)
	}
	if d.Value != "" {
		t.Fatalf("functions carry no value; got %q", d.Value)
	}

	var nilFunc func()
	if d := Describe(nilFunc); d.Kind != KindFunction || d.Name != "" {
		t.Fatalf("unexpected descriptor for nil func: %+v", d)
	}
}

func TestDescribeHandle(t *testing.T) {
	h := NewHandle()
	if d := Describe(h); d.Kind != KindFuture || d.Value != "Handle(pending)" {
		t.Fatalf("unexpected descriptor for pending handle: %+v", d)
	}
	h.Resolve(1)
	if d := Describe(h); d.Value != "Handle(resolved)" {
		t.Fatalf("unexpected descriptor for resolved handle: %+v", d)
	}
}

func TestOperation(t *testing.T) {
	op := NewOperation("get-user", sampleMethod, "svc", 7, nil)
	if op.Label != "get-user" || op.Method.Kind != KindFunction || op.Context.Value != "svc" {
		t.Fatalf("unexpected operation: %+v", op)
	}
	if len(op.Args) != 2 || op.Args[0].Value != "7" || op.Args[1].Kind != KindUndefined {
		t.Fatalf("unexpected args: %+v", op.Args)
	}

	ret := op.Returned("ok")
	if ret.Return == nil || ret.Return.Value != "ok" || ret.Throw != nil {
		t.Fatalf("unexpected returned operation: %+v", ret)
	}
	if op.Return != nil {
		t.Fatalf("Returned must not modify the receiver")
	}

	thrown := ret.Threw(errors.New("nope"))
	if thrown.Throw == nil || thrown.Throw.Value != "nope" || thrown.Return != nil {
		t.Fatalf("unexpected thrown operation: %+v", thrown)
	}

	s := Settlement{Range: NewDuration(0, 10), Value: Describe("done")}
	settled := ret.settled(Resolved, s)
	if settled.Resolved == nil || settled.Rejected != nil || ret.Resolved != nil {
		t.Fatalf("unexpected settled operation: %+v", settled)
	}
	if diff := cmp.Diff(ret.Args, settled.Args); diff != "" {
		t.Fatalf("settled args mismatch (-want +got):\n%s", diff)
	}
	settled.Args[0].Value = "changed"
	if ret.Args[0].Value != "7" {
		t.Fatalf("settled copy shares args with the original")
	}

	if got := Eager(op)(); got.Label != op.Label {
		t.Fatalf("Eager returned a different operation")
	}
}

func TestNewLabel(t *testing.T) {
	a, b := NewLabel(), NewLabel()
	if a == b || len(a) != 36 {
		t.Fatalf("unexpected labels %q and %q", a, b)
	}
}
