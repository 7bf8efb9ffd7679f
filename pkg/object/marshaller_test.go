package object

import (
	"math"
	"regexp"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestToValueScalars(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want Object
	}{
		{"nil", nil, NULL},
		{"int", 42, NewNumber(42)},
		{"uint8", uint8(7), NewNumber(7)},
		{"float", 1.5, NewNumber(1.5)},
		{"bool", true, TRUE},
		{"string", "hi", NewString("hi")},
		{"slice", []int{1, 2}, NewArray(NewNumber(1), NewNumber(2))},
		{"nil slice", []int(nil), NULL},
		{"map", map[string]int{"a": 1}, NewRecord(map[string]Object{"a": NewNumber(1)})},
		{"object passthrough", NewString("x"), NewString("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToValue(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ObjectsEqual(got, tt.want) {
				t.Errorf("ToValue(%v) = %s, want %s", tt.in, inspect(got), tt.want.Inspect())
			}
		})
	}
}

func TestToValueSpecialCases(t *testing.T) {
	nan, err := ToValue(math.NaN())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := nan.(*Number); !ok || !n.IsNaN() {
		t.Errorf("NaN should stay a NaN Number, got %s", nan.Inspect())
	}

	re, err := ToValue(regexp.MustCompile("a+"))
	if err != nil || re.Type() != REGEXP_OBJ {
		t.Errorf("regexp should become REGEXP, got %v, %v", re, err)
	}

	fn, err := ToValue(func(args ...Object) (Object, error) { return NewNumber(float64(len(args))), nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callable, ok := fn.(Callable)
	if !ok {
		t.Fatalf("func should become callable, got %T", fn)
	}
	res, _ := callable.Call(NULL, NULL)
	if res.(*Number).Value != 2 {
		t.Errorf("call result = %s", res.Inspect())
	}

	type point struct {
		X, Y   int
		hidden int
	}
	rec, err := ToValue(point{X: 1, Y: 2, hidden: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.(*Record).Keys(); len(got) != 2 {
		t.Errorf("struct record keys = %v, want [X Y]", got)
	}

	ptr, _ := ToValue(&point{})
	if ptr.Type() != HOST_OBJ {
		t.Errorf("pointer should become HOST, got %s", ptr.Type())
	}
}

func TestToValueProtoMessage(t *testing.T) {
	ts := timestamppb.New(time.Unix(10, 5))
	obj, err := ToValue(ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst, ok := obj.(*Instance)
	if !ok {
		t.Fatalf("expected *Instance, got %T", obj)
	}
	if inst.Class.Name != "google.protobuf.Timestamp" {
		t.Errorf("class name = %s", inst.Class.Name)
	}
	if inst.Class != ProtoClassOf(&timestamppb.Timestamp{}) {
		t.Errorf("message class should be shared by all messages of the type")
	}
	if secs := inst.Get("seconds").(*Number).Value; secs != 10 {
		t.Errorf("seconds = %v, want 10", secs)
	}
	if nanos := inst.Get("nanos").(*Number).Value; nanos != 5 {
		t.Errorf("nanos = %v, want 5", nanos)
	}

	str, err := ToValue(wrapperspb.String("cats"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := str.(*Instance).Get("value"); !ObjectsEqual(v, NewString("cats")) {
		t.Errorf("value = %s", inspect(v))
	}
	if str.(*Instance).Class == inst.Class {
		t.Errorf("different message types must have different classes")
	}

	var nilTs *timestamppb.Timestamp
	if obj, _ := ToValue(nilTs); obj != NULL {
		t.Errorf("nil message should become NULL, got %s", obj.Inspect())
	}
}

func TestFromValue(t *testing.T) {
	rec := NewRecord(map[string]Object{
		"n":   NewNumber(3),
		"s":   NewString("x"),
		"arr": NewArray(TRUE, NULL),
	})
	got, err := FromValue(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got.(map[string]interface{})
	if m["n"] != 3.0 || m["s"] != "x" {
		t.Errorf("FromValue = %v", m)
	}
	arr := m["arr"].([]interface{})
	if arr[0] != true || arr[1] != nil {
		t.Errorf("arr = %v", arr)
	}

	if _, err := FromValue(NewClass("C", nil)); err == nil {
		t.Errorf("expected error converting a class")
	}
}
