package eval

import "testing"

func TestEnvironment(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("a", Number(1))
	inner := NewEnvironment(NewEnvironment(globals))
	inner.Define("b", String("x"))

	if v, ok := inner.Get("a"); !ok || v != Number(1) {
		t.Errorf("expected a=1 through the chain, got %v", v)
	}
	if v := inner.GetAt(2, "a"); v != Number(1) {
		t.Errorf("expected a=1 at distance 2, got %v", v)
	}
	if !inner.Assign("a", Number(2)) {
		t.Errorf("assign to an outer binding failed")
	}
	if v, _ := globals.Get("a"); v != Number(2) {
		t.Errorf("expected a=2, got %v", v)
	}
	inner.AssignAt(0, "b", String("y"))
	if v := inner.GetAt(0, "b"); v != String("y") {
		t.Errorf("expected b=y, got %v", v)
	}
	if inner.Assign("c", NIL) {
		t.Errorf("assign to an unbound name must fail")
	}
	if _, ok := globals.Get("b"); ok {
		t.Errorf("b must not be visible outwards")
	}
}

func TestAssignAtMissingSlot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for a missing slot")
		}
	}()
	env := NewEnvironment(NewEnvironment(nil))
	env.AssignAt(1, "missing", NIL)
}

func TestEquality(t *testing.T) {
	f := &Function{}
	tests := []struct {
		a, b  Value
		equal bool
	}{
		{NIL, NIL, true},
		{NIL, FALSE, false},
		{Number(1), Number(1), true},
		{Number(0), String("0"), false},
		{String("a"), String("a"), true},
		{TRUE, TRUE, true},
		{f, f, true},
		{f, &Function{}, false},
	}
	for i, test := range tests {
		if isEqual(test.a, test.b) != test.equal {
			t.Errorf("tests[%d]: expected %v == %v to be %v", i, test.a, test.b, test.equal)
		}
	}
}
