package typesys_test

import (
	"testing"

	"github.com/joosc/compiler/internal/typesys"
)

func TestTypeIdEqualityIsStructural(t *testing.T) {
	a := typesys.TypeId{Base: typesys.FirstUserBase, NDims: 0}
	b := typesys.TypeId{Base: typesys.FirstUserBase, NDims: 0}
	if a != b {
		t.Fatalf("expected structural equality")
	}
	arr := a.ArrayOf()
	if arr.Elem() != a {
		t.Fatalf("ArrayOf/Elem round-trip failed: %+v", arr.Elem())
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []typesys.TypeId{typesys.Unassigned, typesys.ErrorType, typesys.Null, typesys.Void, typesys.Bool, typesys.Byte, typesys.Char, typesys.Short, typesys.Int}
	seen := map[typesys.TypeId]bool{}
	for _, s := range sentinels {
		if seen[s] {
			t.Fatalf("duplicate sentinel %+v", s)
		}
		seen[s] = true
	}
}

func TestIntegralPrimitives(t *testing.T) {
	for _, id := range []typesys.TypeId{typesys.Byte, typesys.Short, typesys.Char, typesys.Int} {
		if !id.IsIntegral() {
			t.Errorf("%+v should be integral", id)
		}
	}
	if typesys.Bool.IsIntegral() {
		t.Error("bool must not be integral")
	}
	if typesys.Int.ArrayOf().IsIntegral() {
		t.Error("int[] must not be integral")
	}
}

func TestReferenceClassification(t *testing.T) {
	if !typesys.Null.IsReference() {
		t.Error("null must be a reference")
	}
	if !typesys.Int.ArrayOf().IsReference() {
		t.Error("int[] must be a reference")
	}
	if typesys.Int.IsReference() {
		t.Error("int must not be a reference")
	}
	user := typesys.TypeId{Base: typesys.FirstUserBase}
	if !user.IsReference() {
		t.Error("user type must be a reference")
	}
}
