package cmp_test

import (
	"testing"

	"github.com/mdaops/axon/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	t.Run("it is true for same content in same order", func(t *testing.T) {
		if !cmp.SliceEq([]int{1, 2, 3}, []int{1, 2, 3}) {
			t.Error("equal slices are not detected as equal")
		}
	})
	t.Run("it is false when ordering differs", func(t *testing.T) {
		if cmp.SliceEq([]int{1, 2, 3}, []int{3, 2, 1}) {
			t.Error("differently ordered slices are detected as equal")
		}
	})
	t.Run("it is false when length differs", func(t *testing.T) {
		if cmp.SliceEq([]int{1, 2, 3}, []int{1, 2}) {
			t.Error("slices with different length are detected as equal")
		}
	})
}

func TestSliceContentEq(t *testing.T) {
	t.Run("it ignores ordering", func(t *testing.T) {
		if !cmp.SliceContentEq([]string{"a", "b", "c"}, []string{"c", "b", "a"}) {
			t.Error("bags with same content are not detected as equal")
		}
	})
	t.Run("it counts duplicated elements", func(t *testing.T) {
		if cmp.SliceContentEq([]string{"a", "b", "c", "c"}, []string{"a", "b", "c"}) {
			t.Error("bags with different multiplicity are detected as equal")
		}
	})
}

func TestMapEq(t *testing.T) {
	t.Run("it compares maps by key and value", func(t *testing.T) {
		a := map[string]int{"x": 1, "y": 2}
		b := map[string]int{"y": 2, "x": 1}
		if !cmp.MapEq(a, b) {
			t.Error("equal maps are not detected as equal")
		}

		c := map[string]int{"x": 1, "y": 3}
		if cmp.MapEq(a, c) {
			t.Error("maps with different values are detected as equal")
		}
	})
}
