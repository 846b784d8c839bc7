package util

import "testing"

func TestUnpackExactLength(t *testing.T) {
	var a, b string
	Unpack([]string{"one", "two"}, &a, &b)
	if a != "one" || b != "two" {
		t.Errorf("got %q and %q", a, b)
	}
}

func TestUnpackShortSliceLeavesRestAlone(t *testing.T) {
	a, b := "kept", "also kept"
	Unpack([]string{"new"}, &a, &b)
	if a != "new" {
		t.Errorf("a is %q, expected new", a)
	}
	if b != "also kept" {
		t.Errorf("b is %q, expected it untouched", b)
	}
}

func TestUnpackLongSliceIgnoresExtras(t *testing.T) {
	var a int
	Unpack([]int{1, 2, 3}, &a)
	if a != 1 {
		t.Errorf("a is %d, expected 1", a)
	}
}
