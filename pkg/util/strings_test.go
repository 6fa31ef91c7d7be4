package util

import (
	"reflect"
	"testing"
)

func TestParseIntList(t *testing.T) {
	got := ParseIntList(" 20, 50,x,-3,0,20,200")
	want := []int{20, 50, 200}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParseIntList(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3, "..."); got != "abc..." {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("abc", 3, "..."); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("héllo", 2, ""); got != "hé" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \n\t b  "); got != "a b" {
		t.Fatalf("unexpected %q", got)
	}
}
