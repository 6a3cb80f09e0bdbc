package random

import "testing"

func TestSeq(t *testing.T) {
	s := Seq(32)
	if len(s) != 32 {
		t.Fatalf("len = %d", len(s))
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			t.Fatalf("unexpected rune %q", c)
		}
	}
	if Seq(32) == s {
		t.Error("two sequences are identical")
	}
}

func TestNum(t *testing.T) {
	for i := 0; i < 100; i++ {
		if n := Num(10); n < 0 || n >= 10 {
			t.Fatalf("Num(10) = %d", n)
		}
	}
}
