package tracker

import (
	"regexp"
	"testing"
)

func TestNewID(t *testing.T) {
	format := regexp.MustCompile(`^[0-9a-z]{8,}[0-9a-z]{5}$`)
	prev := ""
	for range 10000 {
		id := NewID()
		if !format.MatchString(id) {
			t.Fatalf("NewID() = %q, not a base 36 token", id)
		}
		if id == prev {
			t.Fatalf("NewID() returned %q twice in a row", id)
		}
		prev = id
	}
}
