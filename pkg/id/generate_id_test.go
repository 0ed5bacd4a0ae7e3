package id

import (
	"encoding/hex"
	"regexp"
	"strings"
	"testing"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if !reHex32.MatchString(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("decoded bytes = %d, want 16", len(b))
	}
	// version nibble of a v4 uuid
	if got[12] != '4' {
		t.Fatalf("expected uuid v4 version nibble, got %q", got)
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID32()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsID32(t *testing.T) {
	if !IsID32(NewID32()) {
		t.Fatal("IsID32 rejected a generated id")
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		strings.Repeat("a", 31),
		strings.Repeat("a", 33),
		strings.Repeat("g", 32),
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
	} {
		if IsID32(s) {
			t.Fatalf("IsID32 accepted %q", s)
		}
	}
}
