package id

import (
	"encoding/hex"
	"regexp"
	"testing"
)

var (
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reHex64 = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

func TestNewID32_FormatAndDecode(t *testing.T) {
	got := NewID32()

	if len(got) != 32 {
		t.Fatalf("length = %d, want 32 (got=%q)", len(got), got)
	}
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
}

func TestNewToken_FormatAndDecode(t *testing.T) {
	got := NewToken()

	if len(got) != 64 {
		t.Fatalf("length = %d, want 64 (got=%q)", len(got), got)
	}
	if !reHex64.MatchString(got) {
		t.Fatalf("not 64-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString error: %v", err)
	}
	if len(b) != 32 {
		t.Fatalf("decoded bytes = %d, want 32", len(b))
	}
}

func TestNewToken_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		tok := NewToken()
		if _, ok := seen[tok]; ok {
			t.Fatalf("duplicate token after %d iterations: %q", i, tok)
		}
		seen[tok] = struct{}{}
	}
}
