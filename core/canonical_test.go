package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCanonicalNameMergesVariants ensures the classic identity variants of
// one person collapse into a single key.
func TestCanonicalNameMergesVariants(t *testing.T) {
	variants := []string{"TannerDyck", "Tanner Dyck", "tanner-dyck", "tanner_dyck", "  tanner   dyck "}
	for _, v := range variants {
		assert.Equal(t, "Tanner Dyck", CanonicalName(v), "variant %q", v)
	}
}

// TestCanonicalName covers the individual normalization rules.
func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain handle", "alice", "Alice"},
		{"camel case", "aliceSmith", "Alice Smith"},
		{"all caps word", "ALICE", "Alice"},
		{"email-ish handle", "alice.smith@example.com", "Alice Smith Example Com"},
		{"digits kept", "agent007", "Agent007"},
		{"punctuation runs", "bob--o'brien", "Bob O Brien"},
		{"only punctuation", "--__--", ""},
		{"unicode letters", "żółta Łódka", "Żółta Łódka"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalName(tt.input))
		})
	}
}

// TestCanonicalNameIdempotent checks the core contract: canonicalizing a
// canonical name is a no-op.
func TestCanonicalNameIdempotent(t *testing.T) {
	inputs := []string{
		"TannerDyck", "tanner-dyck", "ALICE", "bob o'brien",
		"x", "", "12345", "Über Driver", "méiyǒuMíngzì",
	}
	for _, s := range inputs {
		once := CanonicalName(s)
		assert.Equal(t, once, CanonicalName(once), "input %q", s)
	}
}

// FuzzCanonicalName asserts idempotency and output shape over arbitrary
// input.
func FuzzCanonicalName(f *testing.F) {
	f.Add("TannerDyck")
	f.Add("alice.smith@example.com")
	f.Add("  ")
	f.Add("--__--")
	f.Fuzz(func(t *testing.T, raw string) {
		once := CanonicalName(raw)
		assert.Equal(t, once, CanonicalName(once))
		assert.Equal(t, once, strings.TrimSpace(once))
		assert.NotContains(t, once, "  ")
	})
}

// BenchmarkCanonicalName benchmarks normalization of a typical handle.
func BenchmarkCanonicalName(b *testing.B) {
	for b.Loop() {
		CanonicalName("someLongCamelCaseAuthorName-with_punctuation")
	}
}
