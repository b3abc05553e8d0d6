package skills

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Aliases(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"JS", "JavaScript"},
		{"js", "JavaScript"},
		{"K8s", "Kubernetes"},
		{"golang", "Go"},
		{"postgres", "PostgreSQL"},
		{"nodejs", "Node.js"},
		{"aws", "AWS"},
		{"ml", "Machine Learning"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "Normalize(%q)", tt.raw)
	}
}

func TestNormalize_Unmapped(t *testing.T) {
	// Lowercase single words get standard capitalization.
	assert.Equal(t, "Rust", Normalize("rust"))
	// Mixed case passes through.
	assert.Equal(t, "GraphQL", Normalize("GraphQL"))
	// Multi-word names pass through.
	assert.Equal(t, "event sourcing", Normalize("event sourcing"))
	// All-caps unmapped names are kept as acronyms.
	assert.Equal(t, "ETL", Normalize("ETL"))
	// Whitespace is trimmed.
	assert.Equal(t, "Docker", Normalize("  Docker  "))
	assert.Equal(t, "", Normalize("   "))
	// Capitalization decodes the leading rune, not the leading byte.
	assert.Equal(t, "Émacs", Normalize("émacs"))
	assert.True(t, utf8.ValidString(Normalize("émacs")))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"JS", "javascript", "golang", "K8s", "rust", "GraphQL", "ETL",
		"event sourcing", "machine learning", "c++", "csharp", "", "  Docker ",
		"émacs", "über",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", in)
	}
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "programming_languages", string(Categorize("Python")))
	assert.Equal(t, "devops_tools", string(Categorize("Kubernetes")))
	assert.Equal(t, "databases", string(Categorize("PostgreSQL")))
	assert.Equal(t, "other", string(Categorize("Underwater Basketweaving")))
}
