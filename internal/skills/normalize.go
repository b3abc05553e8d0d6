// Package skills normalizes raw LLM skill detections into canonical,
// deduplicated skill records and computes their proficiency scores.
package skills

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillAliases maps lowercase variants to their canonical form. Acronyms that
// are already canonical map to themselves so normalization stays idempotent.
var skillAliases = map[string]string{
	"js":             "JavaScript",
	"javascript":     "JavaScript",
	"ts":             "TypeScript",
	"typescript":     "TypeScript",
	"golang":         "Go",
	"go":             "Go",
	"py":             "Python",
	"python":         "Python",
	"k8s":            "Kubernetes",
	"kubernetes":     "Kubernetes",
	"postgres":       "PostgreSQL",
	"postgresql":     "PostgreSQL",
	"mongo":          "MongoDB",
	"mongodb":        "MongoDB",
	"node":           "Node.js",
	"nodejs":         "Node.js",
	"node.js":        "Node.js",
	"react.js":       "React",
	"reactjs":        "React",
	"vue.js":         "Vue",
	"vuejs":          "Vue",
	"aws":            "AWS",
	"gcp":            "GCP",
	"azure":          "Azure",
	"sql":            "SQL",
	"nlp":            "NLP",
	"ml":             "Machine Learning",
	"machine learning": "Machine Learning",
	"ci/cd":          "CI/CD",
	"cicd":           "CI/CD",
	"tf":             "Terraform",
	"terraform":      "Terraform",
	"gh actions":     "GitHub Actions",
	"github actions": "GitHub Actions",
	"elastic":        "Elasticsearch",
	"elasticsearch":  "Elasticsearch",
	"c sharp":        "C#",
	"csharp":         "C#",
	"cpp":            "C++",
	"c plus plus":    "C++",
}

// Normalize maps a raw skill name to its canonical form: trim, resolve
// against the alias table case-insensitively, and otherwise preserve the
// input with standard capitalization. Normalize never fails and is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	if canonical, ok := skillAliases[lower]; ok {
		return canonical
	}

	// All-caps unmapped names are treated as acronyms and kept as-is.
	if name == strings.ToUpper(name) {
		return name
	}

	// Lowercase single words get standard capitalization. Everything else
	// (mixed case, multi-word) passes through untouched.
	if name == lower && !strings.Contains(name, " ") {
		first, size := utf8.DecodeRuneInString(name)
		return string(unicode.ToUpper(first)) + name[size:]
	}

	return name
}
