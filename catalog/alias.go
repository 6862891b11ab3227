package catalog

import (
	"sort"
	"strings"
)

// Two capability naming generations coexist in production data: the original
// drd_-prefixed names and the current unprefixed "_new" names. aliases maps
// every known legacy key to its canonical form so the equivalence set is
// enumerable instead of being re-derived by string surgery at every check.
var aliases = map[string]string{
	"drd_ipr_file":        "ipr_file_new",
	"ipr_file":            "ipr_file_new",
	"drd_research_file":   "research_file_new",
	"research_file":       "research_file_new",
	"drd_book_file":       "book_file_new",
	"book_file":           "book_file_new",
	"drd_conference_file": "conference_file_new",
	"conference_file":     "conference_file_new",
	"drd_grant_file":      "grant_file_new",
	"grant_file":          "grant_file_new",
	"drd_ipr_review":      "ipr_review",
	"drd_ipr_approve":     "ipr_approve",
	"drd_research_review": "research_review",
}

// Canonical resolves a key through the alias table. Unknown keys are their
// own canonical form.
func Canonical(key string) string {
	if c, ok := aliases[key]; ok {
		return c
	}
	return key
}

// Variants returns every key treated as equivalent to key: the key itself,
// its alias-table resolutions (both directions), and the generated forms
// (drd_ prefix added/stripped, trailing _new stripped, all combinations).
// The result is deduplicated; order is deterministic.
func Variants(key string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	add(key)
	add(Canonical(key))
	var legacies []string
	for legacy, canonical := range aliases {
		if canonical == key || canonical == Canonical(key) {
			legacies = append(legacies, legacy)
		}
	}
	sort.Strings(legacies)
	for _, legacy := range legacies {
		add(legacy)
	}

	// Generated forms cover keys the alias table has not caught up with:
	// reduce each known form to its bare stem, then emit stem, stem+_new and
	// their drd_-prefixed counterparts.
	known := make([]string, len(out))
	copy(known, out)
	for _, k := range known {
		stem := strings.TrimSuffix(strings.TrimPrefix(k, "drd_"), "_new")
		add(stem)
		add(stem + "_new")
		add("drd_" + stem)
		add("drd_" + stem + "_new")
	}
	return out
}
