package catalog

import "testing"

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"drd_ipr_file", "ipr_file_new"},
		{"ipr_file", "ipr_file_new"},
		{"ipr_file_new", "ipr_file_new"},
		{"drd_ipr_review", "ipr_review"},
		{"unknown_key", "unknown_key"},
	}
	for _, c := range cases {
		if got := Canonical(c.in); got != c.want {
			t.Fatalf("Canonical(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVariantsCoverBothNamingGenerations(t *testing.T) {
	cases := []struct {
		key  string
		want []string
	}{
		{"ipr_file_new", []string{"ipr_file_new", "drd_ipr_file", "ipr_file", "drd_ipr_file_new"}},
		{"drd_ipr_file", []string{"drd_ipr_file", "ipr_file_new", "ipr_file", "drd_ipr_file_new"}},
		{"ipr_review", []string{"ipr_review", "drd_ipr_review", "ipr_review_new", "drd_ipr_review_new"}},
		// Unknown keys still get the generated prefix/suffix forms.
		{"budget_view", []string{"budget_view", "drd_budget_view", "budget_view_new", "drd_budget_view_new"}},
	}
	for _, c := range cases {
		got := Variants(c.key)
		set := map[string]bool{}
		for _, v := range got {
			if set[v] {
				t.Fatalf("Variants(%q) contains duplicate %q", c.key, v)
			}
			set[v] = true
		}
		for _, w := range c.want {
			if !set[w] {
				t.Fatalf("Variants(%q) = %v, missing %q", c.key, got, w)
			}
		}
	}
}

func TestVariantsDeterministic(t *testing.T) {
	a := Variants("ipr_file_new")
	b := Variants("ipr_file_new")
	if len(a) != len(b) {
		t.Fatalf("variant count changed between calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("variant order changed at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
