package category

import "testing"

func TestNormalizeAliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fullstack", FullStack},
		{"Full-Stack Developer", FullStack},
		{"FULLSTACK DEVELOPER", FullStack},
		{"python", Python},
		{"Python Developer", Python},
		{"backend", Backend},
		{"Back-End", Backend},
		{"frontend", Frontend},
		{"front-end", Frontend},
		{"ux designer", UIUX},
		{"UI Designer", UIUX},
		{"ui/ux", UIUX},
		{"ui ux designer", UIUX},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePassthrough(t *testing.T) {
	// Unknown categories pass through trimmed, unchanged.
	if got := Normalize("  DevOps Engineer  "); got != "DevOps Engineer" {
		t.Errorf("Normalize passthrough = %q, want %q", got, "DevOps Engineer")
	}
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   "); got != "" {
		t.Errorf("Normalize(blank) = %q, want empty", got)
	}
}

func TestCanonicalListStable(t *testing.T) {
	canonical := Canonical()
	if len(canonical) != 5 {
		t.Fatalf("expected 5 canonical categories, got %d", len(canonical))
	}
	// Every canonical label must normalize to itself.
	for _, c := range canonical {
		if got := Normalize(c); got != c {
			t.Errorf("canonical label %q normalized to %q", c, got)
		}
	}
}
