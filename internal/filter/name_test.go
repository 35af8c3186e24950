package filter

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane doe"},
		{"Doe, Jane", "doe jane"},
		{"  O'Brien,   Patrick ", "o brien patrick"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeName(tc.in); got != tc.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNameMatchesTokenOrder(t *testing.T) {
	if !nameMatches("Jane Doe", "Doe, Jane") {
		t.Error("expected 'Jane Doe' to match record name 'Doe, Jane'")
	}
	if !nameMatches("Doe, Jane", "Jane Doe") {
		t.Error("expected 'Doe, Jane' to match record name 'Jane Doe'")
	}
	if !nameMatches("jane doe", "JANE DOE") {
		t.Error("expected match to be case-insensitive")
	}
	if nameMatches("Jane Doe", "John Doe") {
		t.Error("did not expect 'Jane Doe' to match 'John Doe'")
	}
}

func TestNameMatchesContainment(t *testing.T) {
	if !nameMatches("Jane", "Jane Doe") {
		t.Error("expected partial name to match by containment")
	}
	if !nameMatches("", "anything") {
		t.Error("expected empty query to match everything")
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Marie Doe")
	if first != "Jane" || last != "Marie Doe" {
		t.Errorf("splitName: got (%q, %q)", first, last)
	}
	first, last = splitName("Cher")
	if first != "Cher" || last != "" {
		t.Errorf("splitName single token: got (%q, %q)", first, last)
	}
	first, last = splitName("   ")
	if first != "" || last != "" {
		t.Errorf("splitName blank: got (%q, %q)", first, last)
	}
}
