package naming

import "testing"

func TestQualifyAccount(t *testing.T) {
	cases := []struct {
		value string
		abbr  string
		want  string
	}{
		{"1000 - Cash", "AC", "1000 - Cash - AC"},
		{"1000 - Cash - AC", "AC", "1000 - Cash - AC"},
		{"Cash", "", "Cash"},
		{"Cash", "  ", "Cash"},
	}
	for _, tc := range cases {
		if got := QualifyAccount(tc.value, tc.abbr); got != tc.want {
			t.Fatalf("QualifyAccount(%q, %q) = %q, want %q", tc.value, tc.abbr, got, tc.want)
		}
	}
}

func TestHasCompanySuffix(t *testing.T) {
	if !HasCompanySuffix("Cash - AC", "AC") {
		t.Fatalf("expected suffix to be detected")
	}
	if HasCompanySuffix("Cash - ACX", "AC") {
		t.Fatalf("unexpected suffix match")
	}
	if !HasCompanySuffix("Cash", "") {
		t.Fatalf("empty abbreviation must count as present")
	}
}

func TestSplitTitle(t *testing.T) {
	cases := []struct {
		value      string
		wantNumber string
		wantName   string
	}{
		{"1000 - Cash", "1000", "Cash"},
		{"1000 - Cash - Petty", "1000", "Cash - Petty"},
		{"Cash", "", "Cash"},
	}
	for _, tc := range cases {
		number, name := SplitTitle(tc.value)
		if number != tc.wantNumber || name != tc.wantName {
			t.Fatalf("SplitTitle(%q) = (%q, %q), want (%q, %q)", tc.value, number, name, tc.wantNumber, tc.wantName)
		}
	}
}

func TestFormatTitle(t *testing.T) {
	if got := FormatTitle("1000", "Cash"); got != "1000 - Cash" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := FormatTitle(" ", "Cash"); got != "Cash" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestStripNumericPrefix(t *testing.T) {
	cases := map[string]string{
		"101 - Dubai Main":    "Dubai Main",
		"10-1 - Dubai Main":   "Dubai Main",
		"Main - Dubai":        "Main - Dubai",
		"Dubai Main":          "Dubai Main",
		"- - Dubai Main":      "- - Dubai Main",
		"200 - Sales - AC":    "Sales - AC",
		"A100 - Dubai Branch": "A100 - Dubai Branch",
	}
	for in, want := range cases {
		if got := StripNumericPrefix(in); got != want {
			t.Fatalf("StripNumericPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocationName(t *testing.T) {
	if got := LocationName("01", "Dubai", "AC"); got != "01 - Dubai - AC" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := LocationName("", "Dubai", ""); got != "Dubai" {
		t.Fatalf("unexpected name %q", got)
	}
}
