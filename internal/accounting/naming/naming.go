// Package naming holds the title conventions shared by accounts, cost centers
// and locations: "<number> - <name>" display titles and the " - <abbr>"
// company suffix carried by stored record names.
package naming

import (
	"strings"
	"unicode"
)

// Separator joins the number, name and company abbreviation of a record.
const Separator = " - "

// CompanySuffix returns the suffix appended to record names of a company,
// or an empty string when the company has no abbreviation.
func CompanySuffix(abbr string) string {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return ""
	}
	return Separator + abbr
}

// HasCompanySuffix reports whether value already carries the company suffix.
// An empty suffix is always considered present.
func HasCompanySuffix(value, abbr string) bool {
	suffix := CompanySuffix(abbr)
	return suffix == "" || strings.HasSuffix(value, suffix)
}

// QualifyAccount returns the stored account name for a tree node value.
// Values already ending in the suffix are returned unchanged.
func QualifyAccount(value, abbr string) string {
	if HasCompanySuffix(value, abbr) {
		return value
	}
	return value + CompanySuffix(abbr)
}

// FormatTitle renders "number - name", or just name when number is empty.
func FormatTitle(number, name string) string {
	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if number == "" {
		return name
	}
	return number + Separator + name
}

// SplitTitle splits a display title into its number and name. The first
// segment before " - " is taken as the number and the remainder as the
// name; a title without a separator is all name.
func SplitTitle(value string) (number, name string) {
	head, rest, ok := strings.Cut(value, Separator)
	if !ok {
		return "", strings.TrimSpace(value)
	}
	return strings.TrimSpace(head), strings.TrimSpace(rest)
}

// StripNumericPrefix removes a leading "NNN - " segment when NNN, ignoring
// dashes, is made of digits only.
func StripNumericPrefix(value string) string {
	head, rest, ok := strings.Cut(value, Separator)
	if !ok {
		return value
	}
	digits := strings.ReplaceAll(strings.TrimSpace(head), "-", "")
	if digits == "" {
		return value
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return value
		}
	}
	return strings.TrimSpace(rest)
}

// LocationName derives the stored name of a location from its number, its
// display name and the owning company's abbreviation. Empty parts are skipped.
func LocationName(number, locationName, abbr string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{number, locationName, abbr} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, Separator)
}
