// Package pluralrules maps locales to their CLDR cardinal plural
// categories and selects the category for a concrete quantity.
//
// It serves two callers: the validator asks Categories to flag plural
// branches a locale can never select, and code generated by lokgen calls
// Select at runtime to pick the branch for a quantity. Generated code is
// wired to this package by default, but the import is configurable
// (runtime_import in lokgen.yaml), so a project can substitute its own
// ruleset with the same Select signature.
package pluralrules

import (
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// formNames maps x/text plural forms to CLDR category keywords.
var formNames = map[plural.Form]string{
	plural.Other: "other",
	plural.Zero:  "zero",
	plural.One:   "one",
	plural.Two:   "two",
	plural.Few:   "few",
	plural.Many:  "many",
}

// Select returns the CLDR cardinal category ("zero", "one", "two", "few",
// "many" or "other") for quantity n in the given locale. Unknown locales
// fall back to English rules.
func Select(locale string, n int) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		tag = language.English
	}
	if n < 0 {
		n = -n
	}
	s := strconv.Itoa(n)
	digits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		digits[i] = s[i] - '0'
	}
	return formNames[plural.Cardinal.MatchDigits(tag, digits, len(digits), 0)]
}

// Categories returns the cardinal plural categories a locale can select,
// in canonical order. Region subtags are ignored; unknown languages get
// the common {one, other} pair.
func Categories(locale string) []string {
	base := locale
	if i := strings.IndexAny(locale, "_-"); i > 0 {
		base = locale[:i]
	}

	switch strings.ToLower(base) {
	case "ja", "ko", "zh", "vi", "th", "id", "ms":
		return []string{"other"}
	case "fr", "pt":
		return []string{"one", "many", "other"}
	case "ru", "uk", "be", "hr", "sr", "bs":
		return []string{"one", "few", "many", "other"}
	case "pl", "cs", "sk", "lt":
		return []string{"one", "few", "many", "other"}
	case "lv":
		return []string{"zero", "one", "other"}
	case "ro":
		return []string{"one", "few", "other"}
	case "he":
		return []string{"one", "two", "many", "other"}
	case "ar":
		return []string{"zero", "one", "two", "few", "many", "other"}
	default:
		return []string{"one", "other"}
	}
}

// Supports reports whether a locale can ever select the given category.
func Supports(locale, category string) bool {
	for _, c := range Categories(locale) {
		if c == category {
			return true
		}
	}
	return false
}
