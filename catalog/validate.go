package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lokgen/lokgen/placeholder"
	"github.com/lokgen/lokgen/pluralrules"
)

// ProblemKind classifies a validation finding.
type ProblemKind string

const (
	// MissingInLocale: a required locale has no value for the key. Fatal.
	MissingInLocale ProblemKind = "missing-in-locale"
	// EmptyValue: the value is blank after trimming. Warning.
	EmptyValue ProblemKind = "empty-value"
	// PlaceholderMismatch: placeholder signatures differ between locales. Fatal.
	PlaceholderMismatch ProblemKind = "placeholder-mismatch"
	// UnsupportedPluralCategory: a plural branch names a category the
	// locale's plural rules can never select. Warning.
	UnsupportedPluralCategory ProblemKind = "unsupported-plural-category"
)

// Fatal reports whether this kind of problem blocks generation.
func (k ProblemKind) Fatal() bool {
	return k == MissingInLocale || k == PlaceholderMismatch
}

// Problem is one validation finding for a key in a locale.
type Problem struct {
	Key    string
	Locale string // "all" when the problem is not locale-specific
	Kind   ProblemKind
	Detail string
}

func (p Problem) String() string {
	s := fmt.Sprintf("%s [%s]: %s", p.Key, p.Locale, p.Kind)
	if p.Detail != "" {
		s += ": " + p.Detail
	}
	return s
}

// Report is the full list of problems found in one validation run,
// sorted by key, locale and kind.
type Report struct {
	Problems []Problem
}

// Fatal reports whether any problem blocks generation.
func (r *Report) Fatal() bool {
	for _, p := range r.Problems {
		if p.Kind.Fatal() {
			return true
		}
	}
	return false
}

// Counts returns the number of fatal problems and warnings.
func (r *Report) Counts() (fatal, warnings int) {
	for _, p := range r.Problems {
		if p.Kind.Fatal() {
			fatal++
		} else {
			warnings++
		}
	}
	return
}

func (r *Report) add(key, locale string, kind ProblemKind, detail string) {
	r.Problems = append(r.Problems, Problem{Key: key, Locale: locale, Kind: kind, Detail: detail})
}

// Validate checks the parsed set against the closed locale list and
// returns every problem found; it never stops at the first. Signatures
// are compared against defaultLocale (falling back to the
// lexicographically first locale that has a value), so mismatch problems
// name the locale that diverges from the reference text. It is a pure
// function of its inputs: the set is not mutated and the report order is
// deterministic. Set.ParseAll must have run first.
func Validate(s *Set, locales []string, defaultLocale string) *Report {
	required := append([]string(nil), locales...)
	sort.Strings(required)

	r := &Report{}
	for _, key := range s.Keys() {
		e := s.Entry(key)

		for _, loc := range required {
			raw, ok := e.Values[loc]
			if !ok {
				r.add(key, loc, MissingInLocale, "")
				continue
			}
			if strings.TrimSpace(raw) == "" {
				r.add(key, loc, EmptyValue, "")
			}
			checkPluralCategories(r, key, loc, e.Tokens[loc])
		}

		checkSignatures(r, e, required, defaultLocale)
	}

	sort.Slice(r.Problems, func(i, j int) bool {
		a, b := r.Problems[i], r.Problems[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		return a.Kind < b.Kind
	})
	return r
}

// checkSignatures compares placeholder signatures of every required
// locale that has a value against the reference locale. A differing
// locale gets one PlaceholderMismatch problem.
func checkSignatures(r *Report, e *Entry, required []string, defaultLocale string) {
	baseLoc := ""
	if _, ok := e.Values[defaultLocale]; ok {
		baseLoc = defaultLocale
	} else {
		for _, loc := range required {
			if _, ok := e.Values[loc]; ok {
				baseLoc = loc
				break
			}
		}
	}
	if baseLoc == "" {
		return
	}
	base := placeholder.Signature(e.Tokens[baseLoc])

	for _, loc := range required {
		if loc == baseLoc {
			continue
		}
		if _, ok := e.Values[loc]; !ok {
			continue
		}
		sig := placeholder.Signature(e.Tokens[loc])
		if !placeholder.Equal(base, sig) {
			r.add(e.Key, loc, PlaceholderMismatch, fmt.Sprintf(
				"%s has %s, %s has %s",
				baseLoc, placeholder.FormatSignature(base),
				loc, placeholder.FormatSignature(sig)))
		}
	}
}

// checkPluralCategories warns about branches the locale can never select.
func checkPluralCategories(r *Report, key, loc string, tokens []placeholder.Token) {
	for _, tok := range tokens {
		if tok.Kind != placeholder.KindPlural {
			continue
		}
		for _, cat := range placeholder.Categories {
			if _, ok := tok.Branches[cat]; !ok {
				continue
			}
			if !pluralrules.Supports(loc, cat) {
				r.add(key, loc, UnsupportedPluralCategory, fmt.Sprintf(
					"category %q is never selected by %s plural rules", cat, loc))
			}
		}
	}
}
