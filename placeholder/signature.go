package placeholder

import (
	"fmt"
	"strings"
)

// SigEntry is one element of a placeholder signature: the value kind and
// name of a non-literal token.
type SigEntry struct {
	Kind ValueKind
	Name string
}

// Signature derives the ordered list of (kind, name) pairs used to compare
// a translation string across locales. Literals contribute nothing. A
// variable contributes one entry per occurrence. A plural block contributes
// its controlling variable first, then one entry per distinct variable
// referenced anywhere in its branches (branches walked in canonical
// category order), regardless of which categories are present — so locales
// that spell out different category sets still compare equal as long as
// they use the same variables.
func Signature(tokens []Token) []SigEntry {
	var sig []SigEntry
	for _, tok := range tokens {
		switch tok.Kind {
		case KindVariable:
			sig = append(sig, SigEntry{Kind: tok.Hint, Name: tok.Name})
		case KindPlural:
			sig = append(sig, SigEntry{Kind: Number, Name: tok.Name})
			seen := map[string]bool{tok.Name: true}
			for _, cat := range Categories {
				for _, sub := range tok.Branches[cat] {
					if sub.Kind != KindVariable || seen[sub.Name] {
						continue
					}
					seen[sub.Name] = true
					sig = append(sig, SigEntry{Kind: sub.Hint, Name: sub.Name})
				}
			}
		}
	}
	return sig
}

// Equal reports whether two signatures match in length, kind sequence and
// variable names.
func Equal(a, b []SigEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FormatSignature renders a signature for diagnostics, e.g.
// "{name:string}, {count:number}". An empty signature renders as "(none)".
func FormatSignature(sig []SigEntry) string {
	if len(sig) == 0 {
		return "(none)"
	}
	parts := make([]string, len(sig))
	for i, e := range sig {
		parts[i] = fmt.Sprintf("{%s:%s}", e.Name, e.Kind)
	}
	return strings.Join(parts, ", ")
}
