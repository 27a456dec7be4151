// Package catalog holds the in-memory translation model: entries keyed by
// translation key with one raw value per locale, plus the parsed
// placeholder tokens derived from those values. It also implements the
// cross-locale consistency validation that gates code generation.
package catalog

import (
	"fmt"
	"sort"

	"github.com/lokgen/lokgen/placeholder"
)

// Entry is one translation key with its per-locale values. Values maps
// locale code to the raw string; a locale with no value is simply absent.
// Tokens is filled by Set.ParseAll and mirrors Values.
type Entry struct {
	Key    string
	Values map[string]string
	Tokens map[string][]placeholder.Token
}

// NewEntry builds an entry with empty maps.
func NewEntry(key string) *Entry {
	return &Entry{
		Key:    key,
		Values: make(map[string]string),
		Tokens: make(map[string][]placeholder.Token),
	}
}

// Locales returns the locale codes this entry has values for, sorted.
func (e *Entry) Locales() []string {
	locales := make([]string, 0, len(e.Values))
	for loc := range e.Values {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

// Set is the full fetched translation set. Iteration order is always
// lexicographic by key, regardless of the order entries arrived in.
type Set struct {
	entries map[string]*Entry
	keys    []string
}

// NewSet builds a set from fetched entries. Keys must be non-empty and
// unique; violations are reported as plain errors for the fetcher to wrap.
func NewSet(entries []*Entry) (*Set, error) {
	s := &Set{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		if e.Key == "" {
			return nil, fmt.Errorf("translation entry with empty key")
		}
		if _, dup := s.entries[e.Key]; dup {
			return nil, fmt.Errorf("duplicate translation key %q", e.Key)
		}
		s.entries[e.Key] = e
		s.keys = append(s.keys, e.Key)
	}
	sort.Strings(s.keys)
	return s, nil
}

// Keys returns all translation keys in lexicographic order. The returned
// slice is shared; callers must not modify it.
func (s *Set) Keys() []string {
	return s.keys
}

// Entry returns the entry for a key, or nil.
func (s *Set) Entry(key string) *Entry {
	return s.entries[key]
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.keys)
}

// ParseAll tokenizes every value in the set, populating Entry.Tokens.
// It fails fast on the first malformed value with a
// *MalformedPlaceholderError naming the key, locale and byte offset.
func (s *Set) ParseAll() error {
	for _, key := range s.keys {
		e := s.entries[key]
		if e.Tokens == nil {
			e.Tokens = make(map[string][]placeholder.Token, len(e.Values))
		}
		for _, loc := range e.Locales() {
			tokens, err := placeholder.Parse(e.Values[loc])
			if err != nil {
				pe := err.(*placeholder.ParseError)
				return &MalformedPlaceholderError{
					Key:    key,
					Locale: loc,
					Offset: pe.Offset,
					Err:    pe,
				}
			}
			e.Tokens[loc] = tokens
		}
	}
	return nil
}
