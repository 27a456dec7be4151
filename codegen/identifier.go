package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Translation keys become Go identifiers through a fixed substitution
// table. The mapping is injective, so two distinct keys can never produce
// the same identifier, and Unescape restores the original key exactly:
//
//	'.'                   -> "_"        (segment separator)
//	'_'                   -> "_x5f_"
//	[A-Za-z0-9]           -> unchanged
//	any other rune r      -> "_x" + lowercase hex of r + "_"
//
// A literal 'x' directly after a separator is escaped as "_x78_" so that
// a separator underscore can never be mistaken for the "_x" escape
// introducer when decoding. The result is prefixed with "Msg_", which
// keeps the identifier exported and syntactically valid regardless of
// the key's first character.
const identPrefix = "Msg_"

// Identifier converts a translation key to the generated function name.
func Identifier(key string) (string, error) {
	if key == "" {
		return "", &UnrenderableKeyError{Key: key, Reason: "empty key"}
	}
	var b strings.Builder
	b.WriteString(identPrefix)
	prevSep := false
	for _, r := range key {
		if r == '.' {
			b.WriteByte('_')
			prevSep = true
			continue
		}
		switch {
		case r == 'x' && prevSep:
			b.WriteString("_x78_")
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_x%s_", strconv.FormatInt(int64(r), 16))
		}
		prevSep = false
	}
	return b.String(), nil
}

// Unescape inverts Identifier, recovering the original translation key.
func Unescape(ident string) (string, error) {
	body, ok := strings.CutPrefix(ident, identPrefix)
	if !ok {
		return "", fmt.Errorf("identifier %q does not start with %q", ident, identPrefix)
	}

	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '_' {
			b.WriteByte(c)
			i++
			continue
		}
		// "_x<hex>_" is an escaped rune; a bare "_" is a '.' separator.
		if i+1 < len(body) && body[i+1] == 'x' {
			end := strings.IndexByte(body[i+2:], '_')
			if end < 0 {
				return "", fmt.Errorf("identifier %q has an unterminated escape at %d", ident, i)
			}
			code, err := strconv.ParseInt(body[i+2:i+2+end], 16, 32)
			if err != nil {
				return "", fmt.Errorf("identifier %q has a bad escape at %d: %v", ident, i, err)
			}
			b.WriteRune(rune(code))
			i += 2 + end + 1
			continue
		}
		b.WriteByte('.')
		i++
	}
	return b.String(), nil
}

// UnrenderableKeyError reports a translation key that cannot be turned
// into a valid generated declaration.
type UnrenderableKeyError struct {
	Key    string
	Reason string
}

func (e *UnrenderableKeyError) Error() string {
	return fmt.Sprintf("cannot render key %q: %s", e.Key, e.Reason)
}
