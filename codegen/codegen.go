// Package codegen renders a validated, parsed translation set into one
// deterministic Go source file: a Locale type, one constant per locale,
// and one function per translation key with a typed parameter per
// placeholder. Plural category selection is delegated to a runtime
// helper package (pluralrules by default); the emitted import is
// configurable so another ruleset can be substituted.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/lokgen/lokgen/catalog"
	"github.com/lokgen/lokgen/placeholder"
)

// Options configures one emission run.
type Options struct {
	// Package is the package name of the generated file.
	Package string
	// Locales is the closed locale set; every entry is assumed to have
	// passed validation against it.
	Locales []string
	// DefaultLocale is emitted as the switch default arm. Must be a
	// member of Locales.
	DefaultLocale string
	// RuntimeImport is the import path of the plural runtime helper.
	// Its last path element is used as the package qualifier and it
	// must expose Select(locale string, n int) string.
	RuntimeImport string
}

// Emit renders the set into Go source. Identical input yields
// byte-identical output: keys are emitted in lexicographic order,
// locales sorted, and nothing time- or environment-dependent is
// written. Emission never drops a key; a key that cannot become a valid
// declaration fails with *UnrenderableKeyError.
func Emit(set *catalog.Set, opts Options) ([]byte, error) {
	if err := checkOptions(opts); err != nil {
		return nil, err
	}

	locales := append([]string(nil), opts.Locales...)
	sort.Strings(locales)
	rtPkg := path.Base(opts.RuntimeImport)

	reserved := map[string]bool{"loc": true, "fmt": true, rtPkg: true}

	e := &emitter{opts: opts, locales: locales, rtPkg: rtPkg, reserved: reserved}

	var body bytes.Buffer
	seen := make(map[string]string, set.Len())
	for _, key := range set.Keys() {
		ident, err := Identifier(key)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[ident]; dup {
			return nil, &UnrenderableKeyError{
				Key:    key,
				Reason: fmt.Sprintf("identifier %s already emitted for key %q", ident, prev),
			}
		}
		seen[ident] = key

		e.function(&body, ident, set.Entry(key))
	}

	var out bytes.Buffer
	out.WriteString("// Code generated by lokgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	switch {
	case e.needFmt && e.needRuntime:
		fmt.Fprintf(&out, "import (\n\t\"fmt\"\n\n\t%q\n)\n\n", opts.RuntimeImport)
	case e.needFmt:
		out.WriteString("import \"fmt\"\n\n")
	case e.needRuntime:
		fmt.Fprintf(&out, "import %q\n\n", opts.RuntimeImport)
	}

	out.WriteString("// Locale identifies one of the supported translation locales.\ntype Locale string\n\nconst (\n")
	for _, loc := range locales {
		fmt.Fprintf(&out, "\t%s Locale = %q\n", localeConst(loc), loc)
	}
	out.WriteString(")\n\n")

	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func checkOptions(opts Options) error {
	if opts.Package == "" {
		return fmt.Errorf("codegen: package name is empty")
	}
	if len(opts.Locales) == 0 {
		return fmt.Errorf("codegen: locale set is empty")
	}
	found := false
	consts := make(map[string]string, len(opts.Locales))
	for _, loc := range opts.Locales {
		if loc == opts.DefaultLocale {
			found = true
		}
		c := localeConst(loc)
		if prev, dup := consts[c]; dup {
			return fmt.Errorf("codegen: locales %q and %q map to the same constant %s", prev, loc, c)
		}
		consts[c] = loc
	}
	if !found {
		return fmt.Errorf("codegen: default locale %q is not in the locale set", opts.DefaultLocale)
	}
	if opts.RuntimeImport == "" {
		return fmt.Errorf("codegen: runtime import path is empty")
	}
	return nil
}

// localeConst converts a locale code to its generated constant name,
// e.g. "en" -> LocaleEn, "pt-BR" -> LocalePtBR.
func localeConst(locale string) string {
	var b strings.Builder
	b.WriteString("Locale")
	for _, part := range strings.FieldsFunc(locale, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

type emitter struct {
	opts     Options
	locales  []string
	rtPkg    string
	reserved map[string]bool

	needFmt     bool
	needRuntime bool
}

// function emits one declaration for a key.
func (e *emitter) function(buf *bytes.Buffer, ident string, entry *catalog.Entry) {
	sig := placeholder.Signature(entry.Tokens[e.opts.DefaultLocale])
	params := dedupeParams(sig)

	fmt.Fprintf(buf, "// %s renders the %q message.\n", ident, entry.Key)
	fmt.Fprintf(buf, "func %s(loc Locale", ident)
	for _, p := range params {
		fmt.Fprintf(buf, ", %s %s", e.safeName(p.Name), goType(p.Kind))
	}
	buf.WriteString(") string {\n")

	var others []string
	for _, loc := range e.locales {
		if loc != e.opts.DefaultLocale {
			others = append(others, loc)
		}
	}

	if len(others) == 0 {
		e.variant(buf, entry.Tokens[e.opts.DefaultLocale], e.opts.DefaultLocale, "\t")
	} else {
		buf.WriteString("\tswitch loc {\n")
		for _, loc := range others {
			fmt.Fprintf(buf, "\tcase %s:\n", localeConst(loc))
			e.variant(buf, entry.Tokens[loc], loc, "\t\t")
		}
		fmt.Fprintf(buf, "\tdefault: // %s\n", e.opts.DefaultLocale)
		e.variant(buf, entry.Tokens[e.opts.DefaultLocale], e.opts.DefaultLocale, "\t\t")
		buf.WriteString("\t}\n")
	}

	buf.WriteString("}\n\n")
}

// variant emits the body for one locale's text: either a single return,
// or a plural-category switch delegating selection to the runtime helper.
func (e *emitter) variant(buf *bytes.Buffer, tokens []placeholder.Token, locale, indent string) {
	pluralAt := -1
	for i, tok := range tokens {
		if tok.Kind == placeholder.KindPlural {
			pluralAt = i
			break
		}
	}

	if pluralAt < 0 {
		e.returnLine(buf, tokens, "", indent)
		return
	}

	plural := tokens[pluralAt]
	e.needRuntime = true
	fmt.Fprintf(buf, "%sswitch %s.Select(%q, %s) {\n", indent, e.rtPkg, locale, e.safeName(plural.Name))
	for _, cat := range placeholder.Categories {
		if cat == "other" {
			continue
		}
		branch, ok := plural.Branches[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "%scase %q:\n", indent, cat)
		e.returnLine(buf, splice(tokens, pluralAt, branch), plural.Name, indent+"\t")
	}
	fmt.Fprintf(buf, "%sdefault:\n", indent)
	e.returnLine(buf, splice(tokens, pluralAt, plural.Branches["other"]), plural.Name, indent+"\t")
	fmt.Fprintf(buf, "%s}\n", indent)
}

// returnLine emits one return statement for a fully expanded token
// sequence. ctrl names the controlling plural variable for '#' tokens.
func (e *emitter) returnLine(buf *bytes.Buffer, tokens []placeholder.Token, ctrl, indent string) {
	var format strings.Builder
	var args []string
	for _, tok := range tokens {
		switch tok.Kind {
		case placeholder.KindLiteral:
			format.WriteString(strings.ReplaceAll(tok.Text, "%", "%%"))
		case placeholder.KindVariable:
			format.WriteString(verb(tok.Hint))
			args = append(args, e.safeName(tok.Name))
		case placeholder.KindHash:
			format.WriteString("%d")
			args = append(args, e.safeName(ctrl))
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(buf, "%sreturn %s\n", indent, strconv.Quote(strings.ReplaceAll(format.String(), "%%", "%")))
		return
	}
	e.needFmt = true
	fmt.Fprintf(buf, "%sreturn fmt.Sprintf(%s, %s)\n",
		indent, strconv.Quote(format.String()), strings.Join(args, ", "))
}

// safeName keeps generated parameter names from colliding with the loc
// parameter, imported package names, or Go keywords.
func (e *emitter) safeName(name string) string {
	if e.reserved[name] || token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// splice replaces tokens[i] with the branch sequence.
func splice(tokens []placeholder.Token, i int, branch []placeholder.Token) []placeholder.Token {
	out := make([]placeholder.Token, 0, len(tokens)-1+len(branch))
	out = append(out, tokens[:i]...)
	out = append(out, branch...)
	out = append(out, tokens[i+1:]...)
	return out
}

func dedupeParams(sig []placeholder.SigEntry) []placeholder.SigEntry {
	seen := make(map[string]bool, len(sig))
	var out []placeholder.SigEntry
	for _, s := range sig {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out
}

func goType(k placeholder.ValueKind) string {
	if k == placeholder.Number {
		return "int"
	}
	return "string"
}

func verb(k placeholder.ValueKind) string {
	if k == placeholder.Number {
		return "%d"
	}
	return "%s"
}
