// Package pofile writes GNU gettext PO files from a translation set.
// The export is meant for translators and review tooling: one file per
// locale, msgid carrying the default-locale text and msgctxt carrying
// the translation key so identical source texts stay distinct.
package pofile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lokgen/lokgen/catalog"
)

// Entry is a single message in a PO file.
type Entry struct {
	// ExtractedComments are "#." lines, carrying the translation key.
	ExtractedComments []string
	// MsgCtxt disambiguates entries whose msgid is identical.
	MsgCtxt string
	// MsgID is the default-locale text.
	MsgID string
	// MsgStr is the target-locale text, empty when untranslated.
	MsgStr string
}

// File is one exportable PO file.
type File struct {
	Header  *Entry
	Entries []*Entry
}

// Build shapes one locale of the set into a PO file. Entries follow the
// set's key order; keys missing in either locale still get an entry so
// translators see the gap.
func Build(s *catalog.Set, locale, defaultLocale, project, version string) *File {
	f := &File{Header: makeHeader(project, version, locale)}
	for _, key := range s.Keys() {
		e := s.Entry(key)
		f.Entries = append(f.Entries, &Entry{
			ExtractedComments: []string{"key: " + key},
			MsgCtxt:           key,
			MsgID:             e.Values[defaultLocale],
			MsgStr:            e.Values[locale],
		})
	}
	return f
}

// Write renders the file in gettext PO syntax.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if f.Header != nil {
		writeEntry(bw, f.Header)
	}
	for _, e := range f.Entries {
		fmt.Fprintln(bw)
		writeEntry(bw, e)
	}
	return bw.Flush()
}

// Bytes renders the file into memory.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	f.Write(&buf)
	return buf.Bytes()
}

// WriteFile writes the file to disk.
func (f *File) WriteFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return f.Write(out)
}

func writeEntry(w *bufio.Writer, e *Entry) {
	for _, c := range e.ExtractedComments {
		fmt.Fprintf(w, "#. %s\n", c)
	}
	if e.MsgCtxt != "" {
		writeQuotedField(w, "msgctxt", e.MsgCtxt)
	}
	writeQuotedField(w, "msgid", e.MsgID)
	writeQuotedField(w, "msgstr", e.MsgStr)
}

// writeQuotedField writes a PO field, splitting multiline values into
// the conventional empty-first-line form.
func writeQuotedField(w *bufio.Writer, field, value string) {
	if !strings.Contains(value, "\n") {
		fmt.Fprintf(w, "%s %s\n", field, quote(value))
		return
	}

	fmt.Fprintf(w, "%s \"\"\n", field)
	parts := strings.Split(value, "\n")
	for i, part := range parts {
		if i < len(parts)-1 {
			fmt.Fprintf(w, "%s\n", quote(part+"\n"))
		} else if part != "" {
			fmt.Fprintf(w, "%s\n", quote(part))
		}
	}
}

// quote produces a PO-style quoted string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return `"` + s + `"`
}

func makeHeader(project, version, locale string) *Entry {
	now := time.Now().UTC().Format("2006-01-02 15:04+0000")
	header := fmt.Sprintf(
		"Project-Id-Version: %s %s\n"+
			"POT-Creation-Date: %s\n"+
			"PO-Revision-Date: %s\n"+
			"Language: %s\n"+
			"MIME-Version: 1.0\n"+
			"Content-Type: text/plain; charset=UTF-8\n"+
			"Content-Transfer-Encoding: 8bit\n"+
			"Plural-Forms: %s\n",
		project, version, now, now, locale, pluralForms(locale),
	)
	return &Entry{
		ExtractedComments: []string{fmt.Sprintf("Exported from the %s translation catalog.", project)},
		MsgID:             "",
		MsgStr:            header,
	}
}

// pluralForms returns the conventional Plural-Forms header value for a
// locale. Unknown locales get the Germanic two-form default.
func pluralForms(locale string) string {
	base := locale
	if idx := strings.IndexAny(locale, "_-"); idx > 0 {
		base = locale[:idx]
	}

	switch base {
	case "ja", "ko", "zh", "vi", "th", "id", "ms":
		return "nplurals=1; plural=0;"
	case "fr", "pt":
		return "nplurals=2; plural=(n > 1);"
	case "ru", "uk", "be", "hr", "sr", "bs":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "pl":
		return "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "cs", "sk":
		return "nplurals=3; plural=(n==1 ? 0 : n>=2 && n<=4 ? 1 : 2);"
	case "ro":
		return "nplurals=3; plural=(n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2);"
	case "lt":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "lv":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2);"
	case "ar":
		return "nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);"
	default:
		return "nplurals=2; plural=(n != 1);"
	}
}
