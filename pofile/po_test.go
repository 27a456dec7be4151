package pofile

import (
	"strings"
	"testing"

	"github.com/leonelquinteros/gotext"

	"github.com/lokgen/lokgen/catalog"
)

func buildSet(t *testing.T, values map[string]map[string]string) *catalog.Set {
	t.Helper()
	var entries []*catalog.Entry
	for key, vals := range values {
		e := catalog.NewEntry(key)
		for loc, v := range vals {
			e.Values[loc] = v
		}
		entries = append(entries, e)
	}
	s, err := catalog.NewSet(entries)
	if err != nil {
		t.Fatalf("NewSet error: %v", err)
	}
	return s
}

func TestBuild_RoundTripsThroughGettext(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{
		"greeting.hello": {"en": "Hello, {name}!", "da": "Hej, {name}!"},
		"farewell.bye":   {"en": "Goodbye", "da": "Farvel"},
	})

	f := Build(s, "da", "en", "Website", "1.2.0")
	out := f.Bytes()

	po := gotext.NewPo()
	po.Parse(out)

	if got := po.GetC("Hello, {name}!", "greeting.hello"); got != "Hej, {name}!" {
		t.Errorf("greeting.hello = %q, want %q", got, "Hej, {name}!")
	}
	if got := po.GetC("Goodbye", "farewell.bye"); got != "Farvel" {
		t.Errorf("farewell.bye = %q, want %q", got, "Farvel")
	}
}

func TestBuild_ContextKeepsIdenticalSourceTextsApart(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{
		"button.close": {"en": "Close", "da": "Luk"},
		"ticket.close": {"en": "Close", "da": "Afslut"},
	})

	f := Build(s, "da", "en", "Website", "1.0.0")
	po := gotext.NewPo()
	po.Parse(f.Bytes())

	if got := po.GetC("Close", "button.close"); got != "Luk" {
		t.Errorf("button.close = %q, want Luk", got)
	}
	if got := po.GetC("Close", "ticket.close"); got != "Afslut" {
		t.Errorf("ticket.close = %q, want Afslut", got)
	}
}

func TestBuild_UntranslatedEntryStaysVisible(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{
		"pending.key": {"en": "Only English"},
	})

	f := Build(s, "da", "en", "Website", "1.0.0")
	out := string(f.Bytes())

	if !strings.Contains(out, `msgid "Only English"`) {
		t.Fatalf("missing msgid:\n%s", out)
	}
	if !strings.Contains(out, `msgstr ""`+"\n") {
		t.Fatalf("untranslated entry should have empty msgstr:\n%s", out)
	}
	if !strings.Contains(out, "#. key: pending.key") {
		t.Fatalf("missing key comment:\n%s", out)
	}
}

func TestBuild_EntriesFollowKeyOrder(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{
		"z.last":  {"en": "Z", "da": "Z"},
		"a.first": {"en": "A", "da": "A"},
	})

	f := Build(s, "da", "en", "Website", "1.0.0")
	if len(f.Entries) != 2 || f.Entries[0].MsgCtxt != "a.first" || f.Entries[1].MsgCtxt != "z.last" {
		t.Fatalf("entries out of order: %v, %v", f.Entries[0].MsgCtxt, f.Entries[1].MsgCtxt)
	}
}

func TestWrite_MultilineAndEscapes(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{
		"note.multiline": {"en": "line one\nline two", "da": "linje et\nlinje to"},
		"note.quoted":    {"en": `say "hi"`, "da": `sig "hej"`},
	})

	f := Build(s, "da", "en", "Website", "1.0.0")
	out := string(f.Bytes())

	if !strings.Contains(out, "msgid \"\"\n\"line one\\n\"\n\"line two\"") {
		t.Errorf("multiline msgid not split conventionally:\n%s", out)
	}
	if !strings.Contains(out, `"say \"hi\""`) {
		t.Errorf("quotes not escaped:\n%s", out)
	}

	// gettext tooling must still read it back intact.
	po := gotext.NewPo()
	po.Parse([]byte(out))
	if got := po.GetC("line one\nline two", "note.multiline"); got != "linje et\nlinje to" {
		t.Errorf("multiline round trip = %q", got)
	}
}

func TestHeader_CarriesLocaleAndPluralForms(t *testing.T) {
	s := buildSet(t, map[string]map[string]string{"k.v": {"en": "x", "ru": "y"}})

	out := string(Build(s, "ru", "en", "Website", "2.0.0").Bytes())
	if !strings.Contains(out, "Language: ru\\n") {
		t.Errorf("missing Language header:\n%s", out)
	}
	if !strings.Contains(out, "nplurals=3;") {
		t.Errorf("missing Russian plural forms:\n%s", out)
	}
	if !strings.Contains(out, "Project-Id-Version: Website 2.0.0\\n") {
		t.Errorf("missing project version:\n%s", out)
	}
}

func TestPluralForms(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "nplurals=2; plural=(n != 1);"},
		{"ja", "nplurals=1; plural=0;"},
		{"fr", "nplurals=2; plural=(n > 1);"},
		{"pt-BR", "nplurals=2; plural=(n > 1);"},
		{"cs", "nplurals=3; plural=(n==1 ? 0 : n>=2 && n<=4 ? 1 : 2);"},
		{"xx", "nplurals=2; plural=(n != 1);"},
	}
	for _, tt := range tests {
		if got := pluralForms(tt.locale); got != tt.want {
			t.Errorf("pluralForms(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}
