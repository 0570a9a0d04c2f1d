package triage

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
)

// Intent is the coarse classification of a whole utterance.
type Intent int

const (
	IntentNone Intent = iota
	IntentYes
	IntentNo
	IntentMaybe
)

// Matcher extracts symptom tokens and conversational intents from raw text.
// It is immutable after construction and safe to share across conversations.
type Matcher struct {
	known       map[string]bool
	knownSorted []string // longest first, so phrases win over their substrings
	aliases     map[string]string
}

// NewMatcher builds a matcher from the catalog's symptom vocabulary. The
// built-in alias table is extended with the catalog's synonym columns.
func NewMatcher(cat *catalog.Catalog) *Matcher {
	known := cat.KnownSymptoms()

	sorted := make([]string, 0, len(known))
	for s := range known {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	aliases := make(map[string]string, len(symptomAliases))
	for k, v := range symptomAliases {
		aliases[k] = v
	}
	for k, v := range cat.SynonymTable() {
		aliases[k] = v
	}

	return &Matcher{known: known, knownSorted: sorted, aliases: aliases}
}

// Normalize collapses whitespace, trims and lowercases.
func (m *Matcher) Normalize(text string) string {
	return catalog.Normalize(text)
}

// ExtractSymptoms returns every known symptom token mentioned in the text,
// via the alias table first and then direct whole-word hits.
func (m *Matcher) ExtractSymptoms(text string) map[string]bool {
	t := m.Normalize(text)
	out := make(map[string]bool)

	for phrase, token := range m.aliases {
		if containsWord(t, phrase) {
			out[token] = true
		}
	}
	for _, s := range m.knownSorted {
		if containsWord(t, s) {
			out[s] = true
		}
	}
	return out
}

// ClassifyIntent checks the affirmation, negation and uncertainty phrase
// sets in that priority order and returns the first that matches.
func (m *Matcher) ClassifyIntent(text string) Intent {
	t := m.Normalize(text)
	for _, p := range yesPhrases {
		if containsWord(t, p) {
			return IntentYes
		}
	}
	for _, p := range noPhrases {
		if containsWord(t, p) {
			return IntentNo
		}
	}
	for _, p := range maybePhrases {
		if containsWord(t, p) {
			return IntentMaybe
		}
	}
	return IntentNone
}

var shortGreetingRe = regexp.MustCompile(`^(hi|hello|hey|yo)[!. ]*$`)

// IsGreeting reports whether the utterance is a greeting or restart signal.
func (m *Matcher) IsGreeting(text string) bool {
	t := m.Normalize(text)
	return greetingPhrases[t] || shortGreetingRe.MatchString(t)
}

// IsThanks uses plain containment: closing remarks tolerate loose matching.
func (m *Matcher) IsThanks(text string) bool {
	return containsAny(m.Normalize(text), thanksPhrases)
}

// IsFarewell reports whether the utterance reads as a goodbye.
func (m *Matcher) IsFarewell(text string) bool {
	return containsAny(m.Normalize(text), farewellPhrases)
}

// Label returns the conversational phrasing for a symptom token.
func (m *Matcher) Label(token string) string {
	if l, ok := friendlyLabels[token]; ok {
		return l
	}
	return token
}

func containsAny(t string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// containsWord reports whether phrase occurs in text with word boundaries on
// both sides, so "burn" does not match inside "burnout".
func containsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for from := 0; from+len(phrase) <= len(text); {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(phrase)
		if !wordCharBefore(text, start) && !wordCharAfter(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordCharBefore(text string, i int) bool {
	r, size := utf8.DecodeLastRuneInString(text[:i])
	return size > 0 && isWordRune(r)
}

func wordCharAfter(text string, i int) bool {
	r, size := utf8.DecodeRuneInString(text[i:])
	return size > 0 && isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
