package triage

import (
	"sort"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
)

// RankedCondition pairs a condition name with its evidence score.
type RankedCondition struct {
	Name  string
	Score float64
}

// Engine ranks catalog conditions against accumulated evidence and picks the
// next follow-up questions. Immutable after construction; one instance can
// serve every conversation.
type Engine struct {
	cat       *catalog.Catalog
	byName    map[string]*catalog.Condition
	bySymptom map[string][]string
}

func NewEngine(cat *catalog.Catalog) *Engine {
	e := &Engine{
		cat:       cat,
		byName:    make(map[string]*catalog.Condition, len(cat.Conditions)),
		bySymptom: make(map[string][]string),
	}
	for i := range cat.Conditions {
		c := &cat.Conditions[i]
		e.byName[c.Name] = c
		for _, s := range distinct(c.CoreSymptoms) {
			e.bySymptom[s] = append(e.bySymptom[s], c.Name)
		}
	}
	return e
}

// Condition looks up a catalog record by name.
func (e *Engine) Condition(name string) (*catalog.Condition, bool) {
	c, ok := e.byName[name]
	return c, ok
}

// ConditionsSharing returns the names of conditions whose core set contains
// the token, in catalog order.
func (e *Engine) ConditionsSharing(token string) []string {
	return e.bySymptom[token]
}

// Score ranks conditions by confirmed-symptom overlap, descending, stable on
// ties by catalog order. A "maybe" counts half, and only once at least one
// core symptom is confirmed, so pure uncertainty never outranks silence.
// Zero-score records and records with an empty core set are excluded, as are
// records whose only-set excludes any confirmed symptom.
func (e *Engine) Score(confirmed, ruledOut, maybe map[string]bool) []RankedCondition {
	var ranked []RankedCondition
	for i := range e.cat.Conditions {
		c := &e.cat.Conditions[i]
		if ruledOut[c.Name] || len(c.CoreSymptoms) == 0 {
			continue
		}
		if len(c.OnlySet) > 0 && !subset(confirmed, c.OnlySet) {
			continue
		}
		overlap := 0
		maybes := 0
		for _, s := range distinct(c.CoreSymptoms) {
			if confirmed[s] {
				overlap++
			}
			if maybe[s] {
				maybes++
			}
		}
		score := float64(overlap)
		if overlap > 0 {
			score += 0.5 * float64(maybes)
		}
		if score > 0 {
			ranked = append(ranked, RankedCondition{Name: c.Name, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// MatchingConditions returns, in catalog order, every condition whose core
// set is a superset of the seed. An empty seed matches everything.
func (e *Engine) MatchingConditions(seed map[string]bool) []string {
	var out []string
	for i := range e.cat.Conditions {
		c := &e.cat.Conditions[i]
		if coversAll(c.CoreSymptoms, seed) {
			out = append(out, c.Name)
		}
	}
	return out
}

// NextBatch picks up to k unresolved symptom tokens to ask about next.
// Candidates are tallied by how many still-matching conditions list them;
// ties break toward shorter, then alphabetically earlier tokens.
func (e *Engine) NextBatch(st *State, k int) []string {
	candidates := e.MatchingConditions(st.Confirmed)
	if len(candidates) == 0 {
		return nil
	}

	freq := make(map[string]int)
	for _, name := range candidates {
		for _, s := range distinct(e.byName[name].CoreSymptoms) {
			if st.Confirmed[s] || st.Denied[s] || st.Asked[s] || st.Maybe[s] {
				continue
			}
			freq[s]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(freq))
	for s := range freq {
		tokens = append(tokens, s)
	}
	sort.Slice(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	if len(tokens) > k {
		tokens = tokens[:k]
	}
	return tokens
}

func distinct(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func subset(set, of map[string]bool) bool {
	for s := range set {
		if !of[s] {
			return false
		}
	}
	return true
}

func coversAll(core []string, seed map[string]bool) bool {
	if len(seed) == 0 {
		return true
	}
	have := make(map[string]bool, len(core))
	for _, s := range core {
		have[s] = true
	}
	for s := range seed {
		if !have[s] {
			return false
		}
	}
	return true
}
