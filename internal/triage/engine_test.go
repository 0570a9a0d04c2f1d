package triage

import (
	"testing"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
)

func set(tokens ...string) map[string]bool {
	out := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		out[t] = true
	}
	return out
}

func TestScore_ExcludesEmptyCoreAndZeroScores(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Empty"},
		{Name: "Flu", CoreSymptoms: []string{"fever", "cough"}},
		{Name: "Allergy", CoreSymptoms: []string{"sneezing"}},
	}}
	e := NewEngine(cat)

	ranked := e.Score(set("fever"), nil, nil)
	if len(ranked) != 1 || ranked[0].Name != "Flu" || ranked[0].Score != 1 {
		t.Fatalf("ranked = %+v", ranked)
	}
}

func TestScore_MaybeCountsOnlyWithConfirmedOverlap(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Flu", CoreSymptoms: []string{"fever", "cough", "headache"}},
	}}
	e := NewEngine(cat)

	// Pure uncertainty never scores.
	if ranked := e.Score(nil, nil, set("cough", "headache")); len(ranked) != 0 {
		t.Fatalf("maybe-only evidence ranked: %+v", ranked)
	}

	ranked := e.Score(set("fever"), nil, set("cough", "headache"))
	if len(ranked) != 1 || ranked[0].Score != 2 {
		t.Fatalf("ranked = %+v, want score 1 + 0.5*2", ranked)
	}
}

func TestScore_OnlySetGate(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Snake Bite", CoreSymptoms: []string{"snake bite"}, OnlySet: map[string]bool{"snake bite": true}},
	}}
	e := NewEngine(cat)

	if ranked := e.Score(set("snake bite", "fever"), nil, nil); len(ranked) != 0 {
		t.Fatalf("only-set violated but still ranked: %+v", ranked)
	}
	if ranked := e.Score(set("snake bite"), nil, nil); len(ranked) != 1 {
		t.Fatalf("only-set satisfied but not ranked: %+v", ranked)
	}
}

func TestScore_RuledOutAndStableTies(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "A", CoreSymptoms: []string{"fever"}},
		{Name: "B", CoreSymptoms: []string{"fever"}},
		{Name: "C", CoreSymptoms: []string{"fever"}},
	}}
	e := NewEngine(cat)

	ranked := e.Score(set("fever"), set("B"), nil)
	if len(ranked) != 2 || ranked[0].Name != "A" || ranked[1].Name != "C" {
		t.Fatalf("ranked = %+v, want catalog order with B excluded", ranked)
	}
}

func TestScore_DuplicateCoreTokensCountOnce(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Dup", CoreSymptoms: []string{"fever", "fever", "cough"}},
	}}
	e := NewEngine(cat)

	ranked := e.Score(set("fever"), nil, nil)
	if len(ranked) != 1 || ranked[0].Score != 1 {
		t.Fatalf("ranked = %+v, want distinct-token overlap of 1", ranked)
	}
}

func TestMatchingConditions_SupersetAndMonotone(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "Flu", CoreSymptoms: []string{"fever", "cough", "sore throat"}},
		{Name: "Cold", CoreSymptoms: []string{"fever", "runny nose"}},
		{Name: "Allergy", CoreSymptoms: []string{"sneezing"}},
	}}
	e := NewEngine(cat)

	all := e.MatchingConditions(nil)
	if len(all) != 3 {
		t.Fatalf("empty seed should match everything, got %v", all)
	}

	withFever := e.MatchingConditions(set("fever"))
	if len(withFever) != 2 || withFever[0] != "Flu" || withFever[1] != "Cold" {
		t.Fatalf("matching(fever) = %v", withFever)
	}

	// Monotone: growing the seed can only shrink the result.
	narrowed := e.MatchingConditions(set("fever", "cough"))
	if len(narrowed) != 1 || narrowed[0] != "Flu" {
		t.Fatalf("matching(fever,cough) = %v", narrowed)
	}
	for _, n := range narrowed {
		found := false
		for _, m := range withFever {
			if m == n {
				found = true
			}
		}
		if !found {
			t.Fatalf("monotonicity violated: %q not in %v", n, withFever)
		}
	}
}

func TestNextBatch_FrequencyThenLengthThenAlpha(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "A", CoreSymptoms: []string{"fever", "cough", "rash"}},
		{Name: "B", CoreSymptoms: []string{"fever", "cough", "chills"}},
		{Name: "C", CoreSymptoms: []string{"fever", "nausea"}},
	}}
	e := NewEngine(cat)

	st := NewState()
	st.Confirm("fever")

	got := e.NextBatch(st, 3)
	// cough appears twice; rash/chills/nausea once each, rash is shortest.
	want := []string{"cough", "rash", "chills"}
	if len(got) != len(want) {
		t.Fatalf("NextBatch = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NextBatch = %v, want %v", got, want)
		}
	}
}

func TestNextBatch_ExcludesResolvedTokens(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "A", CoreSymptoms: []string{"fever", "cough", "rash", "chills"}},
	}}
	e := NewEngine(cat)

	st := NewState()
	st.Confirm("fever")
	st.Deny("cough")
	st.MarkMaybe("rash")
	st.Asked["chills"] = true

	if got := e.NextBatch(st, 3); len(got) != 0 {
		t.Fatalf("NextBatch = %v, want empty once everything is resolved", got)
	}
}

func TestNextBatch_EmptyWhenNothingMatches(t *testing.T) {
	cat := &catalog.Catalog{Conditions: []catalog.Condition{
		{Name: "A", CoreSymptoms: []string{"fever"}},
	}}
	e := NewEngine(cat)

	st := NewState()
	st.Confirm("headache")

	if got := e.NextBatch(st, 3); len(got) != 0 {
		t.Fatalf("NextBatch = %v, want empty when no condition matches", got)
	}
}
