package triage

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
)

// Intro is the fixed greeting returned by Greet and after any reset.
const Intro = "Hi there! I'm your symptom guide. How are you feeling today?"

const clarifyPrompt = "Could you tell me what's bothering you most, like fever, cough, stomach pain, or something else?"

const closingRemark = "You're welcome! Take care, and feel free to tell me new symptoms anytime."

const insufficientInfo = "I don't have enough to suggest a likely condition. If you can, list any symptoms in simple words, like 'fever, cough'.\n" +
	"If you're unwell or worried, please seek professional medical advice."

const disclaimer = "This is informational only. Please consult a clinician for diagnosis or concerns."

// Conditions severe enough that a summary should not wait on a competitor
// disambiguation round.
var emergencyConditions = map[string]bool{
	"Snake Bite": true,
	"Burn":       true,
}

const batchSize = 3

// Bot drives one triage conversation. It owns a single State and must not be
// called reentrantly; the engine and matcher it holds are shared and
// immutable.
type Bot struct {
	engine  *Engine
	matcher *Matcher

	st       *State
	started  bool
	finished bool
}

func NewBot(engine *Engine, matcher *Matcher) *Bot {
	return &Bot{engine: engine, matcher: matcher, st: NewState()}
}

// Greet returns the fixed introduction.
func (b *Bot) Greet() string { return Intro }

// Reset discards all conversation state.
func (b *Bot) Reset() {
	b.st = NewState()
	b.started = false
	b.finished = false
}

// State exposes the conversation state for inspection.
func (b *Bot) State() *State { return b.st }

// Finished reports whether a summary has been delivered.
func (b *Bot) Finished() bool { return b.finished }

// Handle processes one user utterance and always returns a reply. It never
// fails: unrecognized input degrades to a clarification prompt or a repeated
// closing remark.
func (b *Bot) Handle(text string) string {
	if !b.started {
		b.started = true
	}

	if b.finished {
		return b.handleFinished(text)
	}

	// Greetings reset even mid-conversation: "start again" means exactly that.
	if b.matcher.IsGreeting(text) {
		b.Reset()
		b.started = true
		return b.Greet()
	}

	if len(b.st.PendingBatch) > 0 {
		resolved := b.ingestAnswers(text, b.st.PendingBatch)
		for t := range resolved {
			b.st.Asked[t] = true
		}
		b.st.PendingBatch = nil
		return b.advance()
	}

	found := b.matcher.ExtractSymptoms(text)
	if len(found) > 0 {
		for t := range found {
			b.st.Confirm(t)
		}
	} else if len(b.st.Confirmed) == 0 {
		if b.matcher.IsThanks(text) || b.matcher.IsFarewell(text) {
			return closingRemark
		}
		return clarifyPrompt
	}

	return b.advance()
}

// handleFinished implements the terminal state: closing remarks are
// idempotent, a greeting restarts, and fresh symptom mentions restart
// implicitly and are ingested right away.
func (b *Bot) handleFinished(text string) string {
	if b.matcher.IsThanks(text) || b.matcher.IsFarewell(text) {
		return closingRemark
	}
	if b.matcher.IsGreeting(text) {
		b.Reset()
		b.started = true
		return b.Greet()
	}
	if found := b.matcher.ExtractSymptoms(text); len(found) > 0 {
		b.Reset()
		b.started = true
		for t := range found {
			b.st.Confirm(t)
		}
		return b.advance()
	}
	return closingRemark
}

// ingestAnswers applies one utterance to an outstanding batch. A global
// yes/no/maybe answers the whole batch at once; otherwise only the tokens
// explicitly mentioned are confirmed, and the rest stay unresolved so a
// later batch may reissue them.
func (b *Bot) ingestAnswers(text string, batch []string) map[string]bool {
	resolved := make(map[string]bool)

	switch b.matcher.ClassifyIntent(text) {
	case IntentYes:
		for _, t := range batch {
			b.st.Confirm(t)
			resolved[t] = true
		}
	case IntentNo:
		for _, t := range batch {
			b.st.Deny(t)
			resolved[t] = true
		}
	case IntentMaybe:
		for _, t := range batch {
			b.st.MarkMaybe(t)
			resolved[t] = true
		}
	default:
		found := b.matcher.ExtractSymptoms(text)
		for _, t := range batch {
			if found[t] {
				b.st.Confirm(t)
				resolved[t] = true
			}
		}
	}
	return resolved
}

// advance runs the decision step until a reply is produced: overview first,
// then follow-up questions, then ranking with the finalize policy.
func (b *Bot) advance() string {
	if !b.st.OverviewShown && len(b.st.Confirmed) > 0 {
		b.st.OverviewShown = true
		if msg, ok := b.overview(); ok {
			return msg
		}
	}

	if batch := b.engine.NextBatch(b.st, batchSize); len(batch) > 0 {
		b.st.PendingBatch = batch
		return "Could you also let me know if any of these apply:\n" + b.questionLines(batch)
	}

	ranked := b.engine.Score(b.st.Confirmed, b.st.RuledOut, b.st.Maybe)
	if len(ranked) == 0 {
		return insufficientInfo
	}

	best, _ := b.engine.Condition(ranked[0].Name)

	if emergencyConditions[best.Name] {
		return b.finalize(best)
	}

	// If any of the best condition's symptoms were already probed, a
	// competitor round has happened for this evidence; don't loop.
	for _, s := range best.CoreSymptoms {
		if b.st.Asked[s] {
			return b.finalize(best)
		}
	}

	if probe := b.competitorProbe(best); len(probe) > 0 {
		b.st.PendingBatch = probe
		// Marked asked at queue time, unlike regular batches, so a second
		// competitor round can never be built from the same tokens.
		for _, s := range probe {
			b.st.Asked[s] = true
		}
		return "One quick check before I summarize:\n" + b.questionLines(probe)
	}

	return b.finalize(best)
}

// overview renders the top-ranked conditions with up to two unconfirmed
// hallmark symptoms each, plus a first follow-up batch when one exists.
func (b *Bot) overview() (string, bool) {
	ranked := b.engine.Score(b.st.Confirmed, b.st.RuledOut, b.st.Maybe)
	if len(ranked) == 0 {
		return "", false
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	var bullets []string
	for _, rc := range ranked {
		c, _ := b.engine.Condition(rc.Name)
		var hallmarks []string
		for _, s := range c.CoreSymptoms {
			if !b.st.Confirmed[s] {
				hallmarks = append(hallmarks, s)
			}
			if len(hallmarks) == 2 {
				break
			}
		}
		if len(hallmarks) > 0 {
			bullets = append(bullets, "- "+c.Name+", often with "+strings.Join(hallmarks, ", "))
		} else {
			bullets = append(bullets, "- "+c.Name)
		}
	}

	msg := "Thanks for sharing that. It can happen in many conditions. Some common ones are:\n" + strings.Join(bullets, "\n")

	if batch := b.engine.NextBatch(b.st, batchSize); len(batch) > 0 {
		b.st.PendingBatch = batch
		msg += "\n\nCould you tell me if you also have any of these:\n" + b.questionLines(batch)
	}
	return msg, true
}

// competitorProbe collects up to three symptoms that would separate the best
// candidate from conditions sharing evidence with it.
func (b *Bot) competitorProbe(best *catalog.Condition) []string {
	bestCore := make(map[string]bool, len(best.CoreSymptoms))
	for _, s := range best.CoreSymptoms {
		bestCore[s] = true
	}

	var competitors []string
	seen := map[string]bool{best.Name: true}
	for _, s := range best.CoreSymptoms {
		for _, name := range b.engine.ConditionsSharing(s) {
			if !seen[name] {
				seen[name] = true
				competitors = append(competitors, name)
			}
		}
	}

	var probe []string
	queued := make(map[string]bool)
	for _, name := range competitors {
		c, _ := b.engine.Condition(name)
		for _, sym := range c.CoreSymptoms {
			if bestCore[sym] || queued[sym] || b.st.Resolved(sym) {
				continue
			}
			queued[sym] = true
			probe = append(probe, sym)
			if len(probe) == batchSize {
				return probe
			}
		}
	}
	return probe
}

// finalize applies the evidence guard before committing to a summary. When
// the guard fails and no further question can be asked, it finalizes anyway
// with a low-confidence caveat rather than leaving the turn silent.
func (b *Bot) finalize(cond *catalog.Condition) string {
	critLen := len(cond.CriticalSymptoms)
	if critLen == 0 {
		critLen = len(distinct(cond.CoreSymptoms))
	}
	minRequired := 1
	if critLen >= 3 {
		minRequired = 3
	}

	confirmedCount := 0
	for _, s := range distinct(cond.CoreSymptoms) {
		if b.st.Confirmed[s] {
			confirmedCount++
		}
	}

	lowConfidence := false
	if confirmedCount < minRequired {
		if extra := b.engine.NextBatch(b.st, batchSize); len(extra) > 0 {
			b.st.PendingBatch = extra
			return "I need a bit more info to be confident. Do you also have any of these?\n" + b.questionLines(extra)
		}
		lowConfidence = true
	}

	b.finished = true
	return b.summary(cond, lowConfidence)
}

func (b *Bot) summary(cond *catalog.Condition, lowConfidence bool) string {
	core := "(n/a)"
	if len(cond.CoreSymptoms) > 0 {
		core = strings.Join(cond.CoreSymptoms, ", ")
	}

	var lines []string
	if lowConfidence {
		lines = append(lines, "I couldn't confirm enough symptoms to be sure, so treat this as a rough pointer only.")
	}
	lines = append(lines, cond.Name+" looks likely given what you've shared.")
	if cond.Description != "" {
		lines = append(lines, "About it: "+cond.Description)
	}
	lines = append(lines, "Core symptoms: "+core+".")
	if cond.FirstAid != "" {
		lines = append(lines, "First aid: "+cond.FirstAid)
	}
	if cond.WhenToSeeDoctor != "" {
		lines = append(lines, "When to see a doctor: "+cond.WhenToSeeDoctor)
	}
	if cond.DoctorType != "" {
		lines = append(lines, "Doctor to consult: "+cond.DoctorType)
	}
	lines = append(lines, disclaimer)
	return strings.Join(lines, "\n")
}

func (b *Bot) questionLines(batch []string) string {
	lines := make([]string, len(batch))
	for i, s := range batch {
		lines[i] = capitalize(b.matcher.Label(s)) + "?"
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
