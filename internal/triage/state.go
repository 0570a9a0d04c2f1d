package triage

// State is the per-conversation mutable record of evidence. One instance per
// conversation; never shared between callers.
type State struct {
	Confirmed map[string]bool
	Denied    map[string]bool
	Maybe     map[string]bool

	// Asked holds tokens already posed to the user so they are not reissued.
	Asked map[string]bool

	// PendingBatch is the ordered list of tokens awaiting a yes/no/maybe
	// answer. Empty when no question is outstanding.
	PendingBatch []string

	OverviewShown bool

	// RuledOut names conditions excluded from scoring. Nothing populates it
	// yet, but the engine honors it.
	RuledOut map[string]bool
}

func NewState() *State {
	return &State{
		Confirmed: make(map[string]bool),
		Denied:    make(map[string]bool),
		Maybe:     make(map[string]bool),
		Asked:     make(map[string]bool),
		RuledOut:  make(map[string]bool),
	}
}

// Confirm records an affirmed symptom. Confirmed, denied and maybe stay
// pairwise disjoint: resolving a token one way clears the other two.
func (s *State) Confirm(token string) {
	delete(s.Denied, token)
	delete(s.Maybe, token)
	s.Confirmed[token] = true
}

// Deny records a negated symptom.
func (s *State) Deny(token string) {
	delete(s.Confirmed, token)
	delete(s.Maybe, token)
	s.Denied[token] = true
}

// MarkMaybe records an uncertain answer.
func (s *State) MarkMaybe(token string) {
	delete(s.Confirmed, token)
	delete(s.Denied, token)
	s.Maybe[token] = true
}

// Resolved reports whether a token has any recorded resolution or has
// already been asked.
func (s *State) Resolved(token string) bool {
	return s.Confirmed[token] || s.Denied[token] || s.Maybe[token] || s.Asked[token]
}
