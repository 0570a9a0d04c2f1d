package catalog

// Condition is a single catalog record. Immutable after load.
type Condition struct {
	Name         string
	CoreSymptoms []string

	// CriticalSymptoms is the optional severity list used by the finalize
	// guard. Empty means "fall back to the core-symptom count".
	CriticalSymptoms []string

	// OnlySet restricts the condition to presentations where every confirmed
	// symptom is a member of the set. Empty means no restriction.
	OnlySet map[string]bool

	// Synonyms maps informal phrases to canonical symptom tokens, merged into
	// the matcher's alias table at engine construction.
	Synonyms map[string]string

	SingleSymptom bool

	Description     string
	FirstAid        string
	WhenToSeeDoctor string
	DoctorType      string
}

// Catalog is an ordered collection of conditions. Order is the source order
// and is load-bearing: ranking ties are broken by it.
type Catalog struct {
	Conditions []Condition
}

// KnownSymptoms returns the distinct symptom tokens across all records.
func (c *Catalog) KnownSymptoms() map[string]bool {
	known := make(map[string]bool)
	for _, cond := range c.Conditions {
		for _, s := range cond.CoreSymptoms {
			known[s] = true
		}
	}
	return known
}

// SynonymTable merges the per-record synonym pairs into one phrase -> token
// table. Later records win on duplicate phrases.
func (c *Catalog) SynonymTable() map[string]string {
	out := make(map[string]string)
	for _, cond := range c.Conditions {
		for k, v := range cond.Synonyms {
			out[k] = v
		}
	}
	return out
}
