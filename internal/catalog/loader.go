package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ConfigurationError reports a catalog source that cannot be used at all,
// e.g. a CSV without the required columns. It is a construction-time failure:
// the engine must not be started on top of it.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "catalog configuration: " + e.Reason
}

// Column aliases accepted for each field, checked in order. The critical
// aliases overlap with the symptom aliases on purpose: a sheet may carry one
// combined column or two separate ones.
var (
	conditionAliases = []string{"disease", "condition", "diagnosis", "name"}
	symptomsAliases  = []string{"core_symptoms", "symptoms", "key_symptoms", "must_have", "critical_symptoms"}
	criticalAliases  = []string{"critical_symptoms", "critical symptoms"}
	singleAliases    = []string{"single", "single_symptom", "is_single"}
	synonymsAliases  = []string{"synonyms"}
	descAliases      = []string{"description"}
	firstAidAliases  = []string{"first_aid", "first aid"}
	whenToSeeAliases = []string{"when_to_see_doctor", "when to see doctor"}
	doctorAliases    = []string{"doctor_type", "doctor type"}
)

var wsRe = regexp.MustCompile(`\s+`)

// Normalize collapses whitespace, trims and lowercases. Total function.
func Normalize(text string) string {
	return wsRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(text)), " ")
}

var (
	listSepRe = regexp.MustCompile(`[,|;]`)
	synSepRe  = regexp.MustCompile(`[|;]`)
)

// SplitList splits a cell on ',', '|' or ';' and normalizes each part,
// dropping empties.
func SplitList(cell string) []string {
	var out []string
	for _, p := range listSepRe.Split(cell, -1) {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func truthy(cell string) bool {
	switch Normalize(cell) {
	case "1", "true", "yes", "y", "t":
		return true
	}
	return false
}

// LoadFile reads a condition catalog from a CSV file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a condition catalog from CSV data. The first row must be a
// header; columns are resolved through the alias tables above and source row
// order is preserved.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, &ConfigurationError{Reason: "empty catalog source"}
	}

	pick := func(aliases []string, taken int) int {
		for _, a := range aliases {
			for i, col := range header {
				if i != taken && Normalize(col) == a {
					return i
				}
			}
		}
		return -1
	}

	condCol := pick(conditionAliases, -1)
	sympCol := pick(symptomsAliases, -1)
	if condCol < 0 || sympCol < 0 {
		return nil, &ConfigurationError{Reason: "need a condition column and a symptoms column"}
	}
	// A critical column only counts when it is not the one already consumed
	// as the core-symptom column.
	critCol := pick(criticalAliases, sympCol)
	singleCol := pick(singleAliases, -1)
	synCol := pick(synonymsAliases, -1)
	descCol := pick(descAliases, -1)
	faCol := pick(firstAidAliases, -1)
	whenCol := pick(whenToSeeAliases, -1)
	docCol := pick(doctorAliases, -1)

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var cat Catalog
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		name := cell(row, condCol)
		if name == "" {
			continue
		}

		// "only <symptom>" entries become both a core symptom and a member
		// of the exclusivity set.
		onlySet := make(map[string]bool)
		var core []string
		for _, s := range SplitList(cell(row, sympCol)) {
			if base, ok := strings.CutPrefix(s, "only "); ok {
				onlySet[base] = true
				core = append(core, base)
			} else {
				core = append(core, s)
			}
		}
		if len(onlySet) == 0 {
			onlySet = nil
		}

		single := len(core) == 1
		if singleCol >= 0 {
			single = truthy(cell(row, singleCol))
		}

		var synonyms map[string]string
		if raw := cell(row, synCol); raw != "" {
			synonyms = make(map[string]string)
			for _, pair := range synSepRe.Split(raw, -1) {
				k, v, ok := strings.Cut(pair, "=")
				if !ok {
					continue
				}
				if k, v = Normalize(k), Normalize(v); k != "" && v != "" {
					synonyms[k] = v
				}
			}
			if len(synonyms) == 0 {
				synonyms = nil
			}
		}

		cat.Conditions = append(cat.Conditions, Condition{
			Name:             name,
			CoreSymptoms:     core,
			CriticalSymptoms: SplitList(cell(row, critCol)),
			OnlySet:          onlySet,
			Synonyms:         synonyms,
			SingleSymptom:    single,
			Description:      cell(row, descCol),
			FirstAid:         cell(row, faCol),
			WhenToSeeDoctor:  cell(row, whenCol),
			DoctorType:       cell(row, docCol),
		})
	}

	return &cat, nil
}
