package types

// ScoreResult is the outcome of scoring one complete answer set.
// Type selects which of the Likert or binary fields are populated.
type ScoreResult struct {
	Type     Format   `json:"type"`
	Taxonomy Taxonomy `json:"taxonomy"`

	// Likert
	Dimensions map[string]int            `json:"dimensions,omitempty"`
	Facets     map[string]map[string]int `json:"facets,omitempty"`
	Aspects    map[string]map[string]int `json:"aspects,omitempty"`

	// Binary
	Dichotomies map[string]DichotomyScore `json:"dichotomies,omitempty"`
	TypeCode    string                    `json:"type_code,omitempty"`
}

// DichotomyScore is the result for a single binary axis.
type DichotomyScore struct {
	PercentageA  int    `json:"percentage_a"`
	DominantPole string `json:"dominant_pole"`
}

// Clone returns a deep copy of r.
func (r *ScoreResult) Clone() *ScoreResult {
	if r == nil {
		return nil
	}
	out := &ScoreResult{
		Type:     r.Type,
		Taxonomy: r.Taxonomy,
		TypeCode: r.TypeCode,
	}
	if r.Dimensions != nil {
		out.Dimensions = make(map[string]int, len(r.Dimensions))
		for k, v := range r.Dimensions {
			out.Dimensions[k] = v
		}
	}
	out.Facets = cloneNested(r.Facets)
	out.Aspects = cloneNested(r.Aspects)
	if r.Dichotomies != nil {
		out.Dichotomies = make(map[string]DichotomyScore, len(r.Dichotomies))
		for k, v := range r.Dichotomies {
			out.Dichotomies[k] = v
		}
	}
	return out
}

// Subscales returns whichever of Facets or Aspects is populated.
func (r *ScoreResult) Subscales() map[string]map[string]int {
	if r.Facets != nil {
		return r.Facets
	}
	return r.Aspects
}

func cloneNested(in map[string]map[string]int) map[string]map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]map[string]int, len(in))
	for dim, subs := range in {
		m := make(map[string]int, len(subs))
		for k, v := range subs {
			m[k] = v
		}
		out[dim] = m
	}
	return out
}
