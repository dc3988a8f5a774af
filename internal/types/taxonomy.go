// Package types provides type definitions for structured data used throughout the assessment engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Taxonomy identifies one of the fixed personality-model variants a participant can take.
type Taxonomy string

// Registered taxonomies
const (
	TaxonomyHexaco100      Taxonomy = "hexaco_100"       // 6-dimension facet model
	TaxonomyHexaco60       Taxonomy = "hexaco_60"        // reduced-item variant of the facet model
	TaxonomyBigFiveAspects Taxonomy = "big_five_aspects" // 5-dimension aspect model
	TaxonomyMBTI           Taxonomy = "mbti"             // 4-dichotomy binary model
)

// CoreTaxonomies are filled to quota before any exploratory taxonomy is offered.
// Order is declaration order only; it never decides ties.
var CoreTaxonomies = []Taxonomy{
	TaxonomyHexaco100,
	TaxonomyHexaco60,
	TaxonomyBigFiveAspects,
}

// ExploratoryTaxonomies only receive participants once every core quota is met.
var ExploratoryTaxonomies = []Taxonomy{
	TaxonomyMBTI,
}

// AllTaxonomies returns every registered taxonomy, core first.
func AllTaxonomies() []Taxonomy {
	all := make([]Taxonomy, 0, len(CoreTaxonomies)+len(ExploratoryTaxonomies))
	all = append(all, CoreTaxonomies...)
	all = append(all, ExploratoryTaxonomies...)
	return all
}

// IsCore reports whether t is a core taxonomy.
func (t Taxonomy) IsCore() bool {
	for _, c := range CoreTaxonomies {
		if c == t {
			return true
		}
	}
	return false
}

// IsKnown reports whether t is a registered taxonomy.
func (t Taxonomy) IsKnown() bool {
	for _, c := range AllTaxonomies() {
		if c == t {
			return true
		}
	}
	return false
}

func (t Taxonomy) String() string {
	return string(t)
}

// ParseTaxonomy converts a raw identifier into a registered Taxonomy.
func ParseTaxonomy(s string) (Taxonomy, error) {
	t := Taxonomy(s)
	if !t.IsKnown() {
		return "", fmt.Errorf("unknown taxonomy %q", s)
	}
	return t, nil
}
