// Package profile categorizes dimension scores and matches them against a
// static catalogue of two-dimension tension rules.
//
// The engine only ever sees canonical codes. All taxonomy-specific renaming
// lives in Normalize.
package profile

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/types"
)

// CanonicalCodes lists the engine's dimension codes in output order.
var CanonicalCodes = []string{"H", "E", "X", "A", "C", "O"}

// remaps holds the foreign-to-canonical code table of every taxonomy. A code
// missing from a table is dropped; a canonical code no foreign code maps to is
// simply absent from the result.
var remaps = map[types.Taxonomy]map[string]string{
	types.TaxonomyHexaco100:      identity(),
	types.TaxonomyHexaco60:       identity(),
	types.TaxonomyBigFiveAspects: {"N": "E", "E": "X", "O": "O", "A": "A", "C": "C"},
	types.TaxonomyMBTI:           {},
}

func identity() map[string]string {
	m := make(map[string]string, len(CanonicalCodes))
	for _, c := range CanonicalCodes {
		m[c] = c
	}
	return m
}

func init() {
	if err := checkRemaps(remaps); err != nil {
		panic(err)
	}
}

// checkRemaps verifies that every table targets canonical codes and is injective.
func checkRemaps(tables map[types.Taxonomy]map[string]string) error {
	for taxonomy, table := range tables {
		seen := make(map[string]string, len(table))
		for from, to := range table {
			if !IsCanonical(to) {
				return fmt.Errorf("remap %s: %q maps to non-canonical code %q", taxonomy, from, to)
			}
			if prev, dup := seen[to]; dup {
				return fmt.Errorf("remap %s: %q and %q both map to %q", taxonomy, prev, from, to)
			}
			seen[to] = from
		}
	}
	return nil
}

// IsCanonical reports whether code is one of the canonical codes.
func IsCanonical(code string) bool {
	for _, c := range CanonicalCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Normalize maps a taxonomy's dimension scores onto canonical codes. Codes
// without a mapping (such as interstitial scales) are dropped; absent canonical
// codes are never synthesized.
func Normalize(dimensions map[string]float64, taxonomy types.Taxonomy) (map[string]float64, error) {
	table, ok := remaps[taxonomy]
	if !ok {
		return nil, fmt.Errorf("no code mapping for taxonomy %q", taxonomy)
	}

	out := make(map[string]float64, len(table))
	for code, score := range dimensions {
		if canonical, ok := table[code]; ok {
			out[canonical] = score
		}
	}
	return out, nil
}

// DimensionScores converts a Likert result's integer dimension scores for Normalize.
func DimensionScores(result *types.ScoreResult) map[string]float64 {
	out := make(map[string]float64, len(result.Dimensions))
	for code, v := range result.Dimensions {
		out[code] = float64(v)
	}
	return out
}
