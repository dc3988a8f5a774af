package profile

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/types"
)

const (
	low  = types.LevelLow
	high = types.LevelHigh
)

// Tensions is the ordered rule catalogue. Rules reference canonical codes only
// and never a medium level. Output preserves this order.
var Tensions = []types.TensionPair{
	// Insight
	{DimA: "H", LevelA: high, DimB: "A", LevelB: high, ContentKey: "tension.principled_peacemaker"},
	{DimA: "H", LevelA: high, DimB: "X", LevelB: high, ContentKey: "tension.transparent_leader"},
	{DimA: "H", LevelA: high, DimB: "C", LevelB: high, ContentKey: "tension.reliable_steward"},
	{DimA: "E", LevelA: low, DimB: "X", LevelB: high, ContentKey: "tension.bold_connector"},
	{DimA: "E", LevelA: high, DimB: "A", LevelB: high, ContentKey: "tension.empathic_supporter"},
	{DimA: "E", LevelA: low, DimB: "C", LevelB: high, ContentKey: "tension.steady_executor"},
	{DimA: "X", LevelA: high, DimB: "A", LevelB: high, ContentKey: "tension.warm_host"},
	{DimA: "X", LevelA: low, DimB: "O", LevelB: high, ContentKey: "tension.reflective_explorer"},
	{DimA: "X", LevelA: low, DimB: "E", LevelB: low, ContentKey: "tension.self_contained"},
	{DimA: "C", LevelA: high, DimB: "O", LevelB: high, ContentKey: "tension.disciplined_innovator"},
	{DimA: "C", LevelA: high, DimB: "O", LevelB: low, ContentKey: "tension.tradition_keeper"},
	{DimA: "C", LevelA: high, DimB: "A", LevelB: low, ContentKey: "tension.exacting_standard_setter"},

	// Risk
	{DimA: "H", LevelA: low, DimB: "X", LevelB: high, Risk: true, ContentKey: "tension.charming_manipulator"},
	{DimA: "H", LevelA: low, DimB: "C", LevelB: high, Risk: true, ContentKey: "tension.strategic_operator"},
	{DimA: "H", LevelA: low, DimB: "A", LevelB: low, Risk: true, ContentKey: "tension.exploitative_edge"},
	{DimA: "E", LevelA: high, DimB: "X", LevelB: low, Risk: true, ContentKey: "tension.withdrawn_worrier"},
	{DimA: "E", LevelA: high, DimB: "A", LevelB: low, Risk: true, ContentKey: "tension.reactive_temper"},
	{DimA: "E", LevelA: high, DimB: "C", LevelB: high, Risk: true, ContentKey: "tension.perfectionist_strain"},
	{DimA: "E", LevelA: high, DimB: "C", LevelB: low, Risk: true, ContentKey: "tension.overwhelmed_drift"},
	{DimA: "E", LevelA: low, DimB: "A", LevelB: low, Risk: true, ContentKey: "tension.cold_detachment"},
	{DimA: "X", LevelA: high, DimB: "A", LevelB: low, Risk: true, ContentKey: "tension.dominant_confronter"},
	{DimA: "X", LevelA: high, DimB: "C", LevelB: low, Risk: true, ContentKey: "tension.impulsive_socializer"},
	{DimA: "X", LevelA: low, DimB: "A", LevelB: high, Risk: true, ContentKey: "tension.silent_accommodator"},
	{DimA: "C", LevelA: low, DimB: "O", LevelB: high, Risk: true, ContentKey: "tension.scattered_visionary"},
}

func init() {
	if err := checkCatalogue(Tensions); err != nil {
		panic(err)
	}
}

// checkCatalogue rejects rules on non-canonical or repeated dimensions, medium
// levels, duplicate level combinations and duplicate content keys.
func checkCatalogue(rules []types.TensionPair) error {
	keys := make(map[string]bool, len(rules))
	combos := make(map[string]bool, len(rules))

	for i, r := range rules {
		if !IsCanonical(r.DimA) || !IsCanonical(r.DimB) {
			return fmt.Errorf("tension %d (%s): non-canonical dimension", i, r.ContentKey)
		}
		if r.DimA == r.DimB {
			return fmt.Errorf("tension %d (%s): pairs %s with itself", i, r.ContentKey, r.DimA)
		}
		if !extreme(r.LevelA) || !extreme(r.LevelB) {
			return fmt.Errorf("tension %d (%s): levels must be low or high", i, r.ContentKey)
		}
		if r.ContentKey == "" || keys[r.ContentKey] {
			return fmt.Errorf("tension %d: empty or duplicate content key %q", i, r.ContentKey)
		}
		keys[r.ContentKey] = true

		a := r.DimA + "=" + string(r.LevelA)
		b := r.DimB + "=" + string(r.LevelB)
		if a > b {
			a, b = b, a
		}
		if combos[a+","+b] {
			return fmt.Errorf("tension %d (%s): duplicate combination %s,%s", i, r.ContentKey, a, b)
		}
		combos[a+","+b] = true
	}
	return nil
}

func extreme(l types.Level) bool {
	return l == types.LevelLow || l == types.LevelHigh
}
