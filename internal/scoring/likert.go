package scoring

import "github.com/jonathan/assessment-engine/internal/types"

// scoreLikert computes dimension and subscale means. Every question counts
// toward its dimension, whether or not it carries a subscale tag.
func scoreLikert(byID map[int]types.AnswerValue, cfg *types.TestConfig) (*types.ScoreResult, error) {
	dims := make(map[string]*mean, len(cfg.Dimensions))
	subs := make(map[string]map[string]*mean, len(cfg.Dimensions))
	for _, d := range cfg.Dimensions {
		dims[d.Code] = &mean{}
		subs[d.Code] = make(map[string]*mean, len(d.Subscales))
		for _, s := range d.Subscales {
			subs[d.Code][s] = &mean{}
		}
	}

	// Validate every value before accumulating anything
	values := make(map[int]int, len(cfg.Questions))
	for _, q := range cfg.Questions {
		v, err := likertValue(q, byID[q.ID])
		if err != nil {
			return nil, err
		}
		values[q.ID] = v
	}

	for _, q := range cfg.Questions {
		normalized := NormalizeLikert(values[q.ID], q.Reversed)

		dm, ok := dims[q.Dimension]
		if !ok {
			dm = &mean{}
			dims[q.Dimension] = dm
		}
		dm.add(normalized)

		if q.Subscale == "" {
			continue
		}
		if subs[q.Dimension] == nil {
			subs[q.Dimension] = make(map[string]*mean)
		}
		sm, ok := subs[q.Dimension][q.Subscale]
		if !ok {
			sm = &mean{}
			subs[q.Dimension][q.Subscale] = sm
		}
		sm.add(normalized)
	}

	result := &types.ScoreResult{
		Type:       types.FormatLikert,
		Taxonomy:   cfg.Taxonomy,
		Dimensions: make(map[string]int, len(dims)),
	}
	for code, m := range dims {
		result.Dimensions[code] = m.rounded()
	}

	nested := make(map[string]map[string]int)
	for code, byCode := range subs {
		if len(byCode) == 0 {
			continue
		}
		scores := make(map[string]int, len(byCode))
		for sub, m := range byCode {
			scores[sub] = m.rounded()
		}
		nested[code] = scores
	}

	if len(nested) > 0 {
		switch cfg.Subscale {
		case types.SubscaleAspect:
			result.Aspects = nested
		default:
			result.Facets = nested
		}
	}

	return result, nil
}
