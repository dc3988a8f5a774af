package catalog

import (
	"fmt"

	"github.com/jonathan/assessment-engine/internal/types"
)

// Validate checks the internal consistency of a config: unique question IDs and
// dimension codes, questions referencing declared dimensions and subscales, and
// at least one question behind every dimension and subscale. Binary configs also
// need a consistent pair of distinct poles per dichotomy.
func Validate(cfg *types.TestConfig) error {
	fail := func(format string, args ...any) error {
		return &ConfigError{Taxonomy: cfg.Taxonomy, Message: fmt.Sprintf(format, args...)}
	}

	if len(cfg.Dimensions) == 0 {
		return fail("no dimensions")
	}
	if len(cfg.Questions) == 0 {
		return fail("no questions")
	}

	subscales := make(map[string]map[string]bool, len(cfg.Dimensions))
	for _, d := range cfg.Dimensions {
		if d.Code == "" {
			return fail("dimension with empty code")
		}
		if _, dup := subscales[d.Code]; dup {
			return fail("duplicate dimension code %q", d.Code)
		}
		subs := make(map[string]bool, len(d.Subscales))
		for _, s := range d.Subscales {
			if subs[s] {
				return fail("duplicate subscale %q in dimension %q", s, d.Code)
			}
			subs[s] = true
		}
		subscales[d.Code] = subs
	}

	dimCount := make(map[string]int, len(cfg.Dimensions))
	subCount := make(map[string]int)
	seenIDs := make(map[int]bool, len(cfg.Questions))
	poles := make(map[string][2]string)

	for _, q := range cfg.Questions {
		if q.ID <= 0 {
			return fail("question id %d is not positive", q.ID)
		}
		if seenIDs[q.ID] {
			return fail("duplicate question id %d", q.ID)
		}
		seenIDs[q.ID] = true

		subs, ok := subscales[q.Dimension]
		if !ok {
			return fail("question %d references unknown dimension %q", q.ID, q.Dimension)
		}
		dimCount[q.Dimension]++

		switch cfg.Format {
		case types.FormatLikert:
			if q.OptionA != nil || q.OptionB != nil {
				return fail("likert question %d declares options", q.ID)
			}
			if q.Subscale != "" {
				if !subs[q.Subscale] {
					return fail("question %d references unknown subscale %q of %q", q.ID, q.Subscale, q.Dimension)
				}
				subCount[q.Dimension+"/"+q.Subscale]++
			}
		case types.FormatBinary:
			if q.OptionA == nil || q.OptionB == nil {
				return fail("binary question %d is missing an option", q.ID)
			}
			if q.OptionA.Pole == q.OptionB.Pole {
				return fail("binary question %d has identical poles", q.ID)
			}
			pair := [2]string{q.OptionA.Pole, q.OptionB.Pole}
			if prev, ok := poles[q.Dimension]; ok && prev != pair {
				return fail("question %d poles %v disagree with dichotomy %q poles %v", q.ID, pair, q.Dimension, prev)
			}
			poles[q.Dimension] = pair
		default:
			return fail("unsupported format %q", cfg.Format)
		}
	}

	for _, d := range cfg.Dimensions {
		if dimCount[d.Code] == 0 {
			return fail("dimension %q has no questions", d.Code)
		}
		for _, s := range d.Subscales {
			if subCount[d.Code+"/"+s] == 0 {
				return fail("subscale %q of %q has no questions", s, d.Code)
			}
		}
	}

	return nil
}

// Poles returns the option A and option B poles of a dichotomy in a binary config.
func Poles(cfg *types.TestConfig, dichotomy string) (a, b string, ok bool) {
	for _, q := range cfg.Questions {
		if q.Dimension == dichotomy && q.OptionA != nil && q.OptionB != nil {
			return q.OptionA.Pole, q.OptionB.Pole, true
		}
	}
	return "", "", false
}
