package types

// Format is the answer format of a test.
type Format string

// Supported formats
const (
	FormatLikert Format = "likert"
	FormatBinary Format = "binary"
)

// Subscale names the kind of sub-dimension a Likert test uses.
type Subscale string

// Supported subscales
const (
	SubscaleNone   Subscale = ""
	SubscaleFacet  Subscale = "facet"
	SubscaleAspect Subscale = "aspect"
)

// Likert scale bounds
const (
	LikertMin = 1
	LikertMax = 5
)

// TestConfig is the static definition of one taxonomy. Configs are loaded once
// at startup and must not be modified afterwards.
type TestConfig struct {
	Taxonomy   Taxonomy       `json:"taxonomy"`
	Format     Format         `json:"format"`
	Subscale   Subscale       `json:"subscale,omitempty"`
	Dimensions []DimensionDef `json:"dimensions"`
	Questions  []QuestionDef  `json:"questions"`
}

// DimensionDef defines a top-level trait axis (or a dichotomy for binary tests).
type DimensionDef struct {
	Code      string   `json:"code"`
	Subscales []string `json:"subscales,omitempty"` // facet or aspect codes in display order
	NameKey   string   `json:"name_key,omitempty"`  // localization key, resolved externally
}

// Pole is one end of a dichotomy.
type Pole struct {
	Pole string `json:"pole"`
}

// QuestionDef defines a single test item. Likert items use Dimension, Subscale
// and Reversed; binary items use Dimension as the dichotomy code and OptionA/OptionB.
type QuestionDef struct {
	ID        int    `json:"id"`
	Dimension string `json:"dimension"`
	Subscale  string `json:"subscale,omitempty"`
	Reversed  bool   `json:"reversed,omitempty"`
	OptionA   *Pole  `json:"option_a,omitempty"`
	OptionB   *Pole  `json:"option_b,omitempty"`
	Key       string `json:"key,omitempty"` // localization key for the item text
}

// Dimension returns the definition for code, if present.
func (c *TestConfig) Dimension(code string) (DimensionDef, bool) {
	for _, d := range c.Dimensions {
		if d.Code == code {
			return d, true
		}
	}
	return DimensionDef{}, false
}

// DimensionCodes returns dimension codes in declaration order.
func (c *TestConfig) DimensionCodes() []string {
	codes := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		codes[i] = d.Code
	}
	return codes
}

// QuestionIndex maps question IDs to their definition.
func (c *TestConfig) QuestionIndex() map[int]QuestionDef {
	idx := make(map[int]QuestionDef, len(c.Questions))
	for _, q := range c.Questions {
		idx[q.ID] = q
	}
	return idx
}
