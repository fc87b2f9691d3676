package options

// BindingBonus is added to the score of every binding assertion. It exceeds
// any keyword length, so a requirement always outranks a suggestion.
const BindingBonus = 100

// Assertion is one recorded attempt to set a Setting's value.
type Assertion[V comparable] struct {
	// Value is the validated, canonical value.
	Value V
	// Binding is true for requirements and false for suggestions.
	Binding bool
	// Specificity is how precisely the keyword was named.
	Specificity int
	// Tag identifies who made the assertion.
	Tag Tag
}

// Score ranks the assertion during reconciliation.
func (a Assertion[V]) Score() int {
	if a.Binding {
		return a.Specificity + BindingBonus
	}
	return a.Specificity
}

// AssertOption customizes a single Require or Suggest call.
type AssertOption func(*assertConfig)

type assertConfig struct {
	specificity    int
	hasSpecificity bool
	tag            Tag
	verbose        int
}

// WithSpecificity overrides the default specificity, which is the length of
// the full keyword. Negative values are clamped to zero.
func WithSpecificity(n int) AssertOption {
	return func(c *assertConfig) {
		if n < 0 {
			n = 0
		}
		c.specificity = n
		c.hasSpecificity = true
	}
}

// WithTag records the assertion under tag. Without it a fresh tag is generated.
func WithTag(tag Tag) AssertOption {
	return func(c *assertConfig) {
		c.tag = tag
	}
}

// WithVerbose sets how much is logged about the assertion. Level 0 is silent,
// 1 (the default) logs the assertion and 2 also logs the value resolved after it.
func WithVerbose(level int) AssertOption {
	return func(c *assertConfig) {
		c.verbose = level
	}
}

func newAssertConfig(keyword string, opts []AssertOption) assertConfig {
	cfg := assertConfig{verbose: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSpecificity {
		cfg.specificity = len(keyword)
	}
	if cfg.tag == "" {
		cfg.tag = NewTag()
	}
	return cfg
}
