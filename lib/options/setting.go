package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/qcdb/go-qcdb/lib/util"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Option is the type-erased view of a Setting used by the Registry.
type Option interface {
	Keyword() string
	Help() string
	Expert() bool
	Require(raw any, opts ...AssertOption) error
	Suggest(raw any, opts ...AssertOption) error
	// Resolve returns the reconciled value.
	Resolve() (any, error)
	// Seed returns the validated default.
	Seed() any
	IsDefault() (bool, error)
	String() string

	// prepare validates raw and returns a func that appends the assertion.
	prepare(binding bool, raw any, opts []AssertOption) (func(), error)
	unwind(tag Tag) int
}

// Setting is a single named configuration value with its assertion history.
//
// V must be a concrete comparable type. Interface types such as any satisfy
// comparable but make == panic at run time when they hold a slice or map, so
// NewSetting rejects them.
type Setting[V comparable] struct {
	keyword   string
	help      string
	expert    bool
	validator Validator[V]
	history   []Assertion[V]
}

// NewSetting creates a setting whose history is seeded with the validated
// default. The keyword is stored upper-case.
func NewSetting[V comparable](keyword string, def any, validator Validator[V], help string, expert bool) (*Setting[V], error) {
	if t := reflect.TypeFor[V](); t.Kind() == reflect.Interface {
		return nil, oops.Wrapf(ErrUnsupportedValueType, "setting %s: %s is an interface type", strings.ToUpper(keyword), t)
	}
	s := &Setting[V]{
		keyword:   strings.ToUpper(keyword),
		help:      help,
		expert:    expert,
		validator: validator,
	}
	seed, err := s.check(def)
	if err != nil {
		return nil, err
	}
	s.history = []Assertion[V]{{
		Value:       seed,
		Binding:     false,
		Specificity: len(s.keyword),
		Tag:         TagSeed,
	}}
	return s, nil
}

// MustNewSetting is NewSetting for static catalogs. An invalid default is a
// programming error and panics.
func MustNewSetting[V comparable](keyword string, def any, validator Validator[V], help string, expert bool) *Setting[V] {
	s, err := NewSetting(keyword, def, validator, help, expert)
	if err != nil {
		util.Panicf("invalid catalog default: %s", err)
	}
	return s
}

func (s *Setting[V]) Keyword() string { return s.keyword }
func (s *Setting[V]) Help() string    { return s.help }
func (s *Setting[V]) Expert() bool    { return s.expert }

// Default returns the validated default recorded at construction.
func (s *Setting[V]) Default() V {
	return s.history[0].Value
}

// Seed returns Default as an untyped value.
func (s *Setting[V]) Seed() any {
	return s.Default()
}

// History returns a copy of the assertion history, oldest first.
func (s *Setting[V]) History() []Assertion[V] {
	out := make([]Assertion[V], len(s.history))
	copy(out, s.history)
	return out
}

// Suggest records a non-binding assertion.
func (s *Setting[V]) Suggest(raw any, opts ...AssertOption) error {
	commit, err := s.prepare(false, raw, opts)
	if err != nil {
		return err
	}
	commit()
	return nil
}

// Require records a binding assertion. Conflicts with other requirements are
// not detected here; they surface when the value is read.
func (s *Setting[V]) Require(raw any, opts ...AssertOption) error {
	commit, err := s.prepare(true, raw, opts)
	if err != nil {
		return err
	}
	commit()
	return nil
}

func (s *Setting[V]) prepare(binding bool, raw any, opts []AssertOption) (func(), error) {
	cfg := newAssertConfig(s.keyword, opts)
	v, err := s.check(raw)
	if err != nil {
		return nil, err
	}
	a := Assertion[V]{
		Value:       v,
		Binding:     binding,
		Specificity: cfg.specificity,
		Tag:         cfg.tag,
	}
	return func() { s.record(a, cfg.verbose) }, nil
}

func (s *Setting[V]) record(a Assertion[V], verbose int) {
	s.history = append(s.history, a)
	if verbose < 1 {
		return
	}
	log.WithFields(logger.Fields{
		"at":       "options.Setting.record",
		"keyword":  s.keyword,
		"value":    a.Value,
		"binding":  a.Binding,
		"priority": a.Score(),
		"tag":      a.Tag,
	}).Info("setting_assertion_recorded")
	if verbose >= 2 {
		v, err := s.Value()
		if err != nil {
			log.WithFields(logger.Fields{
				"at":      "options.Setting.record",
				"keyword": s.keyword,
				"history": len(s.history),
				"error":   err.Error(),
			}).Debug("setting_unresolved")
			return
		}
		log.WithFields(logger.Fields{
			"at":      "options.Setting.record",
			"keyword": s.keyword,
			"history": len(s.history),
			"value":   v,
		}).Debug("setting_resolved")
	}
}

func (s *Setting[V]) check(raw any) (V, error) {
	v, err := s.validator.Validate(raw)
	if err != nil {
		var zero V
		return zero, &ValidationError{Keyword: s.keyword, Value: raw, Err: err}
	}
	return v, nil
}

// Value reconciles the history into the effective value. It is recomputed on
// every call and never modifies the history.
func (s *Setting[V]) Value() (V, error) {
	return reconcile(s.keyword, s.history)
}

// Resolve returns Value as an untyped value.
func (s *Setting[V]) Resolve() (any, error) {
	return s.Value()
}

// IsDefault reports whether the reconciled value equals the seed value.
func (s *Setting[V]) IsDefault() (bool, error) {
	v, err := s.Value()
	if err != nil {
		return false, err
	}
	return v == s.history[0].Value, nil
}

// unwind drops every assertion carrying tag, except the seed at index 0.
func (s *Setting[V]) unwind(tag Tag) int {
	kept := s.history[:1]
	for _, a := range s.history[1:] {
		if a.Tag != tag {
			kept = append(kept, a)
		}
	}
	removed := len(s.history) - len(kept)
	clear(s.history[len(kept):])
	s.history = kept
	return removed
}

// String renders the setting as one listing line: keyword, value, a "<>"
// marker when the value differs from the default, and the default.
func (s *Setting[V]) String() string {
	marker := "<>"
	value := ""
	v, err := s.Value()
	if err != nil {
		value = err.Error()
	} else {
		value = fmt.Sprint(v)
		if v == s.history[0].Value {
			marker = "  "
		}
	}
	return fmt.Sprintf("  %-23s %30s %s (%v)", s.keyword+":", value, marker, s.history[0].Value)
}

func reconcile[V comparable](keyword string, history []Assertion[V]) (V, error) {
	var zero V
	if len(history) == 0 {
		return zero, &ReconciliationError{Keyword: keyword, Reason: ErrNoInformation}
	}

	maxScore := history[0].Score()
	for _, a := range history[1:] {
		maxScore = max(maxScore, a.Score())
	}

	// Only the most recent user and driver assertions at the top score take
	// part; older ties in the same category are superseded.
	var user, driver *Assertion[V]
	for i := len(history) - 1; i >= 0 && (user == nil || driver == nil); i-- {
		a := &history[i]
		if a.Score() != maxScore {
			continue
		}
		if a.Tag.IsUser() {
			if user == nil {
				user = a
			}
		} else if driver == nil {
			driver = a
		}
	}

	switch {
	case user == nil && driver == nil:
		return zero, &ReconciliationError{Keyword: keyword, Reason: ErrNoInformation}
	case user == nil:
		return driver.Value, nil
	case driver == nil:
		return user.Value, nil
	case user.Value == driver.Value:
		return user.Value, nil
	default:
		return zero, &ReconciliationError{
			Keyword: keyword,
			Reason:  ErrConflictingRequirement,
			User:    user.Value,
			Driver:  driver.Value,
		}
	}
}
