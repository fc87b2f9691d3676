package options

import (
	"slices"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

// SupportedDomains lists the domains a Registry accepts, in listing order.
var SupportedDomains = []string{"QCDB", "PSI4", "CFOUR", "DFTD3"}

// Registry holds every registered setting, grouped by domain and keyed by
// canonical keyword. It performs no locking; see Locked.
type Registry struct {
	domains map[string]map[string]Option
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]map[string]Option)}
}

func canonicalDomain(domain string) (string, error) {
	up := strings.ToUpper(domain)
	if !slices.Contains(SupportedDomains, up) {
		return "", oops.Wrapf(ErrDomainNotSupported, "domain not supported: %s", domain)
	}
	return up, nil
}

// Add registers opt under domain, replacing any setting with the same keyword.
func (r *Registry) Add(domain string, opt Option) error {
	up, err := canonicalDomain(domain)
	if err != nil {
		return err
	}
	settings, ok := r.domains[up]
	if !ok {
		settings = make(map[string]Option)
		r.domains[up] = settings
	}
	settings[opt.Keyword()] = opt
	return nil
}

// Require records a binding assertion on every setting in domain whose
// keyword ends with suffix. The specificity is the suffix length.
func (r *Registry) Require(domain, suffix string, raw any, opts ...AssertOption) error {
	return r.set(true, domain, suffix, raw, opts)
}

// Suggest is Require for non-binding assertions.
func (r *Registry) Suggest(domain, suffix string, raw any, opts ...AssertOption) error {
	return r.set(false, domain, suffix, raw, opts)
}

// set validates the value against every match before appending anything, so
// a failed call leaves all histories untouched.
func (r *Registry) set(binding bool, domain, suffix string, raw any, opts []AssertOption) error {
	matches, err := r.match(domain, suffix)
	if err != nil {
		return err
	}

	opts = append(slices.Clone(opts), WithSpecificity(len(suffix)))
	// One tag for the whole fan-out so the batch unwinds together.
	cfg := newAssertConfig(suffix, opts)
	opts = append(opts, WithTag(cfg.tag))

	commits := make([]func(), 0, len(matches))
	for _, opt := range matches {
		commit, err := opt.prepare(binding, raw, opts)
		if err != nil {
			return err
		}
		commits = append(commits, commit)
	}
	for _, commit := range commits {
		commit()
	}

	log.WithFields(logger.Fields{
		"at":      "options.Registry.set",
		"domain":  domain,
		"suffix":  suffix,
		"binding": binding,
		"matched": len(matches),
		"tag":     cfg.tag,
	}).Debug("registry_assertion_routed")
	return nil
}

// match returns the settings of domain whose keyword ends with suffix,
// sorted by keyword. The test is a plain case-insensitive string suffix.
func (r *Registry) match(domain, suffix string) ([]Option, error) {
	up, err := canonicalDomain(domain)
	if err != nil {
		return nil, err
	}
	want := strings.ToUpper(suffix)

	var matches []Option
	for _, keyword := range r.keywords(up) {
		if strings.HasSuffix(keyword, want) {
			matches = append(matches, r.domains[up][keyword])
		}
	}
	if len(matches) == 0 {
		return nil, oops.Wrapf(ErrOptionNotFound, "option (%s) does not exist in domain (%s)", suffix, domain)
	}
	return matches, nil
}

// Lookup returns the setting registered in domain under exactly keyword.
func (r *Registry) Lookup(domain, keyword string) (Option, error) {
	up, err := canonicalDomain(domain)
	if err != nil {
		return nil, err
	}
	opt, ok := r.domains[up][strings.ToUpper(keyword)]
	if !ok {
		return nil, oops.Wrapf(ErrOptionNotFound, "option (%s) does not exist in domain (%s)", keyword, domain)
	}
	return opt, nil
}

// UnwindByTag removes every assertion carrying tag from every setting and
// returns how many were removed. Seed assertions are never removed.
func (r *Registry) UnwindByTag(tag Tag) int {
	removed := 0
	for _, settings := range r.domains {
		for _, opt := range settings {
			removed += opt.unwind(tag)
		}
	}
	log.WithFields(logger.Fields{
		"at":      "options.Registry.UnwindByTag",
		"tag":     tag,
		"removed": removed,
	}).Debug("registry_unwound")
	return removed
}

// Domains returns the domains holding at least one setting, in listing order.
func (r *Registry) Domains() []string {
	var out []string
	for _, d := range SupportedDomains {
		if len(r.domains[d]) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Settings returns the settings of domain sorted by keyword.
func (r *Registry) Settings(domain string) ([]Option, error) {
	up, err := canonicalDomain(domain)
	if err != nil {
		return nil, err
	}
	keywords := r.keywords(up)
	out := make([]Option, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, r.domains[up][k])
	}
	return out, nil
}

func (r *Registry) keywords(domain string) []string {
	keywords := make([]string, 0, len(r.domains[domain]))
	for k := range r.domains[domain] {
		keywords = append(keywords, k)
	}
	slices.Sort(keywords)
	return keywords
}
