package config

import (
	"slices"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/qcdb/go-qcdb/lib/options"
	"github.com/samber/oops"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Asserter records assertions; *options.Registry and *options.Locked both
// satisfy it.
type Asserter interface {
	Require(domain, suffix string, raw any, opts ...options.AssertOption) error
	Suggest(domain, suffix string, raw any, opts ...options.AssertOption) error
}

// ApplyUserOptions records every entry of the options section of v on reg,
// tagged options.TagUser. In strict mode entries are requirements; otherwise
// they are suggestions, and any driver requirement overrides them. Entries are
// applied in domain then keyword order and application stops at the first error.
func ApplyUserOptions(reg Asserter, v *viper.Viper, verbose int, strict bool) (int, error) {
	record := reg.Suggest
	if strict {
		record = reg.Require
	}

	section := v.GetStringMap("options")
	domains := make([]string, 0, len(section))
	for d := range section {
		domains = append(domains, d)
	}
	slices.Sort(domains)

	applied := 0
	for _, domain := range domains {
		entries, err := cast.ToStringMapE(section[domain])
		if err != nil {
			return applied, oops.Wrapf(err, "options.%s must be a mapping", domain)
		}
		keywords := make([]string, 0, len(entries))
		for k := range entries {
			keywords = append(keywords, k)
		}
		slices.Sort(keywords)

		for _, keyword := range keywords {
			err := record(domain, keyword, entries[keyword],
				options.WithTag(options.TagUser), options.WithVerbose(verbose))
			if err != nil {
				return applied, oops.Wrapf(err, "options.%s.%s", domain, keyword)
			}
			applied++
		}
	}

	log.WithFields(logger.Fields{
		"at":      "config.ApplyUserOptions",
		"domains": len(domains),
		"applied": applied,
		"strict":  strict,
	}).Debug("user_options_applied")
	return applied, nil
}

// Assignment is a single domain.keyword=value entry from the command line.
type Assignment struct {
	Domain  string
	Keyword string
	Value   string
}

// ParseAssignment splits "domain.keyword=value".
func ParseAssignment(s string) (Assignment, error) {
	lhs, value, ok := strings.Cut(s, "=")
	if !ok {
		return Assignment{}, oops.Errorf("expected domain.keyword=value, got %q", s)
	}
	domain, keyword, ok := strings.Cut(strings.TrimSpace(lhs), ".")
	if !ok || domain == "" || keyword == "" {
		return Assignment{}, oops.Errorf("expected domain.keyword=value, got %q", s)
	}
	return Assignment{Domain: domain, Keyword: keyword, Value: strings.TrimSpace(value)}, nil
}
