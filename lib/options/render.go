package options

import (
	"fmt"
	"strings"
)

// Render lists every setting per domain: keyword, resolved value, a "<>"
// marker when the value is not the default, and the default in parentheses.
func (r *Registry) Render() string {
	var lines []string
	for _, domain := range r.Domains() {
		lines = append(lines, DomainHeader(domain))
		for _, keyword := range r.keywords(domain) {
			lines = append(lines, r.domains[domain][keyword].String())
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Registry) String() string {
	return r.Render()
}

// DomainHeader is the line that introduces a domain in Render.
func DomainHeader(domain string) string {
	return fmt.Sprintf("  <<<  %s  >>>", domain)
}

// Snapshot returns the resolved value of every setting, by domain and
// keyword. A setting that fails to resolve maps to its error text.
func (r *Registry) Snapshot() map[string]map[string]any {
	out := make(map[string]map[string]any, len(r.domains))
	for _, domain := range r.Domains() {
		values := make(map[string]any, len(r.domains[domain]))
		for keyword, opt := range r.domains[domain] {
			v, err := opt.Resolve()
			if err != nil {
				values[keyword] = err.Error()
				continue
			}
			values[keyword] = v
		}
		out[domain] = values
	}
	return out
}
