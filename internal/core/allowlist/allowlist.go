// Package allowlist holds the fixed set of trusted domains every outbound
// search query is restricted to. The list is finalized during process
// initialization and never mutated afterward, so reads need no locking.
// It constrains only the search-engine query, not arbitrary outbound
// connections
package allowlist

import "strings"

// defaultSites covers known-trustworthy documentation and package-registry
// domains, used when no configured list is provided
var defaultSites = []string{
	"go.dev",
	"pkg.go.dev",
	"github.com",
	"stackoverflow.com",
	"developer.mozilla.org",
	"docs.python.org",
	"npmjs.com",
	"pypi.org",
	"crates.io",
	"docs.rs",
}

// List is an immutable ordered set of trusted domains
type List struct {
	sites []string
}

// Default returns the built-in list
func Default() *List {
	return &List{sites: append([]string(nil), defaultSites...)}
}

// From builds a List from configured domains, falling back to the default
// list when nothing usable is supplied
func From(domains []string) *List {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return Default()
	}
	return &List{sites: out}
}

// Sites returns a copy of the domain list in order
func (l *List) Sites() []string {
	return append([]string(nil), l.sites...)
}

// Len returns the number of domains
func (l *List) Len() int { return len(l.sites) }

// Restrict prepends the disjunctive site clause to a sanitized query.
// The search backend is never queried without this restriction
func (l *List) Restrict(query string) string {
	var b strings.Builder
	b.WriteString("site:(")
	for i, s := range l.sites {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString(s)
	}
	b.WriteString(") ")
	b.WriteString(query)
	return b.String()
}
