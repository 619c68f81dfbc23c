// internal/beanid/name.go
package beanid

import (
	"sort"
	"strings"
)

// String serializes the Name with its properties in written order.
func (n Name) String() string {
	return n.format(n.props)
}

// Canonical serializes the Name with its properties sorted by key. It is
// the identity used for equality and as a registry key.
func (n Name) Canonical() string {
	sorted := n.Properties()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return n.format(sorted)
}

func (n Name) format(props []Property) string {
	if n.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.domain)
	sb.WriteByte(':')
	for i, p := range props {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(quoteIfNeeded(p.Value))
	}
	if n.propertyPattern {
		if len(props) > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('*')
	}
	return sb.String()
}

// Equal reports whether two names denote the same identity.
func (n Name) Equal(other Name) bool {
	return n.Canonical() == other.Canonical()
}

// Match reports whether the non-pattern name candidate is selected by n.
// A non-pattern n matches only itself.
func (n Name) Match(candidate Name) bool {
	if candidate.IsPattern() {
		return false
	}
	if !wildcardMatch(n.domain, candidate.domain) {
		return false
	}
	for _, p := range n.props {
		v, ok := candidate.Property(p.Key)
		if !ok || v != p.Value {
			return false
		}
	}
	return n.propertyPattern || len(n.props) == len(candidate.props)
}

func quoteIfNeeded(v string) string {
	if !strings.ContainsAny(v, ",=:\"*?\n\\") {
		return v
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"', '\\', '*', '?':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// wildcardMatch matches s against a glob pattern made of `*` and `?`.
func wildcardMatch(pattern, s string) bool {
	p, i := 0, 0
	star, mark := -1, 0
	for i < len(s) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == s[i]):
			p++
			i++
		case p < len(pattern) && pattern[p] == '*':
			star, mark = p, i
			p++
		case star >= 0:
			p = star + 1
			mark++
			i = mark
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
