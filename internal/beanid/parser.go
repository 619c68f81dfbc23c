// internal/beanid/parser.go
package beanid

import (
	"fmt"
	"regexp"
	"strings"
)

// keyRegex restricts property keys to characters that never need quoting.
var keyRegex = regexp.MustCompile(`^[^,=:*?"\s]+$`)

// domainRegex accepts any domain without the name separators; wildcards are
// allowed and turn the name into a pattern.
var domainRegex = regexp.MustCompile(`^[^,=:"\n]*$`)

// Parse creates a Name from its string representation.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("bean name cannot be empty")
	}

	idx := strings.IndexByte(raw, ':')
	if idx < 0 {
		return Name{}, fmt.Errorf("bean name %q has no domain separator ':'", raw)
	}

	domain := raw[:idx]
	if !domainRegex.MatchString(domain) {
		return Name{}, fmt.Errorf("invalid domain %q in bean name %q", domain, raw)
	}

	props, pattern, err := parseProperties(raw[idx+1:])
	if err != nil {
		return Name{}, fmt.Errorf("invalid bean name %q: %w", raw, err)
	}
	return build(domain, props, pattern)
}

// MustParse is like Parse but panics on error. It is meant for names that
// are fixed at compile time.
func MustParse(raw string) Name {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// New builds a non-pattern Name from a domain and its properties.
func New(domain string, props ...Property) (Name, error) {
	if !domainRegex.MatchString(domain) {
		return Name{}, fmt.Errorf("invalid domain %q", domain)
	}
	return build(domain, append([]Property(nil), props...), false)
}

func build(domain string, props []Property, pattern bool) (Name, error) {
	if len(props) == 0 && !pattern {
		return Name{}, fmt.Errorf("bean name needs at least one key property")
	}
	seen := make(map[string]struct{}, len(props))
	for _, p := range props {
		if !keyRegex.MatchString(p.Key) {
			return Name{}, fmt.Errorf("invalid property key %q", p.Key)
		}
		if _, dup := seen[p.Key]; dup {
			return Name{}, fmt.Errorf("duplicate property key %q", p.Key)
		}
		seen[p.Key] = struct{}{}
	}
	return Name{domain: domain, props: props, propertyPattern: pattern}, nil
}

// parseProperties splits `k=v,k2="quoted, value",*` into properties.
func parseProperties(s string) ([]Property, bool, error) {
	var (
		props   []Property
		pattern bool
	)
	if s == "" {
		return nil, false, fmt.Errorf("empty property list")
	}

	for i := 0; i < len(s); {
		if pattern {
			return nil, false, fmt.Errorf("wildcard '*' must be the last property")
		}
		if s[i] == '*' && (i+1 == len(s) || s[i+1] == ',') {
			pattern = true
			i++
			if i < len(s) {
				i++ // skip ','
				if i == len(s) {
					return nil, false, fmt.Errorf("trailing comma in property list")
				}
			}
			continue
		}

		eq := strings.IndexByte(s[i:], '=')
		if eq < 0 {
			return nil, false, fmt.Errorf("property %q has no '='", s[i:])
		}
		key := s[i : i+eq]
		i += eq + 1

		var (
			value string
			err   error
		)
		if i < len(s) && s[i] == '"' {
			value, i, err = readQuoted(s, i)
			if err != nil {
				return nil, false, err
			}
		} else {
			end := strings.IndexByte(s[i:], ',')
			if end < 0 {
				end = len(s) - i
			}
			value = s[i : i+end]
			i += end
			if value == "" {
				return nil, false, fmt.Errorf("property %q has an empty value", key)
			}
			if strings.ContainsAny(value, `=:"*?`) {
				return nil, false, fmt.Errorf("value %q of property %q must be quoted", value, key)
			}
		}
		props = append(props, Property{Key: key, Value: value})

		if i < len(s) {
			if s[i] != ',' {
				return nil, false, fmt.Errorf("unexpected %q after value of property %q", s[i], key)
			}
			i++
			if i == len(s) {
				return nil, false, fmt.Errorf("trailing comma in property list")
			}
		}
	}
	return props, pattern, nil
}

// readQuoted reads a quoted value starting at s[start] == '"' and returns the
// unescaped value together with the index just past the closing quote.
func readQuoted(s string, start int) (string, int, error) {
	var sb strings.Builder
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 == len(s) {
				return "", 0, fmt.Errorf("unterminated escape in quoted value")
			}
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case '"', '\\', '*', '?':
				sb.WriteByte(s[i])
			default:
				return "", 0, fmt.Errorf("invalid escape '\\%c' in quoted value", s[i])
			}
		case '"':
			return sb.String(), i + 1, nil
		default:
			sb.WriteByte(s[i])
		}
	}
	return "", 0, fmt.Errorf("unterminated quoted value")
}
