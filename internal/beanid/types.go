// internal/beanid/types.go
package beanid

// Property is a single key=value pair of a Name.
type Property struct {
	Key   string
	Value string
}

// Name is the structured representation of a bean identity. The zero value
// is not a valid name; use Parse or New.
type Name struct {
	domain string
	props  []Property
	// propertyPattern is set when the property list is `*` or ends with `,*`.
	propertyPattern bool
}

// Domain returns the domain part of the name. It is empty for names that
// rely on the registry's default domain.
func (n Name) Domain() string {
	return n.domain
}

// Properties returns a copy of the key properties in their written order.
func (n Name) Properties() []Property {
	out := make([]Property, len(n.props))
	copy(out, n.props)
	return out
}

// Property returns the value of the given key.
func (n Name) Property(key string) (string, bool) {
	for _, p := range n.props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool {
	return n.domain == "" && len(n.props) == 0 && !n.propertyPattern
}

// IsDomainPattern reports whether the domain contains wildcards.
func (n Name) IsDomainPattern() bool {
	return hasWildcard(n.domain)
}

// IsPropertyPattern reports whether the property list accepts extra keys.
func (n Name) IsPropertyPattern() bool {
	return n.propertyPattern
}

// IsPattern reports whether n can only be used for matching.
func (n Name) IsPattern() bool {
	return n.IsDomainPattern() || n.propertyPattern
}

// WithDomain returns a copy of n with its domain replaced.
func (n Name) WithDomain(domain string) Name {
	return Name{
		domain:          domain,
		props:           n.Properties(),
		propertyPattern: n.propertyPattern,
	}
}
