// internal/beanid/name_test.go
package beanid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_StringAndCanonical(t *testing.T) {
	n := MustParse("app:type=Cache,name=users")
	assert.Equal(t, "app:type=Cache,name=users", n.String())
	assert.Equal(t, "app:name=users,type=Cache", n.Canonical())
	assert.Equal(t, "", Name{}.String())
}

func TestName_RoundTrip(t *testing.T) {
	testIDs := []string{
		"domain:name=B",
		"app:type=Cache,name=users",
		`app:name="a,b=c",type=x`,
		`app:name="star\*"`,
		"app:type=Cache,*",
		"*:*",
	}

	for _, id := range testIDs {
		t.Run(id, func(t *testing.T) {
			n, err := Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, n.String())

			again, err := Parse(n.String())
			require.NoError(t, err)
			assert.True(t, n.Equal(again))
		})
	}
}

func TestName_Equal(t *testing.T) {
	a := MustParse("app:type=Cache,name=users")
	b := MustParse("app:name=users,type=Cache")
	c := MustParse("app:name=orders,type=Cache")

	assert.True(t, a.Equal(b), "property order must not matter")
	assert.False(t, a.Equal(c))
}

func TestName_WithDomain(t *testing.T) {
	n := MustParse(":type=Memory")
	completed := n.WithDomain("beanbridge")
	assert.Equal(t, "beanbridge:type=Memory", completed.String())
	assert.Equal(t, "", n.Domain(), "original must be unchanged")
}

func TestName_Match(t *testing.T) {
	candidate := MustParse("app:type=Cache,name=users")

	testCases := []struct {
		pattern string
		match   bool
	}{
		{"app:type=Cache,name=users", true},
		{"app:type=Cache,*", true},
		{"app:type=Cache", false},
		{"a*:*", true},
		{"?pp:name=users,*", true},
		{"other:*", false},
		{"*:type=Queue,*", false},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.match, MustParse(tc.pattern).Match(candidate))
		})
	}

	assert.False(t, candidate.Match(MustParse("app:*")), "patterns are never candidates")
}
