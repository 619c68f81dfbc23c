// internal/beanid/parser_test.go
package beanid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		expectErr     bool
		expectDomain  string
		expectProps   []Property
		expectPattern bool
	}{
		{
			name:         "single property",
			raw:          "domain:name=B",
			expectDomain: "domain",
			expectProps:  []Property{{Key: "name", Value: "B"}},
		},
		{
			name:         "properties keep written order",
			raw:          "app:type=Cache,name=users",
			expectDomain: "app",
			expectProps:  []Property{{Key: "type", Value: "Cache"}, {Key: "name", Value: "users"}},
		},
		{
			name:         "empty domain",
			raw:          ":type=Memory",
			expectDomain: "",
			expectProps:  []Property{{Key: "type", Value: "Memory"}},
		},
		{
			name:         "quoted value with separators",
			raw:          `app:name="a,b=c:d",type=x`,
			expectDomain: "app",
			expectProps:  []Property{{Key: "name", Value: "a,b=c:d"}, {Key: "type", Value: "x"}},
		},
		{
			name:         "quoted value with escapes",
			raw:          `app:name="say \"hi\"\n"`,
			expectDomain: "app",
			expectProps:  []Property{{Key: "name", Value: "say \"hi\"\n"}},
		},
		{
			name:          "property pattern",
			raw:           "app:type=Cache,*",
			expectDomain:  "app",
			expectProps:   []Property{{Key: "type", Value: "Cache"}},
			expectPattern: true,
		},
		{
			name:          "bare wildcard property list",
			raw:           "app:*",
			expectDomain:  "app",
			expectPattern: true,
		},
		{
			name:          "domain pattern",
			raw:           "ap?.*:type=Cache",
			expectDomain:  "ap?.*",
			expectProps:   []Property{{Key: "type", Value: "Cache"}},
			expectPattern: true,
		},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - no separator", raw: "domain", expectErr: true},
		{name: "error - no properties", raw: "domain:", expectErr: true},
		{name: "error - missing equals", raw: "domain:name", expectErr: true},
		{name: "error - empty value", raw: "domain:name=", expectErr: true},
		{name: "error - duplicate key", raw: "domain:a=1,a=2", expectErr: true},
		{name: "error - trailing comma", raw: "domain:a=1,", expectErr: true},
		{name: "error - wildcard not last", raw: "domain:*,a=1", expectErr: true},
		{name: "error - unquoted wildcard value", raw: "domain:a=x*", expectErr: true},
		{name: "error - unterminated quote", raw: `domain:a="x`, expectErr: true},
		{name: "error - bad escape", raw: `domain:a="\x"`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectDomain, n.Domain())
			assert.Equal(t, len(tc.expectProps), len(n.Properties()))
			for i, p := range tc.expectProps {
				assert.Equal(t, p, n.Properties()[i])
			}
			assert.Equal(t, tc.expectPattern, n.IsPattern())
		})
	}
}

func TestNew(t *testing.T) {
	n, err := New("app", Property{Key: "type", Value: "Cache"})
	require.NoError(t, err)
	assert.Equal(t, "app:type=Cache", n.String())

	_, err = New("app")
	require.Error(t, err, "a name needs at least one property")

	_, err = New("app", Property{Key: "bad key", Value: "x"})
	require.Error(t, err)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}
