package opentype

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type address struct {
	Street string `json:"street"`
	Zip    int    `cty:"zip"`
	City   string
	secret string
	Skip   string `json:"-"`
}

type person struct {
	Name    string            `json:"name,omitempty"`
	Tags    []string          `json:"tags"`
	Home    *address          `json:"home"`
	Labels  map[string]string `json:"labels"`
	Extra   any               `json:"extra"`
	Timeout time.Duration     `json:"timeout"`
	Born    time.Time         `json:"born"`
}

type node struct {
	Next *node
}

func TestImplied(t *testing.T) {
	addressType := cty.Object(map[string]cty.Type{
		"street": cty.String,
		"zip":    cty.Number,
		"City":   cty.String,
	})

	testCases := []struct {
		name     string
		goType   reflect.Type
		expected cty.Type
	}{
		{"int", reflect.TypeOf(0), cty.Number},
		{"uint8", reflect.TypeOf(uint8(0)), cty.Number},
		{"float", reflect.TypeOf(1.5), cty.Number},
		{"bool", reflect.TypeOf(true), cty.Bool},
		{"string pointer", reflect.TypeOf(new(string)), cty.String},
		{"bytes", reflect.TypeOf([]byte(nil)), cty.String},
		{"duration", reflect.TypeOf(time.Second), cty.String},
		{"slice", reflect.TypeOf([]int{}), cty.List(cty.Number)},
		{"array", reflect.TypeOf([2]bool{}), cty.List(cty.Bool)},
		{"map", reflect.TypeOf(map[string]float64{}), cty.Map(cty.Number)},
		{"interface", reflect.TypeOf((*any)(nil)).Elem(), cty.DynamicPseudoType},
		{"struct", reflect.TypeOf(address{}), addressType},
		{
			"nested struct",
			reflect.TypeOf(person{}),
			cty.Object(map[string]cty.Type{
				"name":    cty.String,
				"tags":    cty.List(cty.String),
				"home":    addressType,
				"labels":  cty.Map(cty.String),
				"extra":   cty.DynamicPseudoType,
				"timeout": cty.String,
				"born":    cty.String,
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ty, err := Implied(tc.goType)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equals(ty), "expected %s, got %s", tc.expected.GoString(), ty.GoString())
		})
	}
}

func TestImplied_Errors(t *testing.T) {
	_, err := Implied(reflect.TypeOf(map[int]string{}))
	require.Error(t, err)

	_, err = Implied(reflect.TypeOf(make(chan int)))
	require.Error(t, err)

	_, err = Implied(reflect.TypeOf(node{}))
	require.Error(t, err, "recursive types have no finite open type")
}
