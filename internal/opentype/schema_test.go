package opentype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestSchema(t *testing.T) {
	ty := cty.Object(map[string]cty.Type{
		"name": cty.String,
		"pair": cty.Tuple([]cty.Type{cty.Number, cty.Bool}),
	})

	s := Schema(ty)
	assert.Equal(t, false, s["additionalProperties"])

	props := s["properties"].(map[string]any)
	assert.Contains(t, props, "name")

	pair := props["pair"].(map[string]any)
	assert.Equal(t, 2, pair["minItems"])
	assert.Len(t, pair["prefixItems"], 2)
	assert.Equal(t, false, pair["items"])

	assert.Empty(t, Schema(cty.DynamicPseudoType))
	assert.Contains(t, Schema(cty.Map(cty.String)), "additionalProperties")
}
