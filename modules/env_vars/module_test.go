package env_vars

import (
	"context"
	"testing"

	"github.com/specialistvlad/beanbridge/internal/bridge"
	"github.com/specialistvlad/beanbridge/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_ThroughShadow(t *testing.T) {
	// --- Arrange ---
	t.Setenv("BEANBRIDGE_TEST_ALPHA", "1")
	t.Setenv("BEANBRIDGE_TEST_BETA", "two")
	t.Setenv("UNRELATED_BEANBRIDGE_VAR", "x")

	ctx := context.Background()
	secondary := registry.New("platform")
	coord := bridge.New(registry.New("app"), bridge.WithSecondary(secondary))
	name := Name.WithDomain("app")

	// --- Act ---
	err := (&Module{Prefix: "BEANBRIDGE_TEST_"}).Register(ctx, coord)

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, coord.IsShadowed(name))

	vars, err := secondary.GetAttribute(ctx, name, "Variables")
	require.NoError(t, err)
	assert.JSONEq(t, `{"BEANBRIDGE_TEST_ALPHA":"1","BEANBRIDGE_TEST_BETA":"two"}`, vars.(string))

	names, err := secondary.GetAttribute(ctx, name, "Names")
	require.NoError(t, err)
	assert.JSONEq(t, `["BEANBRIDGE_TEST_ALPHA","BEANBRIDGE_TEST_BETA"]`, names.(string))

	value, err := secondary.Invoke(ctx, name, "Lookup", []any{"BEANBRIDGE_TEST_BETA"}, []string{"string"})
	require.NoError(t, err)
	assert.Equal(t, "two", value)

	hidden, err := secondary.Invoke(ctx, name, "Lookup", []any{"UNRELATED_BEANBRIDGE_VAR"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", hidden)
}

func TestEnvironment_DescribesMembers(t *testing.T) {
	ctx := context.Background()
	reg := registry.New("app")
	_, err := reg.Register(ctx, &Environment{}, Name)
	require.NoError(t, err)

	info, err := reg.Info(ctx, Name.WithDomain("app"))
	require.NoError(t, err)

	attr, ok := info.Attribute("Variables")
	require.True(t, ok)
	assert.Equal(t, "Variables whose name starts with Prefix", attr.Description)
	assert.False(t, attr.Writable)
	assert.True(t, info.HasOperation("Lookup"))
}
