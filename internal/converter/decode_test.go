package converter

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/beanbridge/internal/opentype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type endpoint struct {
	Host    string            `cty:"host"`
	Port    int               `cty:"port"`
	Tags    []string          `cty:"tags"`
	Meta    map[string]string `cty:"meta"`
	Timeout time.Duration     `cty:"timeout"`
	Extra   any               `cty:"extra"`
	Backup  *string           `cty:"backup"`
}

func TestStructuredRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New()
	backup := "standby"
	want := endpoint{
		Host:    "db.local",
		Port:    5432,
		Tags:    []string{"primary", "eu"},
		Meta:    map[string]string{"owner": "ops"},
		Timeout: 3 * time.Second,
		Extra:   "free-form",
		Backup:  &backup,
	}

	ty, err := opentype.Implied(reflect.TypeOf(want))
	require.NoError(t, err)

	text := c.ToJSON(ctx, want, Options{})
	val, err := c.FromJSONOpenType(ty, text)
	require.NoError(t, err)

	var got endpoint
	require.NoError(t, c.Decode(val, &got))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONOpenType_TabularData(t *testing.T) {
	c := New()
	ty := opentype.MustParse("list(object({name=string, size=number}))")

	val, err := c.FromJSONOpenType(ty, `[{"name":"a","size":1},{"name":"b"}]`)
	require.NoError(t, err)
	assert.True(t, val.Type().Equals(cty.List(cty.Object(map[string]cty.Type{"name": cty.String, "size": cty.Number}))))

	var rows []struct {
		Name string `cty:"name"`
		Size *int   `cty:"size"`
	}
	require.NoError(t, c.Decode(val, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Name)
	require.NotNil(t, rows[0].Size)
	assert.Equal(t, 1, *rows[0].Size)
	assert.Nil(t, rows[1].Size)
}

func TestFromJSONOpenType_Dynamic(t *testing.T) {
	val, err := New().FromJSONOpenType(cty.DynamicPseudoType, `{"a":true}`)
	require.NoError(t, err)
	assert.True(t, val.RawEquals(cty.ObjectVal(map[string]cty.Value{"a": cty.True})))
}

func TestFromJSONOpenType_Null(t *testing.T) {
	ty := opentype.MustParse("object({a=string})")
	val, err := New().FromJSONOpenType(ty, "null")
	require.NoError(t, err)
	assert.True(t, val.IsNull())
}

func TestDecode(t *testing.T) {
	c := New()

	t.Run("into cty.Value", func(t *testing.T) {
		var got cty.Value
		require.NoError(t, c.Decode(cty.StringVal("x"), &got))
		assert.True(t, got.RawEquals(cty.StringVal("x")))
	})

	t.Run("number into string", func(t *testing.T) {
		var got string
		require.NoError(t, c.Decode(cty.NumberIntVal(5), &got))
		assert.Equal(t, "5", got)
	})

	t.Run("into any", func(t *testing.T) {
		var got any
		require.NoError(t, c.Decode(cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("a")}), &got))
		assert.Equal(t, []any{int64(1), "a"}, got)
	})

	t.Run("into array", func(t *testing.T) {
		var got [2]int
		require.NoError(t, c.Decode(cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}), &got))
		assert.Equal(t, [2]int{1, 2}, got)
	})

	t.Run("null resets target", func(t *testing.T) {
		got := map[string]int{"a": 1}
		require.NoError(t, c.Decode(cty.NullVal(cty.Map(cty.Number)), &got))
		assert.Nil(t, got)
	})

	t.Run("time", func(t *testing.T) {
		var got time.Time
		require.NoError(t, c.Decode(cty.StringVal("2024-05-06T07:08:09Z"), &got))
		assert.True(t, got.Equal(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)))
	})

	t.Run("non-pointer target", func(t *testing.T) {
		var got int
		assert.Error(t, c.Decode(cty.NumberIntVal(1), got))
	})

	t.Run("list into struct", func(t *testing.T) {
		var got endpoint
		assert.Error(t, c.Decode(cty.ListValEmpty(cty.String), &got))
	})

	t.Run("fractional into int", func(t *testing.T) {
		var got int
		assert.Error(t, c.Decode(cty.NumberFloatVal(1.5), &got))
	})

	t.Run("unknown value", func(t *testing.T) {
		var got string
		assert.Error(t, c.Decode(cty.UnknownVal(cty.String), &got))
	})
}
