package builtin

import (
	"testing"

	"github.com/akashmaji946/mini/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBindInstallsFunctions(t *testing.T) {
	env := object.NewEnvironment("<root>", nil)
	NewDemoRegistry().Bind(env)

	for _, name := range []string{"print", "len", "str", "map_apply", "slow_identity"} {
		v, ok := env.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, object.KindFunction, v.Kind, name)
		assert.NotNil(t, v.Func.Builtin, name)
	}
}

func TestLenAcrossKinds(t *testing.T) {
	env := object.NewEnvironment("<root>", nil)
	NewDemoRegistry().Bind(env)
	lenFn, _ := env.Lookup("len")

	v, err := lenFn.Func.Builtin.Fn([]*object.Value{object.List([]*object.Value{object.Number(1), object.Number(2)})})
	require.NoError(t, err)
	assert.Equal(t, float64(2), v.Number)

	v, err = lenFn.Func.Builtin.Fn([]*object.Value{object.String("abcd")})
	require.NoError(t, err)
	assert.Equal(t, float64(4), v.Number)
}

func TestMapApplyInvokesCallback(t *testing.T) {
	env := object.NewEnvironment("<root>", nil)
	NewDemoRegistry().Bind(env)
	mapApply, _ := env.Lookup("map_apply")

	double := &object.Value{Kind: object.KindFunction, Func: &object.Function{
		Builtin: &object.Builtin{Name: "double", Fn: func(args []*object.Value) (*object.Value, error) {
			return object.Number(args[0].Number * 2), nil
		}},
	}}

	list := object.List([]*object.Value{object.Number(1), object.Number(2), object.Number(3)})
	result, err := mapApply.Func.Builtin.Fn([]*object.Value{list, double})
	require.NoError(t, err)
	require.Equal(t, object.KindList, result.Kind)
	assert.Equal(t, []float64{2, 4, 6}, []float64{
		result.List.Elements[0].Number,
		result.List.Elements[1].Number,
		result.List.Elements[2].Number,
	})
}
