package interp

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lume/internal/ir"
)

func TestSplitPlugin(t *testing.T) {
	p := emptyProgram()
	s := testState(0)

	result := pluginCall(p, s, 0, []ir.Expr{litStr("a,b,c"), litStr(",")})
	list, ok := result.(*List)
	require.True(t, ok)
	require.Len(t, list.Elems, 3)
	assert.Equal(t, "a", list.Elems[0].(*Str).S)
	assert.Equal(t, "b", list.Elems[1].(*Str).S)
	assert.Equal(t, "c", list.Elems[2].(*Str).S)
}

func TestSplitPluginNonStringYieldsNil(t *testing.T) {
	p := emptyProgram()
	s := testState(0)
	assert.Equal(t, Nil{}, pluginCall(p, s, 0, []ir.Expr{litInt(1), litStr(",")}))
	assert.Equal(t, Nil{}, pluginCall(p, s, 0, []ir.Expr{litStr("a"), litInt(1)}))
}

func TestUUIDPlugin(t *testing.T) {
	p := emptyProgram()
	s := testState(0)

	first := pluginCall(p, s, 1, nil)
	str, ok := first.(*Str)
	require.True(t, ok)
	_, err := uuid.Parse(str.S)
	assert.NoError(t, err, "plugin yields a parseable uuid")

	second := pluginCall(p, s, 1, nil)
	assert.False(t, Eq(first, second), "each call is a fresh uuid")
}
