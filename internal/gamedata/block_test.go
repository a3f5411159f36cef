package gamedata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func branchBlock() Block {
	return Block{
		ID:   4000,
		Name: "oak_branch",
		States: []StateProperty{
			{Name: "radius", Type: "int", NumValues: 8, Values: []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		},
	}
}

func TestStateWithEncodesLastPropertyFastest(t *testing.T) {
	b := Block{
		ID:   300,
		Name: "modded_log",
		States: []StateProperty{
			{Name: "variant", Type: "enum", NumValues: 2, Values: []string{"rubber", "maple"}},
			{Name: "axis", Type: "enum", NumValues: 3, Values: []string{"x", "y", "z"}},
		},
	}

	s, err := b.StateWith(map[string]string{"variant": "maple", "axis": "z"})
	require.NoError(t, err)
	require.Equal(t, 1*3+2, s.Meta())
	require.Equal(t, StateID(300, 5), s.ID)

	v, ok := s.Property("variant")
	require.True(t, ok)
	require.Equal(t, "maple", v)

	require.Equal(t, []Property{{Name: "variant", Value: "maple"}, {Name: "axis", Value: "z"}}, s.Properties())
}

func TestStateWithDefaultsToFirstValue(t *testing.T) {
	s, err := branchBlock().StateWith(nil)
	require.NoError(t, err)
	require.Equal(t, 0, s.Meta())

	v, _ := s.Property("radius")
	require.Equal(t, "1", v)
}

func TestStateWithErrors(t *testing.T) {
	_, err := branchBlock().StateWith(map[string]string{"thickness": "3"})
	require.ErrorIs(t, err, ErrUnknownProperty)

	_, err = branchBlock().StateWith(map[string]string{"radius": "12"})
	require.ErrorIs(t, err, ErrUnknownProperty)

	wide := Block{
		ID:   301,
		Name: "wide_branch",
		States: []StateProperty{
			{Name: "radius", Type: "int", NumValues: 8, Values: []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
			{Name: "waterlogged", Type: "bool", NumValues: 2},
			{Name: "stage", Type: "int", NumValues: 2},
		},
	}
	_, err = wide.StateWith(map[string]string{"radius": "8"})
	require.ErrorIs(t, err, ErrMetaOverflow)
}

func TestIntRange(t *testing.T) {
	p, ok := branchBlock().Property("radius")
	require.True(t, ok)

	lo, hi, err := p.IntRange()
	require.NoError(t, err)
	require.Equal(t, 1, lo)
	require.Equal(t, 8, hi)

	_, _, err = StateProperty{Name: "axis", Type: "enum", Values: []string{"x"}}.IntRange()
	require.Error(t, err)

	_, _, err = StateProperty{Name: "radius", Type: "int", Values: []string{"big"}}.IntRange()
	require.Error(t, err)
}

func TestStateMetaAndAir(t *testing.T) {
	reg := Vanilla()
	log, ok := reg.ByID(BlockLog)
	require.True(t, ok)

	s := NewState(log, WoodBirch|4)
	require.Equal(t, 6, s.Meta())
	require.False(t, s.IsAir())
	require.Nil(t, s.Properties())
	require.Equal(t, "log:6", s.String())

	air := Resolve(reg, 0)
	require.True(t, air.IsAir())
	require.Equal(t, "air", air.Block.Name)
}

func TestResolveUnknownBlock(t *testing.T) {
	s := Resolve(Vanilla(), StateID(999, 3))
	require.Equal(t, 999, s.Block.ID)
	require.Empty(t, s.Block.Name)
	require.Equal(t, "#999:3", s.String())
}
