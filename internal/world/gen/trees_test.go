package gen

import (
	"testing"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
)

// mapWorld is a sparse BlockSetter backed by a map.
type mapWorld map[[3]int]int32

func (m mapWorld) GetBlock(x, y, z int) int32    { return m[[3]int{x, y, z}] }
func (m mapWorld) SetBlock(x, y, z int, s int32) { m[[3]int{x, y, z}] = s }

func (m mapWorld) count(pred func(int32) bool) int {
	n := 0
	for _, s := range m {
		if pred(s) {
			n++
		}
	}
	return n
}

func isLog(s int32) bool {
	id := s >> 4
	return id == gamedata.BlockLog || id == gamedata.BlockLog2
}

func isLeaves(s int32) bool {
	id := s >> 4
	return id == gamedata.BlockLeaves || id == gamedata.BlockLeaves2
}

func TestPlaceTrunkHeights(t *testing.T) {
	for sp := Oak; sp < numSpecies; sp++ {
		t.Run(sp.String(), func(t *testing.T) {
			w := mapWorld{}
			h := NewPlanter(1).Place(w, sp, 0, 5, 0)
			if h <= 0 {
				t.Fatalf("Place returned %d", h)
			}

			want := h
			if sp == DarkOak {
				want = 4 * h
			}
			if got := w.count(isLog); got != want {
				t.Errorf("placed %d logs, want %d", got, want)
			}
			if w.count(isLeaves) == 0 {
				t.Error("no leaves placed")
			}
			if got := w.GetBlock(0, 5, 0); got != sp.logState() {
				t.Errorf("base block = %d, want %d", got, sp.logState())
			}
		})
	}
}

func TestPlaceLeavesDoNotReplaceBlocks(t *testing.T) {
	w := mapWorld{}
	stone := int32(gamedata.BlockStone << 4)
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			w.SetBlock(dx, 9, dz, stone)
		}
	}

	NewPlanter(3).placeRound(w, Oak, 0, 5, 0, 4)

	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			if got := w.GetBlock(dx, 9, dz); got != stone {
				t.Fatalf("block at (%d,9,%d) replaced with %d", dx, dz, got)
			}
		}
	}
}

func TestPlaceTooHigh(t *testing.T) {
	w := mapWorld{}
	if h := NewPlanter(1).Place(w, Oak, 0, WorldHeight-3, 0); h != 0 {
		t.Errorf("Place near build limit returned %d, want 0", h)
	}
	if len(w) != 0 {
		t.Errorf("Place near build limit wrote %d blocks", len(w))
	}
}

func TestPlantDeterministic(t *testing.T) {
	g := NewFlatGenerator(0)
	a, b := mapWorld{}, mapWorld{}

	ta := NewPlanter(42).Plant(a, g, 6, 20)
	tb := NewPlanter(42).Plant(b, g, 6, 20)

	if len(ta) != 6 {
		t.Fatalf("planted %d trees, want 6", len(ta))
	}
	if len(ta) != len(tb) || len(a) != len(b) {
		t.Fatal("same seed produced different forests")
	}
	for i := range ta {
		if ta[i] != tb[i] {
			t.Errorf("tree %d: %+v vs %+v", i, ta[i], tb[i])
		}
		if ta[i].Y != g.HeightAt(ta[i].X, ta[i].Z)+1 {
			t.Errorf("tree %d planted at y=%d", i, ta[i].Y)
		}
		if !isLog(a.GetBlock(ta[i].X, ta[i].Y, ta[i].Z)) {
			t.Errorf("tree %d base is not a log", i)
		}
	}
}

func TestTreeRNGNonNegative(t *testing.T) {
	r := newTreeRNG(-99)
	for i := 0; i < 1000; i++ {
		if v := r.nextN(7); v < 0 || v >= 7 {
			t.Fatalf("nextN(7) = %d", v)
		}
	}
}

func TestFlatGeneratorLayers(t *testing.T) {
	c := NewFlatGenerator(0).Generate(0, 0)
	want := map[int]uint16{
		0: gamedata.BlockBedrock << 4,
		1: gamedata.BlockStone << 4,
		3: gamedata.BlockDirt << 4,
		4: gamedata.BlockGrass << 4,
		5: 0,
	}
	for y, s := range want {
		if got := c.GetBlock(7, y, 7); got != s {
			t.Errorf("y=%d: got %d, want %d", y, got, s)
		}
	}
}

func TestAirSectionsStayEmpty(t *testing.T) {
	c := NewFlatGenerator(0).Generate(0, 0)
	if c.Sections[0] == nil {
		t.Fatal("section 0 = nil, want terrain")
	}
	for i := 1; i < len(c.Sections); i++ {
		if c.Sections[i] != nil {
			t.Errorf("section %d allocated for air", i)
		}
	}
	c.SetBlock(0, 100, 0, 0)
	if c.Sections[100>>4] != nil {
		t.Error("setting air allocated a section")
	}
}
