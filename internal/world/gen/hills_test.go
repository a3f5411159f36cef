package gen

import (
	"testing"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
)

func TestNoiseDeterministic(t *testing.T) {
	a, b := newNoise(12345), newNoise(12345)
	for i := 0; i < 100; i++ {
		x, y := float64(i)*0.1, float64(i)*0.2
		if a.at(x, y) != b.at(x, y) {
			t.Fatalf("noise not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	n := newNoise(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		if v := n.octaves(x, y, 4, 0.5); v < -1 || v > 1 {
			t.Fatalf("octaves(%f, %f) = %f, out of [-1,1]", x, y, v)
		}
	}
}

func TestHillsColumn(t *testing.T) {
	g := NewHillsGenerator(7)
	c := g.Generate(1, -2)

	for _, xz := range [][2]int{{0, 0}, {5, 11}, {15, 15}} {
		x, z := xz[0], xz[1]
		h := g.HeightAt(16+x, -32+z)
		if got := c.GetBlock(x, h, z); got != gamedata.BlockGrass<<4 {
			t.Errorf("(%d,%d,%d) = %d, want grass", x, h, z, got)
		}
		if got := c.GetBlock(x, h+1, z); got != 0 {
			t.Errorf("(%d,%d,%d) = %d, want air", x, h+1, z, got)
		}
		if got := c.GetBlock(x, h-1, z); got != gamedata.BlockDirt<<4 {
			t.Errorf("(%d,%d,%d) = %d, want dirt", x, h-1, z, got)
		}
		if got := c.GetBlock(x, 0, z); got != gamedata.BlockBedrock<<4 {
			t.Errorf("(%d,0,%d) = %d, want bedrock", x, z, got)
		}
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range []string{"", "flat", "hills"} {
		if _, ok := New(name, 1); !ok {
			t.Errorf("New(%q) not found", name)
		}
	}
	if _, ok := New("amplified", 1); ok {
		t.Error("New(amplified) should fail")
	}
}
