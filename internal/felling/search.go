package felling

import (
	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/world"
)

// offset is a relative block position.
type offset struct{ dx, dy, dz int }

// horizontal are the 8 neighbors of a block in its own layer.
var horizontal = [8]offset{
	{-1, 0, -1}, {0, 0, -1}, {1, 0, -1},
	{-1, 0, 0}, {1, 0, 0},
	{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
}

// aroundOffsets are the horizontal neighbors one layer below, in and above a block.
var aroundOffsets = func() []offset {
	out := make([]offset, 0, 3*len(horizontal))
	for dy := -1; dy <= 1; dy++ {
		for _, o := range horizontal {
			out = append(out, offset{o.dx, dy, o.dz})
		}
	}
	return out
}()

type posSet map[world.BlockPos]struct{}

func (s posSet) has(p world.BlockPos) bool {
	_, ok := s[p]
	return ok
}

func (s posSet) add(p world.BlockPos) { s[p] = struct{}{} }

// tooFar reports whether p lies outside the search cone above start. The
// horizontal reach grows with height up to MaxRadius.
func tooFar(start, p world.BlockPos) bool {
	dy := p.Y - start.Y
	if dy < 0 || dy > MaxHeight {
		return true
	}
	reach := min(dy, MaxRadius) + 4
	return abs(p.X-start.X) >= reach || abs(p.Z-start.Z) >= reach
}

// floodFill collects blocks matching match within depth steps of center,
// breadth first. Every probed position is added to seen and never probed
// again, so one seen set can be shared by many fills.
func floodFill(w world.Accessor, center world.BlockPos, match func(gamedata.State) bool,
	depth int, offsets []offset, seen posSet) []world.BlockPos {
	var out []world.BlockPos
	frontier := []world.BlockPos{center}
	for d := 0; d < depth && len(frontier) > 0; d++ {
		var next []world.BlockPos
		for _, c := range frontier {
			for _, o := range offsets {
				p := c.Add(o.dx, o.dy, o.dz)
				if seen.has(p) {
					continue
				}
				seen.add(p)
				if !match(w.StateAt(p)) {
					continue
				}
				out = append(out, p)
				next = append(next, p)
			}
		}
		frontier = next
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
