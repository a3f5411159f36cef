package gen

import "github.com/go-theft-craft/treefeller/internal/gamedata"

// BlockSetter is a world trees can be planted into, in absolute coordinates.
type BlockSetter interface {
	GetBlock(x, y, z int) int32
	SetBlock(x, y, z int, stateID int32)
}

// Species selects the shape and wood of a planted tree.
type Species int

const (
	Oak Species = iota
	Birch
	Spruce
	Acacia
	DarkOak
	numSpecies
)

func (s Species) String() string {
	switch s {
	case Oak:
		return "oak"
	case Birch:
		return "birch"
	case Spruce:
		return "spruce"
	case Acacia:
		return "acacia"
	case DarkOak:
		return "dark_oak"
	default:
		return "unknown"
	}
}

func (s Species) logState() int32 {
	switch s {
	case Spruce:
		return gamedata.StateID(gamedata.BlockLog, gamedata.WoodSpruce)
	case Birch:
		return gamedata.StateID(gamedata.BlockLog, gamedata.WoodBirch)
	case Acacia:
		return gamedata.StateID(gamedata.BlockLog2, gamedata.WoodAcacia)
	case DarkOak:
		return gamedata.StateID(gamedata.BlockLog2, gamedata.WoodDarkOak)
	default:
		return gamedata.StateID(gamedata.BlockLog, gamedata.WoodOak)
	}
}

func (s Species) leavesState() int32 {
	switch s {
	case Spruce:
		return gamedata.StateID(gamedata.BlockLeaves, gamedata.WoodSpruce)
	case Birch:
		return gamedata.StateID(gamedata.BlockLeaves, gamedata.WoodBirch)
	case Acacia:
		return gamedata.StateID(gamedata.BlockLeaves2, gamedata.WoodAcacia)
	case DarkOak:
		return gamedata.StateID(gamedata.BlockLeaves2, gamedata.WoodDarkOak)
	default:
		return gamedata.StateID(gamedata.BlockLeaves, gamedata.WoodOak)
	}
}

// Tree describes a planted tree by the position of its lowest trunk block.
type Tree struct {
	X, Y, Z int
	Species Species
	Height  int
}

// treeRNG is a simple deterministic LCG so plantings are stable across runs.
type treeRNG struct {
	state int64
}

func newTreeRNG(seed int64) *treeRNG {
	return &treeRNG{state: seed ^ 0x5DEECE66D}
}

func (r *treeRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

func (r *treeRNG) nextN(n int) int {
	v := int(r.next()>>33) % n
	if v < 0 {
		v = -v
	}
	return v
}

// Planter places trees deterministically from a seed.
type Planter struct {
	rng *treeRNG
}

// NewPlanter creates a Planter from a seed.
func NewPlanter(seed int64) *Planter {
	return &Planter{rng: newTreeRNG(seed)}
}

// treeSpacing keeps canopies of neighboring trees from touching.
const treeSpacing = 9

// Plant places up to n trees of mixed species on the terrain of g, on a grid
// within radius blocks of the origin. It returns the trees that were placed.
func (p *Planter) Plant(w BlockSetter, g Generator, n, radius int) []Tree {
	var trees []Tree
	for gx := -radius; gx <= radius && len(trees) < n; gx += treeSpacing {
		for gz := -radius; gz <= radius && len(trees) < n; gz += treeSpacing {
			sp := Species(p.rng.nextN(int(numSpecies)))
			y := g.HeightAt(gx, gz) + 1
			if h := p.Place(w, sp, gx, y, gz); h > 0 {
				trees = append(trees, Tree{X: gx, Y: y, Z: gz, Species: sp, Height: h})
			}
		}
	}
	return trees
}

// Place places a single tree with its lowest trunk block at (x, baseY, z)
// and returns the trunk height, or 0 if the tree does not fit.
func (p *Planter) Place(w BlockSetter, sp Species, x, baseY, z int) int {
	switch sp {
	case Birch:
		return p.placeRound(w, sp, x, baseY, z, 5+p.rng.nextN(2))
	case Spruce:
		return p.placeSpruce(w, x, baseY, z)
	case Acacia:
		return p.placeAcacia(w, x, baseY, z)
	case DarkOak:
		return p.placeDarkOak(w, x, baseY, z)
	default:
		return p.placeRound(w, sp, x, baseY, z, 4+p.rng.nextN(3))
	}
}

// placeRound places an oak-shaped tree (trunk + round leaf canopy).
func (p *Planter) placeRound(w BlockSetter, sp Species, x, baseY, z, trunkHeight int) int {
	if baseY+trunkHeight+2 >= WorldHeight {
		return 0
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		w.SetBlock(x, y, z, sp.logState())
	}

	leafBase := baseY + trunkHeight - 2
	for dy := 0; dy < 4; dy++ {
		y := leafBase + dy
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				// Skip corners for round shape on wider layers.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && p.rng.nextN(2) == 0 {
					continue
				}
				setLeaves(w, x+dx, y, z+dz, sp)
			}
		}
	}
	return trunkHeight
}

// placeSpruce places a spruce tree (conical shape).
func (p *Planter) placeSpruce(w BlockSetter, x, baseY, z int) int {
	trunkHeight := 6 + p.rng.nextN(4) // 6-9

	if baseY+trunkHeight+1 >= WorldHeight {
		return 0
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		w.SetBlock(x, y, z, Spruce.logState())
	}

	// Conical leaves: widest at bottom, narrowing to top.
	for dy := 1; dy <= trunkHeight; dy++ {
		y := baseY + dy
		radius := (trunkHeight - dy) / 2
		if radius > 3 {
			radius = 3
		}
		if radius <= 0 && dy < trunkHeight {
			continue
		}
		// Only place every other row for the wider sections.
		if radius >= 2 && dy%2 == 0 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				setLeaves(w, x+dx, y, z+dz, Spruce)
			}
		}
	}
	setLeaves(w, x, baseY+trunkHeight, z, Spruce)
	return trunkHeight
}

// placeAcacia places a trunk whose top leans diagonally, topped by a flat canopy.
func (p *Planter) placeAcacia(w BlockSetter, x, baseY, z int) int {
	trunkHeight := 5 + p.rng.nextN(2)
	if baseY+trunkHeight+2 >= WorldHeight {
		return 0
	}

	dx, dz := 1, 1
	if p.rng.nextN(2) == 0 {
		dx = -1
	}
	if p.rng.nextN(2) == 0 {
		dz = -1
	}

	tx, tz := x, z
	for i := 0; i < trunkHeight; i++ {
		if i >= trunkHeight-2 {
			tx += dx
			tz += dz
		}
		w.SetBlock(tx, baseY+i, tz, Acacia.logState())
	}

	top := baseY + trunkHeight
	for lx := -2; lx <= 2; lx++ {
		for lz := -2; lz <= 2; lz++ {
			if abs(lx) == 2 && abs(lz) == 2 {
				continue
			}
			setLeaves(w, tx+lx, top-1, tz+lz, Acacia)
			if abs(lx) <= 1 && abs(lz) <= 1 {
				setLeaves(w, tx+lx, top, tz+lz, Acacia)
			}
		}
	}
	return trunkHeight
}

// placeDarkOak places a 2×2 trunk with a wide, flat canopy.
func (p *Planter) placeDarkOak(w BlockSetter, x, baseY, z int) int {
	trunkHeight := 6 + p.rng.nextN(3)
	if baseY+trunkHeight+2 >= WorldHeight {
		return 0
	}

	for y := baseY; y < baseY+trunkHeight; y++ {
		for _, o := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
			w.SetBlock(x+o[0], y, z+o[1], DarkOak.logState())
		}
	}

	top := baseY + trunkHeight
	for dy := -1; dy <= 1; dy++ {
		radius := 3 - abs(dy)
		for lx := -radius; lx <= radius+1; lx++ {
			for lz := -radius; lz <= radius+1; lz++ {
				setLeaves(w, x+lx, top+dy, z+lz, DarkOak)
			}
		}
	}
	return trunkHeight
}

// setLeaves fills air only, so trunks and neighboring trees are never replaced.
func setLeaves(w BlockSetter, x, y, z int, sp Species) {
	if y < 0 || y >= WorldHeight {
		return
	}
	if w.GetBlock(x, y, z) == 0 {
		w.SetBlock(x, y, z, sp.leavesState())
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
