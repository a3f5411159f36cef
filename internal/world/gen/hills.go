package gen

import "github.com/go-theft-craft/treefeller/internal/gamedata"

const (
	hillsBase      = 64
	hillsAmplitude = 12
	dirtDepth      = 3
)

// HillsGenerator produces rolling grassland: bedrock, stone, a few layers of
// dirt and a grass surface at a noise-driven height.
type HillsGenerator struct {
	terrain *noise
	detail  *noise
}

// NewHillsGenerator creates a HillsGenerator from a seed.
func NewHillsGenerator(seed int64) *HillsGenerator {
	return &HillsGenerator{
		terrain: newNoise(seed),
		detail:  newNoise(seed + 1),
	}
}

func (g *HillsGenerator) Generate(chunkX, chunkZ int) *ChunkData {
	c := &ChunkData{}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			h := g.HeightAt(chunkX*16+x, chunkZ*16+z)
			c.SetBlock(x, 0, z, gamedata.BlockBedrock<<4)
			for y := 1; y <= h; y++ {
				var s uint16
				switch {
				case y == h:
					s = gamedata.BlockGrass << 4
				case y > h-1-dirtDepth:
					s = gamedata.BlockDirt << 4
				default:
					s = gamedata.BlockStone << 4
				}
				c.SetBlock(x, y, z, s)
			}
		}
	}
	return c
}

// HeightAt returns the y of the grass block in the column.
func (g *HillsGenerator) HeightAt(blockX, blockZ int) int {
	base := g.terrain.octaves(float64(blockX)/128, float64(blockZ)/128, 4, 0.5)
	detail := g.detail.octaves(float64(blockX)/32, float64(blockZ)/32, 2, 0.5)
	h := int(hillsBase + base*hillsAmplitude + detail*3)
	return max(dirtDepth+2, min(h, WorldHeight-32))
}

// New returns the generator for a terrain name: "flat" or "hills".
func New(terrain string, seed int64) (Generator, bool) {
	switch terrain {
	case "", "flat":
		return NewFlatGenerator(seed), true
	case "hills":
		return NewHillsGenerator(seed), true
	default:
		return nil, false
	}
}
