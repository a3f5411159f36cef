package world

import (
	"math/rand"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
)

// Slot is a stack of dropped items.
type Slot struct {
	BlockID    int16
	ItemCount  int8
	ItemDamage int16
}

// blockDrops returns the item slots that should be dropped when s is broken.
// Blocks dropping themselves keep their wood variant.
func blockDrops(s gamedata.State, rng *rand.Rand) []Slot {
	block := s.Block
	if len(block.Drops) == 0 {
		return nil
	}

	var drops []Slot
	for _, d := range block.Drops {
		if d.ID <= 0 {
			continue
		}
		minC, maxC := d.MinCount, d.MaxCount
		// Most blocks don't specify minCount/maxCount in the data; default to 1.
		if minC == 0 && maxC == 0 {
			minC = 1
			maxC = 1
		}
		count := minC
		if maxC > minC {
			count = minC + rng.Intn(maxC-minC+1)
		}
		if count <= 0 {
			continue
		}
		damage := d.Metadata
		if d.ID == block.ID && len(block.Variations) > 0 {
			damage = s.Meta() & 3
		}
		drops = append(drops, Slot{
			BlockID:    int16(d.ID),
			ItemCount:  int8(count),
			ItemDamage: int16(damage),
		})
	}
	return drops
}
