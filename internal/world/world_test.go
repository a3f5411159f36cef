package world

import (
	"testing"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/world/gen"
)

func newFlatWorld() *World {
	return NewWorld(gen.NewFlatGenerator(0), gamedata.Vanilla())
}

type recorder struct {
	drops  map[BlockPos][]Slot
	sounds []BlockPos
}

func (r *recorder) BlockDropped(pos BlockPos, _ gamedata.State, drops []Slot) {
	if r.drops == nil {
		r.drops = make(map[BlockPos][]Slot)
	}
	r.drops[pos] = drops
}

func (r *recorder) SoundPlayed(pos BlockPos, _ gamedata.State) {
	r.sounds = append(r.sounds, pos)
}

func TestWorldBaseStateFlatGenerator(t *testing.T) {
	w := newFlatWorld()

	// Flat generator: bedrock at y=0, stone at y=1-2, dirt at y=3, grass at y=4.
	if got := w.GetBlock(0, 0, 0); got != gamedata.BlockBedrock<<4 {
		t.Errorf("GetBlock(0,0,0) = %d, want %d (bedrock)", got, gamedata.BlockBedrock<<4)
	}
	if got := w.GetBlock(0, 1, 0); got != gamedata.BlockStone<<4 {
		t.Errorf("GetBlock(0,1,0) = %d, want %d (stone)", got, gamedata.BlockStone<<4)
	}
	if got := w.GetBlock(0, 4, 0); got != gamedata.BlockGrass<<4 {
		t.Errorf("GetBlock(0,4,0) = %d, want %d (grass)", got, gamedata.BlockGrass<<4)
	}
	if got := w.GetBlock(5, 64, 10); got != 0 {
		t.Errorf("GetBlock(5,64,10) = %d, want 0 (air)", got)
	}
	if got := w.GetBlock(0, -3, 0); got != 0 {
		t.Errorf("GetBlock(0,-3,0) = %d, want 0 (out of range)", got)
	}
}

func TestWorldSetBlock(t *testing.T) {
	w := newFlatWorld()

	oak := gamedata.StateID(gamedata.BlockLog, gamedata.WoodOak)
	w.SetBlock(3, 10, 5, oak)
	if got := w.GetBlock(3, 10, 5); got != oak {
		t.Errorf("GetBlock(3,10,5) = %d, want %d", got, oak)
	}

	w.SetBlock(0, 4, 0, 0)
	if got := w.GetBlock(0, 4, 0); got != 0 {
		t.Errorf("GetBlock(0,4,0) after break = %d, want 0", got)
	}

	// Restoring the base state drops the override.
	w.SetBlock(0, 4, 0, gamedata.BlockGrass<<4)
	if got := w.GetBlock(0, 4, 0); got != gamedata.BlockGrass<<4 {
		t.Errorf("GetBlock(0,4,0) after restore = %d, want %d", got, gamedata.BlockGrass<<4)
	}
}

func TestWorldSetBlockRemovesRedundantOverride(t *testing.T) {
	w := newFlatWorld()

	w.SetAir(BlockPos{0, 10, 0})

	n := 0
	w.ForEachOverride(func(BlockPos, int32) { n++ })
	if n != 0 {
		t.Errorf("setting air at y=10 created %d overrides, want 0", n)
	}
}

func TestWorldSpawnHeight(t *testing.T) {
	w := newFlatWorld()
	if got := w.SpawnHeight(); got != 5 {
		t.Errorf("SpawnHeight() = %d, want 5", got)
	}
}

func TestWorldStateAt(t *testing.T) {
	w := newFlatWorld()
	pos := BlockPos{1, 5, 1}
	w.SetBlock(pos.X, pos.Y, pos.Z, gamedata.StateID(gamedata.BlockLog2, gamedata.WoodDarkOak))

	s := w.StateAt(pos)
	if s.Block.Name != "log2" {
		t.Errorf("StateAt name = %q, want log2", s.Block.Name)
	}
	if s.Meta() != gamedata.WoodDarkOak {
		t.Errorf("StateAt meta = %d, want %d", s.Meta(), gamedata.WoodDarkOak)
	}
	if !w.StateAt(pos.Up()).IsAir() {
		t.Error("block above log should be air")
	}
}

func TestWorldBreakBlockDropsVariant(t *testing.T) {
	w := newFlatWorld()
	rec := &recorder{}
	w.SetListener(rec)

	pos := BlockPos{2, 5, 2}
	w.SetBlock(pos.X, pos.Y, pos.Z, gamedata.StateID(gamedata.BlockLog, gamedata.WoodBirch))

	s := w.BreakBlock(pos)
	if s.Block.ID != gamedata.BlockLog {
		t.Fatalf("BreakBlock returned block %d, want %d", s.Block.ID, gamedata.BlockLog)
	}
	if !w.StateAt(pos).IsAir() {
		t.Error("broken block should be air")
	}

	drops := rec.drops[pos]
	if len(drops) != 1 {
		t.Fatalf("got %d drop slots, want 1", len(drops))
	}
	if drops[0].BlockID != gamedata.BlockLog || drops[0].ItemDamage != gamedata.WoodBirch || drops[0].ItemCount != 1 {
		t.Errorf("drop = %+v, want one birch log", drops[0])
	}
}

func TestWorldBreakAirIsNoop(t *testing.T) {
	w := newFlatWorld()
	rec := &recorder{}
	w.SetListener(rec)

	if s := w.BreakBlock(BlockPos{0, 50, 0}); !s.IsAir() {
		t.Errorf("BreakBlock on air returned %s", s)
	}
	if len(rec.drops) != 0 {
		t.Errorf("air dropped %v", rec.drops)
	}
}

func TestWorldPlayBreakSound(t *testing.T) {
	w := newFlatWorld()
	rec := &recorder{}
	w.SetListener(rec)

	w.PlayBreakSound(BlockPos{1, 2, 3}, w.StateAt(BlockPos{1, 2, 3}))
	if len(rec.sounds) != 1 || rec.sounds[0] != (BlockPos{1, 2, 3}) {
		t.Errorf("sounds = %v, want one at (1,2,3)", rec.sounds)
	}

	w.SetListener(nil)
	w.PlayBreakSound(BlockPos{1, 2, 3}, w.StateAt(BlockPos{1, 2, 3}))
	if len(rec.sounds) != 1 {
		t.Error("sound delivered after listener removed")
	}
}

func TestLeafDropsAreSeeded(t *testing.T) {
	leaves := gamedata.Resolve(gamedata.Vanilla(), gamedata.StateID(gamedata.BlockLeaves, gamedata.WoodOak))

	a := newFlatWorld()
	b := newFlatWorld()
	a.SetDropSeed(7)
	b.SetDropSeed(7)
	for i := 0; i < 20; i++ {
		ra := blockDrops(leaves, a.rng)
		rb := blockDrops(leaves, b.rng)
		if len(ra) != len(rb) {
			t.Fatalf("roll %d: drops differ %v vs %v", i, ra, rb)
		}
		for _, d := range ra {
			if d.BlockID != gamedata.BlockSapling {
				t.Errorf("leaves dropped block %d, want sapling", d.BlockID)
			}
		}
	}
}
