package world

import (
	"math/rand"
	"sync"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/world/gen"
)

// BlockPos represents a block position in the world.
type BlockPos struct {
	X, Y, Z int
}

// Up returns the position directly above p.
func (p BlockPos) Up() BlockPos { return BlockPos{p.X, p.Y + 1, p.Z} }

// Add returns p offset by (dx, dy, dz).
func (p BlockPos) Add(dx, dy, dz int) BlockPos {
	return BlockPos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Accessor is the view of a world that tree felling reads and mutates.
type Accessor interface {
	StateAt(pos BlockPos) gamedata.State
	SetAir(pos BlockPos)
	// SpawnDrops emits the items s would drop if broken naturally at pos.
	SpawnDrops(pos BlockPos, s gamedata.State)
	PlayBreakSound(pos BlockPos, s gamedata.State)
}

// Listener receives the side effects of block breaking.
type Listener interface {
	BlockDropped(pos BlockPos, s gamedata.State, drops []Slot)
	SoundPlayed(pos BlockPos, s gamedata.State)
}

// World tracks block state with a generator for base terrain and overrides for modifications.
type World struct {
	mu        sync.RWMutex
	blocks    map[BlockPos]int32
	generator gen.Generator
	chunks    map[gen.ChunkPos]*gen.ChunkData

	registry gamedata.BlockRegistry
	listener Listener
	rng      *rand.Rand
}

// NewWorld creates a new World with the given generator. States are resolved
// through registry.
func NewWorld(generator gen.Generator, registry gamedata.BlockRegistry) *World {
	return &World{
		blocks:    make(map[BlockPos]int32),
		generator: generator,
		chunks:    make(map[gen.ChunkPos]*gen.ChunkData),
		registry:  registry,
		rng:       rand.New(rand.NewSource(0)),
	}
}

// SetListener installs l to receive drop and sound events. nil disables events.
func (w *World) SetListener(l Listener) {
	w.mu.Lock()
	w.listener = l
	w.mu.Unlock()
}

// SetDropSeed reseeds the RNG used for drop counts.
func (w *World) SetDropSeed(seed int64) {
	w.mu.Lock()
	w.rng = rand.New(rand.NewSource(seed))
	w.mu.Unlock()
}

// GetOrGenerateChunk returns the ChunkData for the given chunk coordinates,
// generating and caching it if needed.
func (w *World) GetOrGenerateChunk(cx, cz int) *gen.ChunkData {
	pos := gen.ChunkPos{X: cx, Z: cz}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	c := w.generator.Generate(cx, cz)

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[pos]; ok {
		return existing
	}
	w.chunks[pos] = c
	return c
}

// GetBlock returns the block state ID at the given position.
// Checks overrides first, then falls back to the generated chunk.
func (w *World) GetBlock(x, y, z int) int32 {
	w.mu.RLock()
	s, ok := w.blocks[BlockPos{x, y, z}]
	w.mu.RUnlock()
	if ok {
		return s
	}
	if y < 0 || y >= gen.WorldHeight {
		return 0
	}
	c := w.GetOrGenerateChunk(x>>4, z>>4)
	return int32(c.GetBlock(x&0xF, y, z&0xF))
}

// SetBlock stores a block state override.
func (w *World) SetBlock(x, y, z int, stateID int32) {
	base := int32(0)
	if y >= 0 && y < gen.WorldHeight {
		// Ensure the chunk is generated so we know the base state.
		c := w.GetOrGenerateChunk(x>>4, z>>4)
		base = int32(c.GetBlock(x&0xF, y, z&0xF))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	bpos := BlockPos{x, y, z}
	if stateID == base {
		delete(w.blocks, bpos)
	} else {
		w.blocks[bpos] = stateID
	}
}

// ForEachOverride calls fn for every block override under a read lock.
func (w *World) ForEachOverride(fn func(pos BlockPos, stateID int32)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for pos, state := range w.blocks {
		fn(pos, state)
	}
}

// SpawnHeight returns the terrain height at spawn (0, 0) + 1.
func (w *World) SpawnHeight() int {
	return w.generator.HeightAt(0, 0) + 1
}

// StateAt resolves the block at pos through the registry.
func (w *World) StateAt(pos BlockPos) gamedata.State {
	return gamedata.Resolve(w.registry, w.GetBlock(pos.X, pos.Y, pos.Z))
}

// SetAir replaces the block at pos with air without side effects.
func (w *World) SetAir(pos BlockPos) {
	w.SetBlock(pos.X, pos.Y, pos.Z, 0)
}

// SpawnDrops rolls the drops of s and hands them to the listener.
func (w *World) SpawnDrops(pos BlockPos, s gamedata.State) {
	w.mu.Lock()
	drops := blockDrops(s, w.rng)
	l := w.listener
	w.mu.Unlock()

	if l != nil && len(drops) > 0 {
		l.BlockDropped(pos, s, drops)
	}
}

// PlayBreakSound notifies the listener that s broke at pos.
func (w *World) PlayBreakSound(pos BlockPos, s gamedata.State) {
	w.mu.RLock()
	l := w.listener
	w.mu.RUnlock()

	if l != nil {
		l.SoundPlayed(pos, s)
	}
}

// BreakBlock removes the block at pos and drops its items, like a player
// digging it by hand.
func (w *World) BreakBlock(pos BlockPos) gamedata.State {
	s := w.StateAt(pos)
	if s.IsAir() {
		return s
	}
	w.SetAir(pos)
	w.SpawnDrops(pos, s)
	return s
}
