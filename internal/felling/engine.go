// Package felling removes a whole tree when one of its trunk blocks is broken.
//
// A chop runs five phases: a bounded breadth-first walk up the trunk that
// collects logs and adjacent leaves, a short search for logs hidden in the
// canopy, a bounded fill of the leaf blob, removal capped at a block limit,
// and the tool damage derived from what was actually removed.
package felling

import (
	"log/slog"
	"slices"

	"github.com/go-theft-craft/treefeller/internal/compat"
	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/species"
	"github.com/go-theft-craft/treefeller/internal/world"
)

const (
	// MaxSteps is the queue budget of the trunk search. Finding the next
	// trunk block straight above refills it.
	MaxSteps = 128
	// MaxHeight is how far above the broken block the search reaches.
	MaxHeight = 128
	// MaxRadius caps the horizontal reach of the search cone.
	MaxRadius = 12
	// LooseTrunkDepth bounds the search for logs hidden in the canopy.
	LooseTrunkDepth = 2
	// CanopyDepth bounds the fill of the leaf blob.
	CanopyDepth = 3
)

const (
	methodTraversal = "traversal"
	methodSkipped   = "none"

	partTrunk  = "trunk"
	partCanopy = "canopy"
)

// Result describes one chop.
type Result struct {
	Method compat.ChopMethod

	// Trunk and Canopy list the removed blocks in removal order.
	Trunk  []world.BlockPos
	Canopy []world.BlockPos

	Steps     int  // queue entries taken by the trunk search
	Truncated bool // removal stopped at the block limit
	Cost      int
}

// Engine owns the tree kind caches a chop consults.
type Engine struct {
	log   *slog.Logger
	cls   *species.Classifier
	table *compat.Table
}

// New creates an Engine.
func New(cls *species.Classifier, table *compat.Table, log *slog.Logger) *Engine {
	return &Engine{log: log, cls: cls, table: table}
}

// Reload rebuilds the classifier from dict and the compat table from reg.
// It must not run concurrently with a chop.
func (e *Engine) Reload(dict species.Dictionary, reg compat.Registry) {
	e.cls.Reload(dict)
	e.table.Reload(reg)
}

// ChopTree fells the tree broken was part of and returns the tool damage.
// See Fell.
func (e *Engine) ChopTree(w world.Accessor, broken gamedata.State, start world.BlockPos, maxBlocks int, omitStart bool) int {
	return e.Fell(w, broken, start, maxBlocks, omitStart).Cost
}

// Fell removes the tree around start, where broken is the block that was
// broken there. At most maxBlocks blocks are removed. When omitStart is set
// the block at start is left alone, typically because the caller already
// broke it.
//
// Blocks known to the compat table are handled by it instead. Anything that
// is not a log costs nothing and changes nothing.
func (e *Engine) Fell(w world.Accessor, broken gamedata.State, start world.BlockPos, maxBlocks int, omitStart bool) Result {
	if m := e.table.Lookup(broken); m != compat.MethodNone {
		instrumentChop(m.String())
		return Result{Method: m, Cost: e.table.Chop(w, broken, start)}
	}
	if !e.cls.IsLog(broken) {
		instrumentChop(methodSkipped)
		return Result{}
	}
	instrumentChop(methodTraversal)

	c := newChop(w, e.cls, broken, start, maxBlocks)
	c.searchTrunk()
	c.recoverLooseTrunk()
	c.completeCanopy()
	res := c.remove(omitStart)
	res.Cost = cost(len(res.Trunk), len(res.Canopy))

	searchSteps.Observe(float64(res.Steps))
	instrumentRemoved(partTrunk, len(res.Trunk))
	instrumentRemoved(partCanopy, len(res.Canopy))
	if res.Truncated {
		truncatedTotal.Inc()
	}

	e.log.Debug("tree felled",
		"block", broken.String(),
		"pos", start,
		"trunk", len(res.Trunk),
		"canopy", len(res.Canopy),
		"steps", res.Steps,
		"truncated", res.Truncated,
		"cost", res.Cost)
	return res
}

// chop is the state of a single Fell call.
type chop struct {
	w         world.Accessor
	cls       *species.Classifier
	broken    gamedata.State
	start     world.BlockPos
	maxBlocks int

	queue   []world.BlockPos
	visited posSet
	found   posSet // positions already in trunk or canopy
	trunk   []world.BlockPos
	canopy  []world.BlockPos

	leaf    gamedata.State
	hasLeaf bool

	budget int
	steps  int
}

func newChop(w world.Accessor, cls *species.Classifier, broken gamedata.State, start world.BlockPos, maxBlocks int) *chop {
	c := &chop{
		w:         w,
		cls:       cls,
		broken:    broken,
		start:     start,
		maxBlocks: maxBlocks,
		queue:     []world.BlockPos{start},
		visited:   posSet{},
		found:     posSet{},
		budget:    MaxSteps,
	}
	c.found.add(start)
	return c
}

// searchTrunk walks the tree breadth first from the broken block. Positions
// are marked visited when taken from the queue.
func (c *chop) searchTrunk() {
	for len(c.queue) > 0 && c.budget > 0 && len(c.trunk) < c.maxBlocks {
		p := c.queue[0]
		c.queue = c.queue[1:]
		c.budget--
		c.steps++

		if c.visited.has(p) {
			continue
		}
		c.visited.add(p)

		if tooFar(c.start, p) {
			continue
		}
		if c.probeUp(p) {
			c.budget = MaxSteps
		}
		for _, o := range horizontal {
			c.probeSide(p.Add(o.dx, 0, o.dz))
		}
	}
}

// probeUp inspects the block above p and reports whether the trunk continues
// straight up.
func (c *chop) probeUp(p world.BlockPos) bool {
	up := p.Up()
	cat := c.cls.Classify(c.w.StateAt(up))

	switch cat.Kind {
	case species.Trunk:
		if !c.cls.IsSameLogSpecies(cat.State, c.broken) {
			return false
		}
		c.queue = append(c.queue, up)
		c.addTrunk(up)
		return true
	case species.Leaf:
		if c.acceptLeaf(cat.State) {
			c.addCanopy(up)
			c.queue = append(c.queue, up)
		} else {
			c.visited.add(up)
		}
	case species.Passable:
		c.visited.add(up)
	default:
		return false
	}

	// Branches may leave the trunk diagonally upward.
	for _, o := range horizontal {
		c.probeSide(up.Add(o.dx, 0, o.dz))
	}
	return false
}

// probeSide adds a neighboring log as a branch and a neighboring leaf to the
// canopy. Only branches are searched further, and finding one never refills
// the budget. Anything else is blocked.
func (c *chop) probeSide(n world.BlockPos) {
	if c.visited.has(n) {
		return
	}
	cat := c.cls.Classify(c.w.StateAt(n))
	switch {
	case cat.Kind == species.Trunk && c.cls.IsSameLogSpecies(cat.State, c.broken):
		c.queue = append(c.queue, n)
		c.addTrunk(n)
	case cat.Kind == species.Leaf && c.acceptLeaf(cat.State):
		c.addCanopy(n)
	default:
		c.visited.add(n)
	}
}

// acceptLeaf reports whether s belongs to the tracked leaf species, tracking
// it first if no leaf was seen yet.
func (c *chop) acceptLeaf(s gamedata.State) bool {
	if !c.hasLeaf {
		c.leaf = s
		c.hasLeaf = true
		return true
	}
	return c.cls.IsSameLeafSpecies(s, c.leaf)
}

func (c *chop) addTrunk(p world.BlockPos) {
	if c.found.has(p) {
		return
	}
	c.found.add(p)
	c.trunk = append(c.trunk, p)
}

func (c *chop) addCanopy(p world.BlockPos) {
	if c.found.has(p) {
		return
	}
	c.found.add(p)
	c.canopy = append(c.canopy, p)
}

// seenFound returns a fresh seen set holding everything already found.
func (c *chop) seenFound() posSet {
	seen := make(posSet, len(c.found))
	for p := range c.found {
		seen.add(p)
	}
	return seen
}

// recoverLooseTrunk finds logs of the broken species hidden in the canopy.
func (c *chop) recoverLooseTrunk() {
	if len(c.canopy) == 0 {
		return
	}
	isTrunk := func(s gamedata.State) bool { return c.cls.IsSameLogSpecies(s, c.broken) }
	seen := c.seenFound()
	for _, leaf := range slices.Clone(c.canopy) {
		for _, p := range floodFill(c.w, leaf, isTrunk, LooseTrunkDepth, aroundOffsets, seen) {
			c.addTrunk(p)
		}
	}
}

// completeCanopy fills the leaf blob around the canopy found so far with
// leaves of the tracked species, which is that of the first canopy block.
func (c *chop) completeCanopy() {
	if len(c.canopy) == 0 {
		return
	}
	isCanopy := func(s gamedata.State) bool { return c.cls.IsLeaf(s) && c.cls.IsSameLeafSpecies(s, c.leaf) }
	seen := c.seenFound()
	for _, leaf := range slices.Clone(c.canopy) {
		for _, p := range floodFill(c.w, leaf, isCanopy, CanopyDepth, aroundOffsets, seen) {
			c.addCanopy(p)
		}
	}
}

// remove clears the trunk, tips first, then the canopy, stopping silently at
// maxBlocks removed blocks.
func (c *chop) remove(omitStart bool) Result {
	trunk := slices.Clone(c.trunk)
	if !omitStart {
		trunk = append(trunk, c.start)
	}
	slices.Reverse(trunk)

	res := Result{Method: compat.MethodNone, Steps: c.steps}
	removed := 0
	take := func(p world.BlockPos) bool {
		if removed >= c.maxBlocks {
			res.Truncated = true
			return false
		}
		s := c.w.StateAt(p)
		if p == c.start {
			s = c.broken
		}
		c.w.SetAir(p)
		c.w.SpawnDrops(p, s)
		removed++
		return true
	}

	for _, p := range trunk {
		if !take(p) {
			break
		}
		res.Trunk = append(res.Trunk, p)
	}
	for _, p := range c.canopy {
		if !take(p) {
			break
		}
		res.Canopy = append(res.Canopy, p)
	}

	if removed > 0 {
		c.w.PlayBreakSound(c.start, c.broken)
	}
	return res
}
