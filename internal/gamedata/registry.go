package gamedata

import "sort"

type BlockRegistry interface {
	ByID(id int) (Block, bool)
	ByName(name string) (Block, bool)
	All() []Block
}

// Blocks is an in-memory BlockRegistry indexed by ID and name.
type Blocks struct {
	byID   map[int]Block
	byName map[string]Block
}

// NewBlocks builds a registry from a list of block definitions.
// Later definitions replace earlier ones with the same ID.
func NewBlocks(defs []Block) *Blocks {
	r := &Blocks{
		byID:   make(map[int]Block, len(defs)),
		byName: make(map[string]Block, len(defs)),
	}
	for _, b := range defs {
		if old, ok := r.byID[b.ID]; ok {
			delete(r.byName, old.Name)
		}
		r.byID[b.ID] = b
		r.byName[b.Name] = b
	}
	return r
}

func (r *Blocks) ByID(id int) (Block, bool) {
	b, ok := r.byID[id]
	return b, ok
}

func (r *Blocks) ByName(name string) (Block, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// All returns every block ordered by ID.
func (r *Blocks) All() []Block {
	out := make([]Block, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve returns the State for a raw state ID. Unknown block IDs resolve to
// a bare Block carrying only the ID.
func Resolve(r BlockRegistry, stateID int32) State {
	id := int(stateID >> 4)
	b, ok := r.ByID(id)
	if !ok {
		b = Block{ID: id}
	}
	return State{ID: stateID, Block: b}
}
