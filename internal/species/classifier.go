// Package species decides which blocks are tree trunks or canopy and whether
// two of them belong to the same tree.
package species

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
)

// Alias prefixes that mark dictionary entries as logs or leaves.
const (
	LogMarker  = "logWood"
	LeafMarker = "treeLeaves"
)

// AnyMeta matches every metadata value of a block.
const AnyMeta = -1

// Entry is one concrete block kind an alias resolves to.
type Entry struct {
	BlockID int
	Meta    int
}

// Dictionary is the alias/tag source the classifier is rebuilt from.
type Dictionary interface {
	Aliases() ([]string, error)
	Resolve(alias string) ([]Entry, error)
}

// Kind is the category of a classified block.
type Kind int

const (
	Obstacle Kind = iota
	Trunk
	Leaf
	Passable
)

func (k Kind) String() string {
	switch k {
	case Trunk:
		return "trunk"
	case Leaf:
		return "leaf"
	case Passable:
		return "passable"
	default:
		return "obstacle"
	}
}

// Category is a classified block: its kind plus the state that carries its species.
type Category struct {
	Kind  Kind
	State gamedata.State
}

type kindSet map[Entry]struct{}

func (ks kindSet) has(s gamedata.State) bool {
	if len(ks) == 0 {
		return false
	}
	id := s.Block.ID
	if _, ok := ks[Entry{BlockID: id, Meta: AnyMeta}]; ok {
		return true
	}
	_, ok := ks[Entry{BlockID: id, Meta: s.Meta()}]
	return ok
}

// Classifier caches the log and leaf kinds found in the alias dictionary.
// The sets are replaced wholesale by Reload and read-only in between.
type Classifier struct {
	log *slog.Logger

	mu         sync.RWMutex
	logs       kindSet
	leaves     kindSet
	extractors map[int]SpeciesExtractor
}

// New returns a classifier that only knows the built-in log and leaf blocks
// until Reload is called.
func New(log *slog.Logger) *Classifier {
	return &Classifier{
		log: log,
		extractors: map[int]SpeciesExtractor{
			gamedata.BlockLog:  VariantBits(3),
			gamedata.BlockLog2: VariantBits(3),
		},
	}
}

// SetExtractor overrides how the species of blockID logs is determined.
func (c *Classifier) SetExtractor(blockID int, ex SpeciesExtractor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extractors[blockID] = ex
}

// Reload rebuilds the log and leaf sets from dict. A category whose aliases
// cannot be listed or resolved keeps its previous set.
func (c *Classifier) Reload(dict Dictionary) {
	aliases, err := dict.Aliases()
	if err != nil {
		c.log.Error("list tree aliases, keeping previous sets", "error", err)
		return
	}

	logs, logErr := collect(dict, aliases, LogMarker)
	leaves, leafErr := collect(dict, aliases, LeafMarker)

	c.mu.Lock()
	if logErr == nil {
		c.logs = logs
	}
	if leafErr == nil {
		c.leaves = leaves
	}
	nLogs, nLeaves := len(c.logs), len(c.leaves)
	c.mu.Unlock()

	if logErr != nil {
		c.log.Error("resolve log aliases, keeping previous set", "error", logErr)
	}
	if leafErr != nil {
		c.log.Error("resolve leaf aliases, keeping previous set", "error", leafErr)
	}
	c.log.Info("tree kinds reloaded", "logs", nLogs, "leaves", nLeaves)
}

func collect(dict Dictionary, aliases []string, marker string) (kindSet, error) {
	set := kindSet{}
	for _, alias := range aliases {
		if !strings.HasPrefix(alias, marker) {
			continue
		}
		entries, err := dict.Resolve(alias)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			set[e] = struct{}{}
		}
	}
	return set, nil
}

// IsLog reports whether s is a choppable trunk block.
func (c *Classifier) IsLog(s gamedata.State) bool {
	switch s.Block.ID {
	case gamedata.BlockLog, gamedata.BlockLog2:
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logs.has(s)
}

// IsLeaf reports whether s is canopy.
func (c *Classifier) IsLeaf(s gamedata.State) bool {
	if s.Block.Material == "leaves" {
		return true
	}
	switch s.Block.ID {
	case gamedata.BlockLeaves, gamedata.BlockLeaves2:
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leaves.has(s)
}

// IsPassable reports whether s is air or a vine-like block that a trunk may grow through.
func (c *Classifier) IsPassable(s gamedata.State) bool {
	return s.IsAir() || strings.Contains(s.Block.Name, "vine")
}

// IsSameLogSpecies reports whether a and b are logs of the same tree species.
func (c *Classifier) IsSameLogSpecies(a, b gamedata.State) bool {
	if a.Block.ID != b.Block.ID {
		return false
	}
	if a.ID == b.ID {
		return true
	}
	ex := c.extractor(a.Block.ID)
	sa, okA := ex.Species(a)
	sb, okB := ex.Species(b)
	if !okA || !okB {
		return false
	}
	return sa == sb
}

// IsSameLeafSpecies reports whether a and b are the same leaf block. Leaf
// variants are not compared.
func (c *Classifier) IsSameLeafSpecies(a, b gamedata.State) bool {
	return a.Block.ID == b.Block.ID
}

// Classify sorts s into one of the four block kinds.
func (c *Classifier) Classify(s gamedata.State) Category {
	switch {
	case c.IsLog(s):
		return Category{Kind: Trunk, State: s}
	case c.IsLeaf(s):
		return Category{Kind: Leaf, State: s}
	case c.IsPassable(s):
		return Category{Kind: Passable, State: s}
	default:
		return Category{Kind: Obstacle, State: s}
	}
}

func (c *Classifier) extractor(blockID int) SpeciesExtractor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ex, ok := c.extractors[blockID]; ok {
		return ex
	}
	return PropertyScan{}
}
