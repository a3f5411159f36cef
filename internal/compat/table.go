// Package compat maps third-party blocks that do not fit the trunk and leaf
// model to a single-step chop action.
package compat

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/world"
)

// ChopMethod is how a recognized block is felled.
type ChopMethod int

const (
	MethodNone ChopMethod = iota
	MethodRootBlockBreaking
)

func (m ChopMethod) String() string {
	switch m {
	case MethodRootBlockBreaking:
		return "root_block_breaking"
	default:
		return "none"
	}
}

const (
	// RootBreakCost is the tool damage of a root block break.
	RootBreakCost = 5
	// MaxHookErrors is the number of removal hook failures after which the
	// table stops recognizing any block.
	MaxHookErrors = 16

	branchMarker   = "branch"
	radiusProperty = "radius"
	minRootRadius  = 7
)

// RemovedFunc runs a block's own removal logic after it was set to air.
type RemovedFunc func(w world.Accessor, pos world.BlockPos, s gamedata.State) error

// Registry is the third-party block registry the table is built from.
type Registry interface {
	Blocks() []gamedata.Block
	// RemovedHook returns the removal hook of b, or nil for the default
	// behavior of spawning its natural drops.
	RemovedHook(b gamedata.Block) RemovedFunc
}

// Table maps exact block states to chop methods. It is rebuilt by Reload and
// permanently disabled once MaxHookErrors removal hooks have failed.
type Table struct {
	log *slog.Logger

	mu       sync.RWMutex
	methods  map[int32]ChopMethod
	hooks    map[int]RemovedFunc
	failures int
	disabled bool
}

// New returns an empty table.
func New(log *slog.Logger) *Table {
	return &Table{
		log:     log,
		methods: make(map[int32]ChopMethod),
		hooks:   make(map[int]RemovedFunc),
	}
}

// Reload rebuilds the table from reg. Blocks that fail to register are
// logged and skipped.
func (t *Table) Reload(reg Registry) {
	methods := make(map[int32]ChopMethod)
	hooks := make(map[int]RemovedFunc)

	for _, b := range reg.Blocks() {
		if !strings.Contains(b.Name, branchMarker) {
			continue
		}
		states, err := register(reg, b, hooks)
		if err != nil {
			t.log.Warn("skip compat block", "block", b.Name, "error", err)
			continue
		}
		for _, id := range states {
			methods[id] = MethodRootBlockBreaking
		}
	}

	t.mu.Lock()
	t.methods = methods
	t.hooks = hooks
	t.mu.Unlock()

	t.log.Info("compat table reloaded", "states", len(methods), "blocks", len(hooks))
}

// register returns the state IDs of b that break as root blocks.
func register(reg Registry, b gamedata.Block, hooks map[int]RemovedFunc) (ids []int32, err error) {
	defer func() {
		if r := recover(); r != nil {
			ids, err = nil, fmt.Errorf("register %s: panic: %v", b.Name, r)
		}
	}()

	prop, ok := b.Property(radiusProperty)
	if !ok || prop.Type != "int" {
		return nil, nil
	}
	_, hi, err := prop.IntRange()
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", b.Name, err)
	}
	if hi < minRootRadius {
		return nil, nil
	}

	for v := minRootRadius; v <= hi; v++ {
		s, err := b.StateWith(map[string]string{radiusProperty: strconv.Itoa(v)})
		if err != nil {
			return nil, fmt.Errorf("register %s radius %d: %w", b.Name, v, err)
		}
		ids = append(ids, s.ID)
	}
	if hook := reg.RemovedHook(b); hook != nil {
		hooks[b.ID] = hook
	}
	return ids, nil
}

// Lookup returns the chop method registered for s.
func (t *Table) Lookup(s gamedata.State) ChopMethod {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.disabled {
		return MethodNone
	}
	return t.methods[s.ID]
}

// Disabled reports whether the removal hook failure limit was reached.
func (t *Table) Disabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.disabled
}

// Chop fells s at pos with its registered method and returns the tool damage.
// Unrecognized blocks and failed hooks cost nothing.
func (t *Table) Chop(w world.Accessor, s gamedata.State, pos world.BlockPos) int {
	if t.Lookup(s) != MethodRootBlockBreaking {
		return 0
	}

	w.SetAir(pos)
	if err := t.runHook(w, pos, s); err != nil {
		t.hookFailed(s, pos, err)
		return 0
	}
	chopsTotal.WithLabelValues(MethodRootBlockBreaking.String()).Inc()
	return RootBreakCost
}

func (t *Table) runHook(w world.Accessor, pos world.BlockPos, s gamedata.State) (err error) {
	t.mu.RLock()
	hook := t.hooks[s.Block.ID]
	t.mu.RUnlock()

	if hook == nil {
		w.SpawnDrops(pos, s)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("removal hook panic: %v", r)
		}
	}()
	return hook(w, pos, s)
}

func (t *Table) hookFailed(s gamedata.State, pos world.BlockPos, err error) {
	hookErrorsTotal.Inc()

	t.mu.Lock()
	t.failures++
	n := t.failures
	if n >= MaxHookErrors {
		t.disabled = true
	}
	t.mu.Unlock()

	switch n {
	case 1:
		t.log.Warn("compat removal hook failed", "block", s.String(), "pos", pos, "error", err)
	case MaxHookErrors:
		t.log.Error("compat removal hook failed too often, disabling root block breaking",
			"failures", n, "block", s.String(), "error", err)
		breakerOpen.Set(1)
	}
}
