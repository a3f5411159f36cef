package compat

import "github.com/go-theft-craft/treefeller/internal/gamedata"

// BlockHooks adapts a block registry to a Registry. Hooks are keyed by block
// name; blocks without a hook spawn their natural drops.
type BlockHooks struct {
	Registry gamedata.BlockRegistry
	Hooks    map[string]RemovedFunc
}

func (r BlockHooks) Blocks() []gamedata.Block { return r.Registry.All() }

func (r BlockHooks) RemovedHook(b gamedata.Block) RemovedFunc { return r.Hooks[b.Name] }
