// Package tags loads alias packs: named groups of block kinds such as
// "logWood" or "treeLeaves" that mods use to tag their blocks.
package tags

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/species"
)

// ErrInvalidPack is returned when a pack does not match the pack schema.
var ErrInvalidPack = errors.New("invalid alias pack")

//go:embed default.yaml
var defaultPack []byte

const packSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["aliases"],
  "additionalProperties": false,
  "properties": {
    "aliases": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["block"],
          "additionalProperties": false,
          "properties": {
            "block": {"type": "string", "minLength": 1},
            "meta": {"type": "integer", "minimum": 0, "maximum": 15}
          }
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString("pack.schema.json", packSchema)

type packFile struct {
	Aliases map[string][]aliasEntry `yaml:"aliases" json:"aliases"`
}

type aliasEntry struct {
	Block string `yaml:"block" json:"block"`
	Meta  *int   `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// Pack is an alias dictionary bound to a block registry.
type Pack struct {
	aliases map[string][]aliasEntry
	blocks  gamedata.BlockRegistry
}

// Default returns the built-in pack tagging the vanilla logs and leaves.
func Default(blocks gamedata.BlockRegistry) *Pack {
	p, err := Parse(defaultPack, false, blocks)
	if err != nil {
		panic(fmt.Sprintf("built-in alias pack: %v", err))
	}
	return p
}

// Load reads a YAML or JSON (by extension) alias pack from disk.
func Load(path string, blocks gamedata.BlockRegistry) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias pack: %w", err)
	}
	p, err := Parse(data, filepath.Ext(path) == ".json", blocks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates and decodes an alias pack document.
func Parse(data []byte, isJSON bool, blocks gamedata.BlockRegistry) (*Pack, error) {
	doc, err := decodeGeneric(data, isJSON)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	var pf packFile
	if isJSON {
		err = json.Unmarshal(data, &pf)
	} else {
		err = yaml.Unmarshal(data, &pf)
	}
	if err != nil {
		return nil, fmt.Errorf("decode alias pack: %w", err)
	}
	return &Pack{aliases: pf.Aliases, blocks: blocks}, nil
}

// decodeGeneric returns the document as JSON-shaped values for schema validation.
func decodeGeneric(data []byte, isJSON bool) (any, error) {
	if !isJSON {
		var y any
		if err := yaml.Unmarshal(data, &y); err != nil {
			return nil, fmt.Errorf("decode alias pack: %w", err)
		}
		var err error
		if data, err = json.Marshal(y); err != nil {
			return nil, fmt.Errorf("convert alias pack: %w", err)
		}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode alias pack: %w", err)
	}
	return doc, nil
}

// Aliases lists every alias in the pack in name order.
func (p *Pack) Aliases() ([]string, error) {
	names := make([]string, 0, len(p.aliases))
	for name := range p.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Resolve maps an alias to concrete block kinds. Every block it names must
// exist in the registry.
func (p *Pack) Resolve(alias string) ([]species.Entry, error) {
	entries, ok := p.aliases[alias]
	if !ok {
		return nil, fmt.Errorf("unknown alias %q", alias)
	}
	out := make([]species.Entry, 0, len(entries))
	for _, e := range entries {
		b, ok := p.blocks.ByName(e.Block)
		if !ok {
			return nil, fmt.Errorf("alias %s: unknown block %q", alias, e.Block)
		}
		meta := species.AnyMeta
		if e.Meta != nil {
			meta = *e.Meta
		}
		out = append(out, species.Entry{BlockID: b.ID, Meta: meta})
	}
	return out, nil
}
