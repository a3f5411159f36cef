package gamedata

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnknownProperty is returned when a state references a property the block does not declare.
	ErrUnknownProperty = errors.New("unknown block property")
	// ErrMetaOverflow is returned when a property combination does not fit in 4 bits of metadata.
	ErrMetaOverflow = errors.New("block state does not fit in metadata")
)

// MaxMeta is the largest metadata value a 1.8 state ID can carry.
const MaxMeta = 15

type Block struct {
	ID           int
	Name         string
	DisplayName  string
	Hardness     *float64
	StackSize    int
	Diggable     bool
	BoundingBox  string
	Material     string
	Transparent  bool
	EmitLight    int
	FilterLight  int
	Resistance   float64
	Drops        []Drop
	HarvestTools map[int]bool
	Variations   []Variation
	States       []StateProperty
}

type Drop struct {
	ID       int
	Metadata int
	MinCount int
	MaxCount int
}

type Variation struct {
	Metadata    int
	DisplayName string
}

// StateProperty is a property a block declares for its states, e.g. radius=1..8.
type StateProperty struct {
	Name      string
	Type      string // "int", "enum" or "bool"
	NumValues int
	Values    []string
}

// Property is one resolved property value of a block state.
type Property struct {
	Name  string
	Value string
}

func (p StateProperty) values() []string {
	if len(p.Values) > 0 {
		return p.Values
	}
	if p.Type == "bool" {
		return []string{"true", "false"}
	}
	vals := make([]string, p.NumValues)
	for i := range vals {
		vals[i] = strconv.Itoa(i)
	}
	return vals
}

// IntRange returns the smallest and largest value of an int property.
func (p StateProperty) IntRange() (lo, hi int, err error) {
	if p.Type != "int" {
		return 0, 0, fmt.Errorf("property %s has type %q, want int", p.Name, p.Type)
	}
	vals := p.values()
	if len(vals) == 0 {
		return 0, 0, fmt.Errorf("property %s declares no values", p.Name)
	}
	for i, s := range vals {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("property %s value %q: %w", p.Name, s, err)
		}
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// Property returns the declared state property with the given name.
func (b Block) Property(name string) (StateProperty, bool) {
	for _, p := range b.States {
		if p.Name == name {
			return p, true
		}
	}
	return StateProperty{}, false
}

// StateWith returns the state of b with the given property values set.
// Properties not listed keep their first declared value, like a default state.
// Metadata is a mixed-radix number where the last declared property varies fastest.
func (b Block) StateWith(values map[string]string) (State, error) {
	for name := range values {
		if _, ok := b.Property(name); !ok {
			return State{}, fmt.Errorf("%s.%s: %w", b.Name, name, ErrUnknownProperty)
		}
	}

	meta, stride := 0, 1
	for i := len(b.States) - 1; i >= 0; i-- {
		p := b.States[i]
		vals := p.values()
		idx := 0
		if want, ok := values[p.Name]; ok {
			idx = -1
			for j, v := range vals {
				if v == want {
					idx = j
					break
				}
			}
			if idx < 0 {
				return State{}, fmt.Errorf("%s.%s=%s: %w", b.Name, p.Name, want, ErrUnknownProperty)
			}
		}
		meta += idx * stride
		stride *= len(vals)
	}
	if meta > MaxMeta {
		return State{}, fmt.Errorf("%s meta %d: %w", b.Name, meta, ErrMetaOverflow)
	}
	return NewState(b, meta), nil
}

// State is a resolved block state: the registry entry plus its state ID.
type State struct {
	ID    int32 // blockID<<4 | metadata
	Block Block
}

// StateID packs a block ID and metadata into a 1.8 state ID.
func StateID(blockID, meta int) int32 {
	return int32(blockID<<4 | meta&MaxMeta)
}

// NewState returns the state of b with the given metadata.
func NewState(b Block, meta int) State {
	return State{ID: StateID(b.ID, meta), Block: b}
}

// Meta returns the metadata nibble of the state.
func (s State) Meta() int {
	return int(s.ID & MaxMeta)
}

// IsAir reports whether the state is empty space.
func (s State) IsAir() bool {
	return s.ID>>4 == 0
}

// Properties decodes the declared properties of the state in declaration order.
func (s State) Properties() []Property {
	if len(s.Block.States) == 0 {
		return nil
	}
	props := make([]Property, len(s.Block.States))
	rest := s.Meta()
	for i := len(s.Block.States) - 1; i >= 0; i-- {
		p := s.Block.States[i]
		vals := p.values()
		v := ""
		if len(vals) > 0 {
			v = vals[rest%len(vals)]
			rest /= len(vals)
		}
		props[i] = Property{Name: p.Name, Value: v}
	}
	return props
}

// Property returns the value of a single property of the state.
func (s State) Property(name string) (string, bool) {
	for _, p := range s.Properties() {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func (s State) String() string {
	if s.Block.Name == "" {
		return fmt.Sprintf("#%d:%d", s.ID>>4, s.Meta())
	}
	return fmt.Sprintf("%s:%d", s.Block.Name, s.Meta())
}
