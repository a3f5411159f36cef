package species

import (
	"strconv"
	"strings"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
)

// SpeciesExtractor derives the species of a log state. ok is false when the
// state carries no species information.
type SpeciesExtractor interface {
	Species(s gamedata.State) (species string, ok bool)
}

// ExtractorFunc adapts a function to SpeciesExtractor.
type ExtractorFunc func(s gamedata.State) (string, bool)

func (f ExtractorFunc) Species(s gamedata.State) (string, bool) { return f(s) }

// VariantBits reads the species from the low metadata bits, as log and log2
// store their wood variant below the axis bits.
type VariantBits int

func (m VariantBits) Species(s gamedata.State) (string, bool) {
	return strconv.Itoa(s.Meta() & int(m)), true
}

// PropertyScan uses the first declared property whose name contains
// "variant" or "type". Every comparison walks the property list.
type PropertyScan struct{}

func (PropertyScan) Species(s gamedata.State) (string, bool) {
	for _, p := range s.Properties() {
		if strings.Contains(p.Name, "variant") || strings.Contains(p.Name, "type") {
			return p.Value, true
		}
	}
	return "", false
}
