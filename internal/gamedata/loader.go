package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// rawBlock mirrors one entry of a minecraft-data blocks.json file.
type rawBlock struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	DisplayName  string          `json:"displayName"`
	Hardness     *float64        `json:"hardness"`
	StackSize    int             `json:"stackSize"`
	Diggable     bool            `json:"diggable"`
	BoundingBox  string          `json:"boundingBox"`
	Material     string          `json:"material"`
	Transparent  bool            `json:"transparent"`
	EmitLight    int             `json:"emitLight"`
	FilterLight  int             `json:"filterLight"`
	Resistance   float64         `json:"resistance"`
	Drops        []rawDrop       `json:"drops"`
	HarvestTools map[string]bool `json:"harvestTools"`
	Variations   []Variation     `json:"variations"`
	States       []rawState      `json:"states"`
}

type rawDrop struct {
	Drop     json.RawMessage `json:"drop"`
	MinCount float64         `json:"minCount"`
	MaxCount float64         `json:"maxCount"`
}

type dropObject struct {
	ID       int `json:"id"`
	Metadata int `json:"metadata"`
}

type rawState struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	NumValues int      `json:"num_values"`
	Values    []string `json:"values"`
}

// parse handles both plain ("drop": 17) and object ("drop": {"id":17,"metadata":2}) drops.
func (d rawDrop) parse() Drop {
	out := Drop{MinCount: int(d.MinCount), MaxCount: int(d.MaxCount)}

	var plainID int
	if err := json.Unmarshal(d.Drop, &plainID); err == nil {
		out.ID = plainID
		return out
	}
	var obj dropObject
	if err := json.Unmarshal(d.Drop, &obj); err == nil {
		out.ID = obj.ID
		out.Metadata = obj.Metadata
	}
	return out
}

func (rb rawBlock) block() (Block, error) {
	b := Block{
		ID:          rb.ID,
		Name:        rb.Name,
		DisplayName: rb.DisplayName,
		Hardness:    rb.Hardness,
		StackSize:   rb.StackSize,
		Diggable:    rb.Diggable,
		BoundingBox: rb.BoundingBox,
		Material:    rb.Material,
		Transparent: rb.Transparent,
		EmitLight:   rb.EmitLight,
		FilterLight: rb.FilterLight,
		Resistance:  rb.Resistance,
		Variations:  rb.Variations,
	}
	for _, d := range rb.Drops {
		b.Drops = append(b.Drops, d.parse())
	}
	if len(rb.HarvestTools) > 0 {
		b.HarvestTools = make(map[int]bool, len(rb.HarvestTools))
		for k, v := range rb.HarvestTools {
			var id int
			if _, err := fmt.Sscanf(k, "%d", &id); err != nil {
				return Block{}, fmt.Errorf("block %s harvest tool %q: %w", rb.Name, k, err)
			}
			b.HarvestTools[id] = v
		}
	}
	for _, s := range rb.States {
		b.States = append(b.States, StateProperty(s))
	}
	return b, nil
}

// DecodeBlocks parses a minecraft-data blocks.json document.
func DecodeBlocks(r io.Reader) ([]Block, error) {
	var raw []rawBlock
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}
	blocks := make([]Block, 0, len(raw))
	for _, rb := range raw {
		if rb.Name == "" {
			return nil, fmt.Errorf("decode blocks: block %d has no name", rb.ID)
		}
		b, err := rb.block()
		if err != nil {
			return nil, fmt.Errorf("decode blocks: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// LoadBlocks reads a blocks.json file into a registry. Files ending in .zst
// are zstd-compressed packs as stored by the downloader.
func LoadBlocks(path string) (*Blocks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blocks: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd blocks: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	defs, err := DecodeBlocks(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewBlocks(defs), nil
}

// CompressBlocks checks that src is a valid blocks.json and writes it to dst
// zstd-compressed.
func CompressBlocks(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read blocks: %w", err)
	}
	if _, err := DecodeBlocks(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		f.Close()
		return fmt.Errorf("open zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("compress blocks: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("compress blocks: %w", err)
	}
	return f.Close()
}
