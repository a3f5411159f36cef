package gamedata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const blocksJSON = `[
  {"id":0,"name":"air","displayName":"Air","hardness":0,"stackSize":0,"diggable":false,"boundingBox":"empty","transparent":true,"drops":[]},
  {"id":17,"name":"log","displayName":"Wood","hardness":2,"stackSize":64,"diggable":true,"boundingBox":"block","material":"wood",
   "drops":[{"drop":17}],"variations":[{"metadata":0,"displayName":"Oak Wood"},{"metadata":1,"displayName":"Spruce Wood"}]},
  {"id":18,"name":"leaves","displayName":"Leaves","hardness":0.2,"stackSize":64,"diggable":true,"boundingBox":"block","material":"leaves",
   "transparent":true,"drops":[{"drop":{"id":6,"metadata":0},"minCount":0,"maxCount":1}],"harvestTools":{"359":true}},
  {"id":4000,"name":"oak_branch","displayName":"Oak Branch","hardness":1,"stackSize":64,"diggable":true,"boundingBox":"block","material":"wood",
   "states":[{"name":"radius","type":"int","num_values":8,"values":["1","2","3","4","5","6","7","8"]}]}
]`

func TestDecodeBlocks(t *testing.T) {
	defs, err := DecodeBlocks(strings.NewReader(blocksJSON))
	require.NoError(t, err)
	require.Len(t, defs, 4)

	reg := NewBlocks(defs)

	log, ok := reg.ByName("log")
	require.True(t, ok)
	require.Equal(t, 17, log.ID)
	require.Equal(t, []Drop{{ID: 17}}, log.Drops)
	require.Len(t, log.Variations, 2)

	leaves, ok := reg.ByID(18)
	require.True(t, ok)
	require.Equal(t, "leaves", leaves.Material)
	require.Equal(t, []Drop{{ID: 6, MinCount: 0, MaxCount: 1}}, leaves.Drops)
	require.True(t, leaves.HarvestTools[359])

	branch, ok := reg.ByName("oak_branch")
	require.True(t, ok)
	require.Len(t, branch.States, 1)
	require.Equal(t, "radius", branch.States[0].Name)
	require.Equal(t, 8, branch.States[0].NumValues)

	all := reg.All()
	require.Equal(t, 0, all[0].ID)
	require.Equal(t, 4000, all[len(all)-1].ID)
}

func TestDecodeBlocksRejectsNamelessBlock(t *testing.T) {
	_, err := DecodeBlocks(strings.NewReader(`[{"id":5}]`))
	require.Error(t, err)

	_, err = DecodeBlocks(strings.NewReader(`{"id":5}`))
	require.Error(t, err)
}

func TestLoadBlocksZstd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocks.json.zst")

	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(blocksJSON))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	reg, err := LoadBlocks(path)
	require.NoError(t, err)

	_, ok := reg.ByName("oak_branch")
	require.True(t, ok)
}

func TestLoadBlocksPlainAndMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocks.json")
	require.NoError(t, os.WriteFile(path, []byte(blocksJSON), 0o644))

	reg, err := LoadBlocks(path)
	require.NoError(t, err)
	require.Len(t, reg.All(), 4)

	_, err = LoadBlocks(filepath.Join(dir, "nope.json"))
	require.Error(t, err)
}

func TestNewBlocksReplacesDuplicateIDs(t *testing.T) {
	reg := NewBlocks([]Block{{ID: 1, Name: "stone"}, {ID: 1, Name: "granite"}})

	b, ok := reg.ByID(1)
	require.True(t, ok)
	require.Equal(t, "granite", b.Name)

	_, ok = reg.ByName("stone")
	require.False(t, ok)
}

func TestCompressBlocks(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "blocks.json")
	dst := filepath.Join(dir, "blocks.json.zst")
	require.NoError(t, os.WriteFile(src, []byte(blocksJSON), 0o644))

	require.NoError(t, CompressBlocks(src, dst))

	reg, err := LoadBlocks(dst)
	require.NoError(t, err)
	require.Len(t, reg.All(), 4)
}

func TestCompressBlocksRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "blocks.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":1}]`), 0o644))

	require.Error(t, CompressBlocks(src, filepath.Join(dir, "blocks.json.zst")))
}
