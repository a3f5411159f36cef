package gamedata

// Block IDs of the 1.8 blocks the tree code cares about.
const (
	BlockAir     = 0
	BlockStone   = 1
	BlockGrass   = 2
	BlockDirt    = 3
	BlockSapling = 6
	BlockBedrock = 7
	BlockLog     = 17
	BlockLeaves  = 18
	BlockVine    = 106
	BlockLeaves2 = 161
	BlockLog2    = 162
)

// Wood variants shared by log/leaves (meta & 3) and log2/leaves2 (meta & 1).
const (
	WoodOak     = 0
	WoodSpruce  = 1
	WoodBirch   = 2
	WoodJungle  = 3
	WoodAcacia  = 0
	WoodDarkOak = 1
)

func hardness(v float64) *float64 { return &v }

// Vanilla returns a registry with the subset of pc-1.8 blocks needed to
// grow and fell trees when no minecraft-data pack is configured.
func Vanilla() *Blocks {
	return NewBlocks([]Block{
		{ID: BlockAir, Name: "air", DisplayName: "Air", Hardness: hardness(0), BoundingBox: "empty", Transparent: true},
		{
			ID: BlockStone, Name: "stone", DisplayName: "Stone", Hardness: hardness(1.5), Diggable: true,
			BoundingBox: "block", Material: "rock", StackSize: 64,
			Drops: []Drop{{ID: 4}},
		},
		{
			ID: BlockGrass, Name: "grass", DisplayName: "Grass Block", Hardness: hardness(0.6), Diggable: true,
			BoundingBox: "block", Material: "dirt", StackSize: 64,
			Drops: []Drop{{ID: BlockDirt}},
		},
		{
			ID: BlockDirt, Name: "dirt", DisplayName: "Dirt", Hardness: hardness(0.5), Diggable: true,
			BoundingBox: "block", Material: "dirt", StackSize: 64,
			Drops: []Drop{{ID: BlockDirt}},
		},
		{
			ID: BlockSapling, Name: "sapling", DisplayName: "Sapling", Hardness: hardness(0), Diggable: true,
			BoundingBox: "empty", Material: "plant", Transparent: true, StackSize: 64,
			Drops: []Drop{{ID: BlockSapling}},
		},
		{ID: BlockBedrock, Name: "bedrock", DisplayName: "Bedrock", BoundingBox: "block", StackSize: 64},
		{
			ID: BlockLog, Name: "log", DisplayName: "Wood", Hardness: hardness(2), Diggable: true,
			BoundingBox: "block", Material: "wood", StackSize: 64,
			Drops: []Drop{{ID: BlockLog}},
			Variations: []Variation{
				{Metadata: WoodOak, DisplayName: "Oak Wood"},
				{Metadata: WoodSpruce, DisplayName: "Spruce Wood"},
				{Metadata: WoodBirch, DisplayName: "Birch Wood"},
				{Metadata: WoodJungle, DisplayName: "Jungle Wood"},
			},
		},
		{
			ID: BlockLeaves, Name: "leaves", DisplayName: "Leaves", Hardness: hardness(0.2), Diggable: true,
			BoundingBox: "block", Material: "leaves", Transparent: true, FilterLight: 1, StackSize: 64,
			Drops: []Drop{{ID: BlockSapling, MinCount: 0, MaxCount: 1}},
			Variations: []Variation{
				{Metadata: WoodOak, DisplayName: "Oak Leaves"},
				{Metadata: WoodSpruce, DisplayName: "Spruce Leaves"},
				{Metadata: WoodBirch, DisplayName: "Birch Leaves"},
				{Metadata: WoodJungle, DisplayName: "Jungle Leaves"},
			},
		},
		{
			ID: BlockVine, Name: "vine", DisplayName: "Vines", Hardness: hardness(0.2), Diggable: true,
			BoundingBox: "empty", Material: "plant", Transparent: true, StackSize: 64,
		},
		{
			ID: BlockLeaves2, Name: "leaves2", DisplayName: "Leaves", Hardness: hardness(0.2), Diggable: true,
			BoundingBox: "block", Material: "leaves", Transparent: true, FilterLight: 1, StackSize: 64,
			Drops: []Drop{{ID: BlockSapling, Metadata: 4, MinCount: 0, MaxCount: 1}},
			Variations: []Variation{
				{Metadata: WoodAcacia, DisplayName: "Acacia Leaves"},
				{Metadata: WoodDarkOak, DisplayName: "Dark Oak Leaves"},
			},
		},
		{
			ID: BlockLog2, Name: "log2", DisplayName: "Wood", Hardness: hardness(2), Diggable: true,
			BoundingBox: "block", Material: "wood", StackSize: 64,
			Drops: []Drop{{ID: BlockLog2}},
			Variations: []Variation{
				{Metadata: WoodAcacia, DisplayName: "Acacia Wood"},
				{Metadata: WoodDarkOak, DisplayName: "Dark Oak Wood"},
			},
		},
	})
}
