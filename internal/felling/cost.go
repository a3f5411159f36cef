package felling

// MaxCost is the largest tool damage a single chop can report.
const MaxCost = 65535

// cost is the tool damage for removing trunk logs and canopy leaves.
func cost(trunk, canopy int) int {
	return max(1, min(trunk*6/5+canopy/10-1, MaxCost))
}
