package combat

import (
	"math"

	"github.com/udisondev/zonecore/internal/model"
)

// Healing formula constants. At levelModBase + levelModPerLevel*level mind the
// heal equals the potency.
const (
	levelModBase     = 20.0
	levelModPerLevel = 5.0
)

// LevelModifier returns the mind value at which a heal restores exactly its potency.
func LevelModifier(level uint8) float64 {
	return levelModBase + levelModPerLevel*float64(max(level, 1))
}

// CalculateHealValue returns the HP a heal of the given potency cast by p restores,
// before target-side clamping. Nil player or non-positive mind heal nothing.
func CalculateHealValue(p *model.Player, potency uint32) uint32 {
	if p == nil || potency == 0 {
		return 0
	}
	mind := p.Mind()
	if mind <= 0 {
		return 0
	}

	v := math.Floor(float64(potency) * float64(mind) / LevelModifier(p.Level()))
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
