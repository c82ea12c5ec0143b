package ranking

// Tier: отображаемый ранг игрока, вычисляется из уровня.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// TierThreshold: нижняя граница уровня для ранга.
type TierThreshold struct {
	Tier     Tier
	MinLevel float64
}

// TierThresholds упорядочены по возрастанию MinLevel; применяется последняя
// подходящая граница.
var TierThresholds = []TierThreshold{
	{Tier: TierBronze, MinLevel: MinLevel},
	{Tier: TierSilver, MinLevel: 3.0},
	{Tier: TierGold, MinLevel: 5.0},
	{Tier: TierPlatinum, MinLevel: 7.0},
	{Tier: TierDiamond, MinLevel: 8.5},
}

// TierForLevel возвращает ранг для уровня. Значения за пределами шкалы
// прижимаются к крайним рангам.
func TierForLevel(level float64) Tier {
	tier := TierThresholds[0].Tier
	for _, t := range TierThresholds {
		if level >= t.MinLevel {
			tier = t.Tier
		}
	}
	return tier
}
