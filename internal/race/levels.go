package race

// DefaultLevelCount is the number of levels in a full game.
const DefaultLevelCount = 10

// LevelConfig is the tuning for one level.
type LevelConfig struct {
	Level            int
	OpponentVelocity float64
	Last             bool
}

// GetLevelConfig returns settings for a given level. Difficulty comes only
// from the opponent's speed, which grows linearly from its base velocity.
func GetLevelConfig(level, count int, o *Opponent) LevelConfig {
	if level < 1 {
		level = 1
	}
	return LevelConfig{
		Level:            level,
		OpponentVelocity: o.LevelVelocity(level),
		Last:             level >= count,
	}
}
