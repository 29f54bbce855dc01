package scoring

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidConfig indicates a caller supplied scoring constants that make no sense.
	ErrInvalidConfig = errors.New("invalid scoring config")
	// ErrInvalidRewardInput indicates reward counters outside their valid range.
	ErrInvalidRewardInput = errors.New("invalid reward input")
	// ErrSessionRunning is returned when a reward is requested before the session ended.
	ErrSessionRunning = errors.New("session has not ended")
)

// Config holds the per-answer scoring constants of a game mode.
type Config struct {
	DurationSeconds int `yaml:"durationSeconds"`
	BasePoints      int `yaml:"basePoints"`
	WrongPenalty    int `yaml:"wrongPenalty"`
	// StreakBonus is keyed by the streak value reached by a correct answer.
	// Streak values with no entry add nothing beyond BasePoints.
	StreakBonus map[int]int `yaml:"streakBonus"`
}

// Validate fails fast on constants that indicate a caller bug.
func (c Config) Validate() error {
	if c.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidConfig, c.DurationSeconds)
	}
	if c.BasePoints < 0 {
		return fmt.Errorf("%w: negative base points %d", ErrInvalidConfig, c.BasePoints)
	}
	if c.WrongPenalty < 0 {
		return fmt.Errorf("%w: negative wrong penalty %d", ErrInvalidConfig, c.WrongPenalty)
	}
	for streak, bonus := range c.StreakBonus {
		if streak <= 0 || bonus < 0 {
			return fmt.Errorf("%w: streak bonus %d:%d", ErrInvalidConfig, streak, bonus)
		}
	}
	return nil
}

// StreakTier grants Bonus cerises when the final streak is at least MinStreak.
type StreakTier struct {
	MinStreak int `yaml:"minStreak"`
	Bonus     int `yaml:"bonus"`
}

// RewardConfig describes how a finished session converts into cerises.
type RewardConfig struct {
	BasePool     int          `yaml:"basePool"`
	ErrorPenalty int          `yaml:"errorPenalty"` // per wrong or unanswered item
	StreakTiers  []StreakTier `yaml:"streakTiers"`  // only the highest tier met applies
	// TimeBonusPerSecond is awarded per remaining second, up to TimeBonusCap
	// (zero cap means uncapped).
	TimeBonusPerSecond int `yaml:"timeBonusPerSecond"`
	TimeBonusCap       int `yaml:"timeBonusCap"`
	Cap                int `yaml:"cap"`          // zero means uncapped
	PerItemScore       int `yaml:"perItemScore"` // zero keeps the running session score
}

// Validate rejects negative constants.
func (c RewardConfig) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"base pool", c.BasePool},
		{"error penalty", c.ErrorPenalty},
		{"time bonus per second", c.TimeBonusPerSecond},
		{"time bonus cap", c.TimeBonusCap},
		{"cap", c.Cap},
		{"per item score", c.PerItemScore},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: negative %s %d", ErrInvalidConfig, f.name, f.value)
		}
	}
	for _, tier := range c.StreakTiers {
		if tier.MinStreak <= 0 || tier.Bonus < 0 {
			return fmt.Errorf("%w: streak tier %d:%d", ErrInvalidConfig, tier.MinStreak, tier.Bonus)
		}
	}
	return nil
}

// streakTierBonus returns the bonus of the highest tier met by streak.
func (c RewardConfig) streakTierBonus(streak int) int {
	tiers := make([]StreakTier, len(c.StreakTiers))
	copy(tiers, c.StreakTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinStreak > tiers[j].MinStreak })
	for _, tier := range tiers {
		if streak >= tier.MinStreak {
			return tier.Bonus
		}
	}
	return 0
}
