package scoring

import (
	"fmt"
	"sort"

	"cerises-quiz/internal/domain"
)

// Mode bundles the constants one game type plays with.
type Mode struct {
	Name    string       `yaml:"-"`
	Scoring Config       `yaml:"scoring"`
	Reward  RewardConfig `yaml:"reward"`
}

// Validate checks both config halves.
func (m Mode) Validate() error {
	if err := m.Scoring.Validate(); err != nil {
		return fmt.Errorf("mode %s: %w", m.Name, err)
	}
	if err := m.Reward.Validate(); err != nil {
		return fmt.Errorf("mode %s: %w", m.Name, err)
	}
	return nil
}

// Modes indexes game modes by name.
type Modes map[string]Mode

const (
	ModeTop10  = "top10"
	ModeLogo   = "logo"
	ModeCareer = "career"
)

// DefaultModes returns the built-in game modes.
func DefaultModes() Modes {
	return Modes{
		ModeTop10: {
			Name: ModeTop10,
			Scoring: Config{
				DurationSeconds: 60,
				BasePoints:      15,
				WrongPenalty:    5,
				StreakBonus:     map[int]int{3: 10, 6: 15, 9: 10, 10: 15},
			},
			Reward: RewardConfig{
				BasePool:           100,
				ErrorPenalty:       10,
				StreakTiers:        []StreakTier{{MinStreak: 3, Bonus: 5}, {MinStreak: 6, Bonus: 10}, {MinStreak: 10, Bonus: 20}},
				TimeBonusPerSecond: 1,
				TimeBonusCap:       20,
				Cap:                150,
			},
		},
		ModeLogo: {
			Name: ModeLogo,
			Scoring: Config{
				DurationSeconds: 90,
				BasePoints:      10,
			},
			Reward: RewardConfig{
				BasePool:     150,
				ErrorPenalty: 10,
				StreakTiers: []StreakTier{
					{MinStreak: 5, Bonus: 5},
					{MinStreak: 10, Bonus: 10},
					{MinStreak: 15, Bonus: 15},
					{MinStreak: 20, Bonus: 20},
				},
				TimeBonusPerSecond: 1,
				TimeBonusCap:       20,
				Cap:                200,
				PerItemScore:       10,
			},
		},
		ModeCareer: {
			Name: ModeCareer,
			Scoring: Config{
				DurationSeconds: 45,
				BasePoints:      20,
				WrongPenalty:    5,
				StreakBonus:     map[int]int{3: 10},
			},
			Reward: RewardConfig{
				BasePool:           50,
				TimeBonusPerSecond: 1,
				TimeBonusCap:       15,
				Cap:                80,
			},
		},
	}
}

// Lookup returns the named mode.
func (m Modes) Lookup(name string) (Mode, error) {
	mode, ok := m[name]
	if !ok {
		return Mode{}, fmt.Errorf("%w: %q", domain.ErrUnknownMode, name)
	}
	mode.Name = name
	return mode, nil
}

// Validate checks every mode.
func (m Modes) Validate() error {
	for _, name := range m.Names() {
		mode := m[name]
		mode.Name = name
		if err := mode.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Names returns mode names in sorted order.
func (m Modes) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
