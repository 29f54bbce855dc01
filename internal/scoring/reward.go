package scoring

import "fmt"

// RewardInput are the session counters a reward is computed from.
type RewardInput struct {
	CorrectCount     int
	TotalItems       int
	RemainingSeconds int
	FinalStreak      int
}

// ScoringResult is the end-of-session breakdown shown to the player.
type ScoringResult struct {
	FinalScore  int `json:"finalScore"`
	Cerises     int `json:"cerises"`
	StreakBonus int `json:"streakBonus"`
	TimeBonus   int `json:"timeBonus"`
}

// ComputeReward converts session counters into cerises.
//
// The pool shrinks by ErrorPenalty per wrong or unanswered item (never below
// zero), then the highest streak tier and the time bonus are added and the sum
// is clamped to [0, Cap]. StreakBonus and TimeBonus are reported as computed,
// so when the cap binds they no longer add up to Cerises.
func ComputeReward(in RewardInput, cfg RewardConfig) (ScoringResult, error) {
	if err := cfg.Validate(); err != nil {
		return ScoringResult{}, err
	}
	if in.TotalItems <= 0 {
		return ScoringResult{}, fmt.Errorf("%w: total items must be positive, got %d", ErrInvalidRewardInput, in.TotalItems)
	}
	if in.CorrectCount < 0 || in.CorrectCount > in.TotalItems {
		return ScoringResult{}, fmt.Errorf("%w: correct count %d outside [0,%d]", ErrInvalidRewardInput, in.CorrectCount, in.TotalItems)
	}
	if in.RemainingSeconds < 0 || in.FinalStreak < 0 {
		return ScoringResult{}, fmt.Errorf("%w: negative remaining seconds or streak", ErrInvalidRewardInput)
	}

	errs := in.TotalItems - in.CorrectCount
	cerises := max(0, cfg.BasePool-errs*cfg.ErrorPenalty)

	streakBonus := cfg.streakTierBonus(in.FinalStreak)
	cerises += streakBonus

	timeBonus := in.RemainingSeconds * cfg.TimeBonusPerSecond
	if cfg.TimeBonusCap > 0 {
		timeBonus = min(timeBonus, cfg.TimeBonusCap)
	}
	cerises += timeBonus

	cerises = max(0, cerises)
	if cfg.Cap > 0 {
		cerises = min(cerises, cfg.Cap)
	}

	return ScoringResult{
		FinalScore:  in.CorrectCount * cfg.PerItemScore,
		Cerises:     cerises,
		StreakBonus: streakBonus,
		TimeBonus:   timeBonus,
	}, nil
}
