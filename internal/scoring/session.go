// Package scoring implements the quiz session scorer: per-answer scoring with
// streak bonuses, the session countdown, and the end-of-session cerises reward.
//
// A Session is a value. Every operation returns an updated copy and never
// touches the receiver, so the owner decides when a new state becomes current.
package scoring

import (
	"fmt"
	"slices"

	"cerises-quiz/internal/domain"
	"cerises-quiz/internal/normalize"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// OutcomeKind tags the result of a single submission.
type OutcomeKind int

const (
	Ignored OutcomeKind = iota
	Duplicate
	Correct
	Incorrect
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Duplicate:
		return "duplicate"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome describes what a submission did. Delta is the applied score change:
// positive for Correct, zero or negative for Incorrect.
type Outcome struct {
	Kind      OutcomeKind
	Key       string
	Delta     int
	Candidate domain.AnswerCandidate // set for Correct
}

// Session is the mutable-by-copy state of one timed play-through.
type Session struct {
	phase      Phase
	cfg        Config
	candidates *CandidateSet

	remaining  int
	score      int
	streak     int
	bestStreak int
	found      int
	wrong      int

	submitted map[string]struct{}
	foundKeys []string
}

// State is a read-only snapshot of a session for display.
type State struct {
	Phase            string   `json:"phase"`
	RemainingSeconds int      `json:"remainingSeconds"`
	Score            int      `json:"score"`
	Streak           int      `json:"streak"`
	BestStreak       int      `json:"bestStreak"`
	Found            int      `json:"found"`
	Wrong            int      `json:"wrong"`
	Total            int      `json:"total"`
	FoundKeys        []string `json:"foundKeys"`
}

// Start resets all counters and records the answer set snapshot.
func Start(cfg Config, candidates *CandidateSet) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return Session{}, err
	}
	if candidates.Total() == 0 {
		return Session{}, domain.ErrEmptyQuestion
	}
	return Session{
		phase:      PhaseRunning,
		cfg:        cfg,
		candidates: candidates,
		remaining:  cfg.DurationSeconds,
		submitted:  make(map[string]struct{}),
	}, nil
}

// Submit scores one raw answer. Empty input and input on a session that is not
// running are ignored; an already found answer is reported as a duplicate.
func (s Session) Submit(raw string) (Session, Outcome) {
	if s.phase != PhaseRunning {
		return s, Outcome{Kind: Ignored}
	}
	key := normalize.Key(raw)
	if key == "" {
		return s, Outcome{Kind: Ignored}
	}
	if _, ok := s.submitted[key]; ok {
		return s, Outcome{Kind: Duplicate, Key: key}
	}

	candidate, ok := s.candidates.Match(key)
	if !ok {
		next := s
		next.streak = 0
		next.wrong++
		next.score = max(0, s.score-s.cfg.WrongPenalty)
		return next, Outcome{Kind: Incorrect, Key: key, Delta: next.score - s.score}
	}

	next := s
	next.streak++
	next.bestStreak = max(next.bestStreak, next.streak)
	delta := s.cfg.BasePoints + s.cfg.StreakBonus[next.streak]
	next.score += delta
	next.found++

	next.submitted = make(map[string]struct{}, len(s.submitted)+1)
	for k := range s.submitted {
		next.submitted[k] = struct{}{}
	}
	next.submitted[key] = struct{}{}
	next.foundKeys = append(slices.Clip(s.foundKeys), key)

	if next.IsTerminal(next.candidates.Total()) {
		next.phase = PhaseTerminal
	}
	return next, Outcome{Kind: Correct, Key: key, Delta: delta, Candidate: candidate}
}

// Tick advances the countdown by one second. It is a no-op unless running.
func (s Session) Tick() Session {
	if s.phase != PhaseRunning {
		return s
	}
	next := s
	next.remaining = max(0, s.remaining-1)
	if next.remaining == 0 {
		next.phase = PhaseTerminal
	}
	return next
}

// IsTerminal reports whether time ran out or every answer was found.
func (s Session) IsTerminal(totalAnswers int) bool {
	return s.remaining == 0 || s.found >= totalAnswers
}

// Reward converts a finished session into cerises using cfg. When cfg has no
// per-item score the running session score is reported as the final score.
func (s Session) Reward(cfg RewardConfig) (ScoringResult, error) {
	if s.phase != PhaseTerminal {
		return ScoringResult{}, ErrSessionRunning
	}
	total := s.candidates.Total()
	result, err := ComputeReward(RewardInput{
		CorrectCount:     min(s.found, total),
		TotalItems:       total,
		RemainingSeconds: s.remaining,
		FinalStreak:      s.streak,
	}, cfg)
	if err != nil {
		return ScoringResult{}, err
	}
	if cfg.PerItemScore == 0 {
		result.FinalScore = s.score
	}
	return result, nil
}

func (s Session) Phase() Phase { return s.phase }
func (s Session) RemainingSeconds() int { return s.remaining }
func (s Session) Score() int { return s.score }
func (s Session) Streak() int { return s.streak }
func (s Session) BestStreak() int { return s.bestStreak }
func (s Session) Found() int { return s.found }
func (s Session) Wrong() int { return s.wrong }
func (s Session) Total() int { return s.candidates.Total() }
func (s Session) Submitted(key string) bool {
	_, ok := s.submitted[key]
	return ok
}

// SubmittedCount is the size of the submitted key set; it always equals Found.
func (s Session) SubmittedCount() int { return len(s.submitted) }

// State snapshots the session for display.
func (s Session) State() State {
	return State{
		Phase:            s.phase.String(),
		RemainingSeconds: s.remaining,
		Score:            s.score,
		Streak:           s.streak,
		BestStreak:       s.bestStreak,
		Found:            s.found,
		Wrong:            s.wrong,
		Total:            s.candidates.Total(),
		FoundKeys:        slices.Clone(s.foundKeys),
	}
}
