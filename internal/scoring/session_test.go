package scoring

import (
	"errors"
	"testing"

	"cerises-quiz/internal/domain"
)

func top10Config() Config {
	return Config{
		DurationSeconds: 60,
		BasePoints:      15,
		WrongPenalty:    5,
		StreakBonus:     map[int]int{3: 10, 6: 15, 9: 10, 10: 15},
	}
}

func scorers() *CandidateSet {
	return NewCandidateSet([]domain.AnswerCandidate{
		{DisplayText: "Cristiano Ronaldo", Rank: 1, PointValue: 140},
		{DisplayText: "Lionel Messi", Rank: 2, PointValue: 129},
		{DisplayText: "Robert Lewandowski", Rank: 3, PointValue: 101},
		{DisplayText: "Karim Benzema", Rank: 4, PointValue: 90},
		{DisplayText: "Raúl", Rank: 5, PointValue: 71},
		{DisplayText: "Kylian Mbappé", NormalizedKey: "Kylian Mbappe", Rank: 6, PointValue: 56},
	}, 0)
}

func mustStart(t *testing.T, cfg Config, set *CandidateSet) Session {
	t.Helper()
	s, err := Start(cfg, set)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestStreakBonusSequence(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())

	answers := []string{"cristiano ronaldo", "Lionel Messi", "ROBERT lewandowski", "Karim Benzema"}
	want := []int{15, 15, 25, 15}
	for i, raw := range answers {
		var out Outcome
		s, out = s.Submit(raw)
		if out.Kind != Correct {
			t.Fatalf("answer %d: expected correct, got %s", i, out.Kind)
		}
		if out.Delta != want[i] {
			t.Fatalf("answer %d: expected delta %d, got %d", i, want[i], out.Delta)
		}
	}
	if s.Score() != 70 {
		t.Fatalf("expected cumulative score 70, got %d", s.Score())
	}
	if s.Streak() != 4 || s.Found() != 4 {
		t.Fatalf("expected streak 4 found 4, got streak %d found %d", s.Streak(), s.Found())
	}
}

func TestDuplicateIgnoresCaseAndAccents(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())

	s, first := s.Submit("Kylian Mbappé")
	if first.Kind != Correct {
		t.Fatalf("expected correct, got %s", first.Kind)
	}
	scoreAfterFirst := s.Score()

	s, second := s.Submit("  KYLIAN   mbappe ")
	if second.Kind != Duplicate {
		t.Fatalf("expected duplicate, got %s", second.Kind)
	}
	if s.Score() != scoreAfterFirst || s.Found() != 1 || s.Streak() != 1 {
		t.Fatalf("duplicate changed state: score %d found %d streak %d", s.Score(), s.Found(), s.Streak())
	}
}

func TestEmptyInputIsIgnored(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())
	for _, raw := range []string{"", "   ", "\t\n"} {
		next, out := s.Submit(raw)
		if out.Kind != Ignored {
			t.Fatalf("expected ignored for %q, got %s", raw, out.Kind)
		}
		if next.State().Score != s.State().Score || next.Streak() != s.Streak() {
			t.Fatalf("ignored input changed state")
		}
	}
}

func TestIncorrectResetsStreakAndFloorsScore(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())

	s, _ = s.Submit("Lionel Messi")
	s, _ = s.Submit("Raul")
	if s.Streak() != 2 || s.Score() != 30 {
		t.Fatalf("expected streak 2 score 30, got %d %d", s.Streak(), s.Score())
	}

	s, out := s.Submit("Zlatan")
	if out.Kind != Incorrect || out.Delta != -5 {
		t.Fatalf("expected incorrect with delta -5, got %s %d", out.Kind, out.Delta)
	}
	if s.Streak() != 0 || s.Score() != 25 {
		t.Fatalf("expected streak 0 score 25, got %d %d", s.Streak(), s.Score())
	}

	for i := 0; i < 20; i++ {
		s, out = s.Submit("nobody")
		if out.Kind != Incorrect {
			t.Fatalf("expected incorrect, got %s", out.Kind)
		}
		if s.Score() < 0 {
			t.Fatalf("score went negative: %d", s.Score())
		}
	}
	if s.Score() != 0 {
		t.Fatalf("expected score floored at 0, got %d", s.Score())
	}
	if out.Delta != 0 {
		t.Fatalf("expected zero delta once floored, got %d", out.Delta)
	}
	if s.Wrong() != 21 {
		t.Fatalf("expected 21 wrong answers, got %d", s.Wrong())
	}
}

func TestSubmittedKeysMatchFoundCount(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())
	inputs := []string{"Messi", "Lionel Messi", "lionel messi", "", "Raúl", "raul", "Pelé", "Karim Benzema", "  "}
	for _, raw := range inputs {
		s, _ = s.Submit(raw)
		if s.SubmittedCount() != s.Found() {
			t.Fatalf("after %q: submitted %d != found %d", raw, s.SubmittedCount(), s.Found())
		}
		if s.Streak() > s.Found() {
			t.Fatalf("after %q: streak %d exceeds found %d", raw, s.Streak(), s.Found())
		}
	}
	if s.Found() != 3 {
		t.Fatalf("expected 3 found, got %d", s.Found())
	}
}

func TestSubmitDoesNotMutateReceiver(t *testing.T) {
	before := mustStart(t, top10Config(), scorers())
	after, _ := before.Submit("Lionel Messi")
	if before.Found() != 0 || before.Submitted("lionel messi") {
		t.Fatalf("receiver mutated by submit")
	}
	if !after.Submitted("lionel messi") {
		t.Fatalf("expected key recorded on returned session")
	}
}

func TestTickCountsDownToTerminal(t *testing.T) {
	cfg := top10Config()
	cfg.DurationSeconds = 2
	s := mustStart(t, cfg, scorers())

	s = s.Tick()
	if s.RemainingSeconds() != 1 || s.Phase() != PhaseRunning {
		t.Fatalf("expected 1s left and running, got %d %s", s.RemainingSeconds(), s.Phase())
	}
	s = s.Tick()
	if s.RemainingSeconds() != 0 || s.Phase() != PhaseTerminal {
		t.Fatalf("expected terminal at 0, got %d %s", s.RemainingSeconds(), s.Phase())
	}
	s = s.Tick()
	if s.RemainingSeconds() != 0 {
		t.Fatalf("tick after terminal underflowed: %d", s.RemainingSeconds())
	}
	if !s.IsTerminal(s.Total()) {
		t.Fatalf("expected terminal")
	}

	_, out := s.Submit("Lionel Messi")
	if out.Kind != Ignored {
		t.Fatalf("expected submissions after the end to be ignored, got %s", out.Kind)
	}
}

func TestFindingAllAnswersEndsSession(t *testing.T) {
	set := NewCandidateSet([]domain.AnswerCandidate{
		{DisplayText: "Brazil"},
		{DisplayText: "Germany"},
	}, 0)
	s := mustStart(t, top10Config(), set)

	s, _ = s.Submit("brazil")
	if s.Phase() != PhaseRunning {
		t.Fatalf("expected running after first answer")
	}
	s, _ = s.Submit("germany")
	if s.Phase() != PhaseTerminal || !s.IsTerminal(2) {
		t.Fatalf("expected terminal once all answers found")
	}
	if s.RemainingSeconds() != 60 {
		t.Fatalf("expected timer untouched, got %d", s.RemainingSeconds())
	}
}

func TestSlotsOverrideTotal(t *testing.T) {
	set := NewCandidateSet([]domain.AnswerCandidate{{DisplayText: "A"}, {DisplayText: "B"}, {DisplayText: "C"}}, 2)
	if set.Total() != 2 {
		t.Fatalf("expected 2 slots, got %d", set.Total())
	}
}

func TestStartValidatesConfig(t *testing.T) {
	cases := []Config{
		{DurationSeconds: 0, BasePoints: 15},
		{DurationSeconds: 60, BasePoints: -1},
		{DurationSeconds: 60, BasePoints: 15, WrongPenalty: -5},
		{DurationSeconds: 60, BasePoints: 15, StreakBonus: map[int]int{0: 5}},
	}
	for i, cfg := range cases {
		if _, err := Start(cfg, scorers()); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: expected invalid config, got %v", i, err)
		}
	}
	if _, err := Start(top10Config(), NewCandidateSet(nil, 0)); !errors.Is(err, domain.ErrEmptyQuestion) {
		t.Fatalf("expected empty question error, got %v", err)
	}
}

func TestRewardRequiresTerminal(t *testing.T) {
	s := mustStart(t, top10Config(), scorers())
	if _, err := s.Reward(DefaultModes()[ModeTop10].Reward); !errors.Is(err, ErrSessionRunning) {
		t.Fatalf("expected running error, got %v", err)
	}
}

func TestSessionRewardKeepsRunningScore(t *testing.T) {
	cfg := top10Config()
	cfg.DurationSeconds = 1
	s := mustStart(t, cfg, scorers())
	s, _ = s.Submit("Lionel Messi")
	s, _ = s.Submit("Raúl")
	s = s.Tick()

	res, err := s.Reward(RewardConfig{BasePool: 100, ErrorPenalty: 10, Cap: 150})
	if err != nil {
		t.Fatalf("reward: %v", err)
	}
	if res.FinalScore != 30 {
		t.Fatalf("expected running score 30, got %d", res.FinalScore)
	}
	// 4 of 6 answers missing.
	if res.Cerises != 60 {
		t.Fatalf("expected 60 cerises, got %d", res.Cerises)
	}
}
