package scoring

import (
	"cerises-quiz/internal/domain"
	"cerises-quiz/internal/normalize"
)

// CandidateSet is the immutable answer set of one question.
type CandidateSet struct {
	candidates []domain.AnswerCandidate
	byKey      map[string]int
	total      int
}

// NewCandidateSet indexes candidates by normalized key. Candidates without a
// key get one derived from their display text. slots overrides the number of
// answers needed to complete the question when positive.
//
// Distinct candidates sharing a key are not rejected; the first one wins.
func NewCandidateSet(candidates []domain.AnswerCandidate, slots int) *CandidateSet {
	set := &CandidateSet{
		candidates: make([]domain.AnswerCandidate, len(candidates)),
		byKey:      make(map[string]int, len(candidates)),
		total:      len(candidates),
	}
	if slots > 0 {
		set.total = slots
	}
	for i, c := range candidates {
		if c.NormalizedKey == "" {
			c.NormalizedKey = normalize.Key(c.DisplayText)
		} else {
			c.NormalizedKey = normalize.Key(c.NormalizedKey)
		}
		set.candidates[i] = c
		if _, ok := set.byKey[c.NormalizedKey]; !ok && c.NormalizedKey != "" {
			set.byKey[c.NormalizedKey] = i
		}
	}
	return set
}

// FromQuestion builds the candidate set of q.
func FromQuestion(q domain.Question) *CandidateSet {
	return NewCandidateSet(q.Answers, q.Slots)
}

// Match looks up a normalized key.
func (s *CandidateSet) Match(key string) (domain.AnswerCandidate, bool) {
	if s == nil {
		return domain.AnswerCandidate{}, false
	}
	idx, ok := s.byKey[key]
	if !ok {
		return domain.AnswerCandidate{}, false
	}
	return s.candidates[idx], true
}

// Total is the number of correct answers that completes the question.
func (s *CandidateSet) Total() int {
	if s == nil {
		return 0
	}
	return s.total
}

// Candidates returns a copy of the candidates in load order.
func (s *CandidateSet) Candidates() []domain.AnswerCandidate {
	if s == nil {
		return nil
	}
	out := make([]domain.AnswerCandidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}
