package memory

import "cerises-quiz/internal/domain"

// SampleQuestions is the built-in question set used when no database is configured.
func SampleQuestions() map[string]domain.Question {
	return map[string]domain.Question{
		"top10-ucl-scorers": {
			ID:     "top10-ucl-scorers",
			Mode:   "top10",
			Prompt: "Top 10 all-time Champions League scorers",
			Slots:  10,
			Answers: []domain.AnswerCandidate{
				{DisplayText: "Cristiano Ronaldo", Rank: 1, PointValue: 140},
				{DisplayText: "Lionel Messi", Rank: 2, PointValue: 129},
				{DisplayText: "Robert Lewandowski", Rank: 3, PointValue: 105},
				{DisplayText: "Karim Benzema", Rank: 4, PointValue: 90},
				{DisplayText: "Raúl", Rank: 5, PointValue: 71},
				{DisplayText: "Kylian Mbappé", Rank: 6, PointValue: 60},
				{DisplayText: "Thomas Müller", Rank: 7, PointValue: 57},
				{DisplayText: "Ruud van Nistelrooy", Rank: 8, PointValue: 56},
				{DisplayText: "Thierry Henry", Rank: 9, PointValue: 50},
				{DisplayText: "Alfredo Di Stéfano", Rank: 10, PointValue: 49},
			},
		},
		"logo-ligue1": {
			ID:     "logo-ligue1",
			Mode:   "logo",
			Prompt: "Name the Ligue 1 clubs from their crests",
			Answers: []domain.AnswerCandidate{
				{DisplayText: "Paris Saint-Germain"},
				{DisplayText: "Olympique de Marseille"},
				{DisplayText: "Olympique Lyonnais"},
				{DisplayText: "AS Monaco"},
				{DisplayText: "LOSC Lille"},
				{DisplayText: "Stade Rennais"},
				{DisplayText: "OGC Nice"},
				{DisplayText: "RC Lens"},
				{DisplayText: "FC Nantes"},
				{DisplayText: "Stade de Reims"},
			},
		},
		"career-zidane": {
			ID:     "career-zidane",
			Mode:   "career",
			Prompt: "Cannes, Bordeaux, Juventus, Real Madrid",
			Answers: []domain.AnswerCandidate{
				{DisplayText: "Zinédine Zidane"},
			},
		},
	}
}
