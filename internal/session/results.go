package session

// NoAnswer is recorded in the review for questions the user never answered.
const NoAnswer = "No answer"

// Performance tiers by score percentage.
const (
	TierExcellent        = "excellent"
	TierGood             = "good"
	TierNeedsImprovement = "needs_improvement"
)

// ReviewItem is the per-question breakdown shown on the results page.
type ReviewItem struct {
	Question       string `json:"question"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Correct        bool   `json:"correct"`
	Explanation    string `json:"explanation"`
}

// Result is the scored outcome of a completed quiz.
type Result struct {
	Correct    int          `json:"correct"`
	Total      int          `json:"total"`
	Percentage float64      `json:"percentage"`
	Tier       string       `json:"tier"`
	Review     []ReviewItem `json:"review"`
}

// TierFor maps a percentage score to its performance tier.
func TierFor(percentage float64) string {
	switch {
	case percentage >= 80:
		return TierExcellent
	case percentage >= 60:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// Results scores the quiz. An answer is correct only when it matches the
// correct option exactly. Unanswered questions count as wrong and appear
// in the review as NoAnswer.
func (s *State) Results() (Result, error) {
	if len(s.Questions) == 0 {
		return Result{}, ErrNoQuiz
	}
	if !s.QuizCompleted {
		return Result{}, ErrWrongPage
	}

	res := Result{Total: len(s.Questions), Review: make([]ReviewItem, 0, len(s.Questions))}
	for i, q := range s.Questions {
		selected, ok := s.Answers[i]
		if !ok {
			selected = NoAnswer
		}
		correct := ok && selected == q.CorrectAnswer
		if correct {
			res.Correct++
		}
		res.Review = append(res.Review, ReviewItem{
			Question:       q.Question,
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
			Correct:        correct,
			Explanation:    q.Explanation,
		})
	}
	res.Percentage = float64(res.Correct) / float64(res.Total) * 100
	res.Tier = TierFor(res.Percentage)
	return res, nil
}
