package course

import (
	"context"
	"errors"
	"strconv"
)

// ErrModuleNotFound is returned when a course has no module with the
// requested id.
var ErrModuleNotFound = errors.New("module not found")

// QuestionResult is the outcome of one graded question.
type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// GradeResult is a graded quiz submission.
type GradeResult struct {
	ModuleID        int              `json:"module_id"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	ScorePercentage float64          `json:"score_percentage"`
	Results         []QuestionResult `json:"results"`
}

// Grade scores answers, keyed by zero-based question index, against q.
// Unanswered questions count as wrong.
func Grade(moduleID int, q Quiz, answers map[string]string) GradeResult {
	res := GradeResult{
		ModuleID:       moduleID,
		TotalQuestions: len(q.Questions),
		Results:        make([]QuestionResult, 0, len(q.Questions)),
	}
	for i, question := range q.Questions {
		given := answers[strconv.Itoa(i)]
		ok := given != "" && given == question.Answer
		if ok {
			res.CorrectAnswers++
		}
		res.Results = append(res.Results, QuestionResult{
			QuestionID:    i,
			Question:      question.Question,
			UserAnswer:    given,
			CorrectAnswer: question.Answer,
			IsCorrect:     ok,
			Explanation:   question.Explanation,
		})
	}
	if res.TotalQuestions > 0 {
		res.ScorePercentage = float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100
	}
	return res
}

// GradeQuiz generates (or loads) the course for topic and grades the quiz of
// module moduleID.
func (s *Service) GradeQuiz(ctx context.Context, topic string, moduleID int, answers map[string]string) (GradeResult, error) {
	c, err := s.Generate(ctx, topic)
	if err != nil {
		return GradeResult{}, err
	}
	m, ok := c.Module(moduleID)
	if !ok {
		return GradeResult{}, ErrModuleNotFound
	}
	return Grade(moduleID, m.Quiz, answers), nil
}
