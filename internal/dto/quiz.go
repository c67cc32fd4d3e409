package dto

// QuizCategory is the scope of a quiz round. ID 0 covers every category.
type QuizCategory struct {
	ID   FlexInt `json:"id" swaggertype:"integer"`
	Type string  `json:"type"`
}

// QuizRequest is the body of POST /quizzes
// @Description previous_questions and quiz_category are both required
type QuizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuizResponse carries the next question, or null once the round is exhausted
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
