package service

import (
	"context"

	"trivia-api/internal/catalog"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz play
type QuizService interface {
	NextQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	questions domain.QuestionRepository
	selector  *catalog.Selector
}

// NewQuizService creates a new QuizService
func NewQuizService(questions domain.QuestionRepository, selector *catalog.Selector) QuizService {
	if selector == nil {
		selector = catalog.NewSelector(nil)
	}
	return &quizService{questions: questions, selector: selector}
}

// NextQuestion implements QuizService. An exhausted round is a success with a null question.
func (s *quizService) NextQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidArgumentError("request body is required")
	}

	q, err := s.selector.NextQuestion(ctx, quizScope(req.QuizCategory), req.PreviousQuestions, s.questions)
	switch {
	case err == nil:
		metrics.QuizDraws.WithLabelValues(metrics.OutcomeServed).Inc()
		resp := toQuestionResponse(q)
		return &dto.QuizResponse{Success: true, Question: &resp}, nil
	case domain.IsCode(err, domain.CodeExhausted):
		metrics.QuizDraws.WithLabelValues(metrics.OutcomeExhausted).Inc()
		logger.Get().Debug("Quiz round exhausted", zap.Int("previous", len(req.PreviousQuestions)))
		return &dto.QuizResponse{Success: true, Question: nil}, nil
	case domain.IsCode(err, domain.CodeInvalidArgument):
		return nil, err
	default:
		metrics.QuizDraws.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, storeError("next quiz question", err)
	}
}

// quizScope maps the wire category to a selector scope. id 0 means every category.
func quizScope(c *dto.QuizCategory) *catalog.Scope {
	if c == nil || !c.ID.Set {
		return nil
	}
	if c.ID.Value == 0 {
		scope := catalog.AllCategories
		return &scope
	}
	scope := catalog.InCategory(c.ID.Value)
	return &scope
}
