package service

import (
	"context"
	"fmt"
	"strings"

	"trivia-api/internal/catalog"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the interface for question catalog operations
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error)
	GetQuestion(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	SearchQuestions(ctx context.Context, term string, page int) (*dto.SearchResponse, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
}

type questionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	tx         domain.TransactionManager
	pageSize   int
}

// NewQuestionService creates a new QuestionService. tx may be nil, in which case
// create runs without a transaction.
func NewQuestionService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	tx domain.TransactionManager,
	pageSize int,
) QuestionService {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &questionService{
		questions:  questions,
		categories: categories,
		tx:         tx,
		pageSize:   pageSize,
	}
}

// ListQuestions implements QuestionService
func (s *questionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
	var (
		questions  []*domain.Question
		categories []*domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.ListQuestions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeError("list questions", err)
	}

	current := catalog.Paginate(questions, page, s.pageSize)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No questions on page %d", page)).WithContext("page", page)
	}

	return &dto.QuestionPageResponse{
		Success:        true,
		Questions:      toQuestionResponses(current),
		TotalQuestions: len(questions),
		Categories:     catalog.CategoryLabels(categories),
	}, nil
}

// GetQuestion implements QuestionService
func (s *questionService) GetQuestion(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error) {
	q, err := s.questions.GetQuestion(ctx, id)
	if err != nil {
		return nil, storeError("get question", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return &dto.QuestionDetailResponse{Success: true, Question: toQuestionResponse(q)}, nil
}

// CreateQuestion implements QuestionService
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("request body is required")
	}
	switch {
	case strings.TrimSpace(req.Question) == "":
		return nil, domain.NewMissingFieldError("question")
	case strings.TrimSpace(req.Answer) == "":
		return nil, domain.NewMissingFieldError("answer")
	case !req.Category.Set:
		return nil, domain.NewMissingFieldError("category")
	case !req.Difficulty.Set:
		return nil, domain.NewMissingFieldError("difficulty")
	}

	// range-check before narrowing to int
	if req.Difficulty.Value < 1 || req.Difficulty.Value > domain.MaxDifficulty {
		return nil, domain.NewValidationError(fmt.Sprintf("difficulty must be between 1 and %d", domain.MaxDifficulty)).
			WithContext("field", "difficulty")
	}
	question := domain.NewQuestion(req.Question, req.Answer, req.Category.Value, int(req.Difficulty.Value))
	if err := question.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Question
	insert := func(ctx context.Context) error {
		category, err := s.categories.FindCategory(ctx, question.Category)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.NewValidationError(fmt.Sprintf("category %d does not exist", question.Category)).
				WithContext("field", "category")
		}
		created, err = s.questions.InsertQuestion(ctx, question)
		return err
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithTransaction(ctx, insert)
	} else {
		err = insert(ctx)
	}
	if err != nil {
		return nil, storeError("create question", err)
	}

	logger.Get().Info("Question created", zap.Int64("question_id", created.ID), zap.Int64("category", created.Category))
	return &dto.CreateQuestionResponse{
		Success: true,
		Created: created.ID,
		Message: "Question successfully created",
	}, nil
}

// DeleteQuestion implements QuestionService
func (s *questionService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		return nil, storeError("delete question", err)
	}
	logger.Get().Info("Question deleted", zap.Int64("question_id", id))
	return &dto.DeleteQuestionResponse{
		Success: true,
		Deleted: id,
		Message: "Question successfully deleted",
	}, nil
}

// SearchQuestions implements QuestionService
func (s *questionService) SearchQuestions(ctx context.Context, term string, page int) (*dto.SearchResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.NewMissingFieldError("searchTerm")
	}

	questions, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, storeError("search questions", err)
	}

	matches, err := catalog.Search(questions, term)
	if err != nil {
		return nil, err
	}
	current := catalog.Paginate(matches, page, s.pageSize)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No questions match %q", term)).WithContext("search_term", term)
	}

	return &dto.SearchResponse{
		Success:        true,
		Questions:      toQuestionResponses(current),
		TotalQuestions: len(matches),
		SearchTerm:     term,
	}, nil
}

// ListQuestionsByCategory implements QuestionService
func (s *questionService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	category, err := catalog.ResolveCategory(ctx, s.categories, categoryID)
	if domain.IsCode(err, domain.CodeNotFound) {
		return nil, domain.NewInvalidArgumentError(fmt.Sprintf("Category %d does not exist", categoryID)).
			WithContext("category_id", categoryID)
	}
	if err != nil {
		return nil, storeError("resolve category", err)
	}

	questions, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, storeError("list questions by category", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       toQuestionResponses(catalog.Paginate(questions, page, s.pageSize)),
		TotalQuestions:  len(questions),
		CurrentCategory: category.Type,
	}, nil
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = toQuestionResponse(q)
	}
	return out
}
