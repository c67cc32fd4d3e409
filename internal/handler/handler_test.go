package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"trivia-api/internal/config"
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionPageResponse), args.Error(1)
}

func (m *MockQuestionService) GetQuestion(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionDetailResponse), args.Error(1)
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateQuestionResponse), args.Error(1)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteQuestionResponse), args.Error(1)
}

func (m *MockQuestionService) SearchQuestions(ctx context.Context, term string, page int) (*dto.SearchResponse, error) {
	args := m.Called(ctx, term, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchResponse), args.Error(1)
}

func (m *MockQuestionService) ListQuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	args := m.Called(ctx, categoryID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryQuestionsResponse), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoriesResponse), args.Error(1)
}

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) NextQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
func (p stubPinger) Ping(context.Context) error        { return p.err }

type testServer struct {
	app        *fiber.App
	questions  *MockQuestionService
	categories *MockCategoryService
	quiz       *MockQuizService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		questions:  new(MockQuestionService),
		categories: new(MockCategoryService),
		quiz:       new(MockQuizService),
	}
	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	RegisterRoutes(s.app, Handlers{
		Questions:  NewQuestionHandler(s.questions),
		Categories: NewCategoryHandler(s.categories, s.questions),
		Quiz:       NewQuizHandler(s.quiz),
		Health:     NewHealthHandler(stubPinger{}, nil),
	})
	t.Cleanup(func() {
		s.questions.AssertExpectations(t)
		s.categories.AssertExpectations(t)
		s.quiz.AssertExpectations(t)
	})
	return s
}

func (s *testServer) do(t *testing.T, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)
	s.categories.On("ListCategories", mock.Anything).Return(&dto.CategoriesResponse{
		Success:    true,
		Categories: map[int64]string{1: "Science", 2: "Art"},
	}, nil)

	status, body := s.do(t, fiber.MethodGet, "/categories", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"1": "Science", "2": "Art"}, body["categories"])
}

func TestListCategories_StoreUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.categories.On("ListCategories", mock.Anything).
		Return(nil, domain.NewUnavailableError("catalog store unavailable", errors.New("dial tcp")))

	status, body := s.do(t, fiber.MethodGet, "/categories", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(503), body["error"])
	assert.Equal(t, "UNAVAILABLE", body["code"])
}

func TestListQuestions(t *testing.T) {
	t.Run("default page is 1", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("ListQuestions", mock.Anything, 1).Return(&dto.QuestionPageResponse{
			Success:        true,
			Questions:      []dto.QuestionResponse{{ID: 5, Question: "q", Answer: "a", Category: 1, Difficulty: 2}},
			TotalQuestions: 1,
			Categories:     map[int64]string{1: "Science"},
		}, nil)

		status, body := s.do(t, fiber.MethodGet, "/questions", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, float64(1), body["total_questions"])
		assert.Len(t, body["questions"], 1)
	})

	t.Run("explicit page is forwarded", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("ListQuestions", mock.Anything, 3).
			Return(nil, domain.NewNotFoundError("no questions on page 3"))

		status, body := s.do(t, fiber.MethodGet, "/questions?page=3", "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("invalid page never reaches the service", func(t *testing.T) {
		for _, page := range []string{"abc", "0", "-2"} {
			s := newTestServer(t)
			status, body := s.do(t, fiber.MethodGet, "/questions?page="+page, "")
			assert.Equal(t, fiber.StatusUnprocessableEntity, status, "page=%s", page)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
		}
	})
}

func TestGetQuestion(t *testing.T) {
	s := newTestServer(t)
	s.questions.On("GetQuestion", mock.Anything, int64(9)).Return(&dto.QuestionDetailResponse{
		Success:  true,
		Question: dto.QuestionResponse{ID: 9, Question: "q", Answer: "a", Category: 3, Difficulty: 1},
	}, nil)
	s.questions.On("GetQuestion", mock.Anything, int64(404)).Return(nil, domain.NewQuestionNotFoundError(404))

	status, body := s.do(t, fiber.MethodGet, "/questions/9", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(9), body["question"].(map[string]interface{})["id"])

	status, _ = s.do(t, fiber.MethodGet, "/questions/404", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(t, fiber.MethodGet, "/questions/nine", "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestServer(t)
	s.questions.On("DeleteQuestion", mock.Anything, int64(7)).Return(&dto.DeleteQuestionResponse{
		Success: true, Deleted: 7, Message: "Question 7 deleted",
	}, nil)
	s.questions.On("DeleteQuestion", mock.Anything, int64(8)).Return(nil, domain.NewQuestionNotFoundError(8))

	status, body := s.do(t, fiber.MethodDelete, "/questions/7", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(7), body["deleted"])

	status, body = s.do(t, fiber.MethodDelete, "/questions/8", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestCreateQuestion(t *testing.T) {
	t.Run("created with numeric strings", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(req *dto.CreateQuestionRequest) bool {
			return req.Question == "Who painted the Mona Lisa?" &&
				req.Category == dto.NewFlexInt(2) && req.Difficulty == dto.NewFlexInt(3)
		})).Return(&dto.CreateQuestionResponse{Success: true, Created: 31, Message: "Question created"}, nil)

		status, body := s.do(t, fiber.MethodPost, "/questions",
			`{"question":"Who painted the Mona Lisa?","answer":"Leonardo","category":"2","difficulty":3}`)
		assert.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, float64(31), body["created"])
	})

	t.Run("service validation error becomes 422 with details", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("CreateQuestion", mock.Anything, mock.Anything).
			Return(nil, domain.NewMissingFieldError("answer"))

		status, body := s.do(t, fiber.MethodPost, "/questions", `{"question":"q"}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, map[string]interface{}{"field": "answer"}, body["details"])
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, body := range []string{`not json`, `[1,2]`, `null`, `{"question":"q","category":true}`} {
			s := newTestServer(t)
			status, resp := s.do(t, fiber.MethodPost, "/questions", body)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status, body)
			assert.Equal(t, "VALIDATION_ERROR", resp["code"], body)
		}
	})
}

func TestSearchQuestions(t *testing.T) {
	t.Run("body with searchTerm searches", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("SearchQuestions", mock.Anything, "title", 2).Return(&dto.SearchResponse{
			Success:        true,
			Questions:      []dto.QuestionResponse{{ID: 2, Question: "Whose autobiography is entitled?"}},
			TotalQuestions: 11,
			SearchTerm:     "title",
		}, nil)

		status, body := s.do(t, fiber.MethodPost, "/questions?page=2", `{"searchTerm":"title"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "title", body["search_term"])
		assert.Equal(t, float64(11), body["total_questions"])
	})

	t.Run("blank term is rejected by the service", func(t *testing.T) {
		s := newTestServer(t)
		s.questions.On("SearchQuestions", mock.Anything, "", 1).Return(nil, domain.NewMissingFieldError("searchTerm"))

		status, _ := s.do(t, fiber.MethodPost, "/questions", `{"searchTerm":""}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run("non-string term", func(t *testing.T) {
		s := newTestServer(t)
		status, body := s.do(t, fiber.MethodPost, "/questions", `{"searchTerm":42}`)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, map[string]interface{}{"field": "searchTerm"}, body["details"])
	})
}

func TestListQuestionsByCategory(t *testing.T) {
	s := newTestServer(t)
	s.questions.On("ListQuestionsByCategory", mock.Anything, int64(4), 1).Return(&dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       []dto.QuestionResponse{{ID: 12, Category: 4}},
		TotalQuestions:  1,
		CurrentCategory: "History",
	}, nil)
	s.questions.On("ListQuestionsByCategory", mock.Anything, int64(99), 1).
		Return(nil, domain.NewInvalidArgumentError("category 99 does not exist"))

	status, body := s.do(t, fiber.MethodGet, "/categories/4/questions", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "History", body["current_category"])

	status, body = s.do(t, fiber.MethodGet, "/categories/99/questions", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ARGUMENT", body["code"])
}

func TestNextQuizQuestion(t *testing.T) {
	t.Run("served", func(t *testing.T) {
		s := newTestServer(t)
		s.quiz.On("NextQuestion", mock.Anything, mock.MatchedBy(func(req *dto.QuizRequest) bool {
			return len(req.PreviousQuestions) == 2 && req.QuizCategory != nil && req.QuizCategory.ID == dto.NewFlexInt(1)
		})).Return(&dto.QuizResponse{
			Success:  true,
			Question: &dto.QuestionResponse{ID: 20, Question: "What is the heaviest organ?", Category: 1},
		}, nil)

		status, body := s.do(t, fiber.MethodPost, "/quizzes",
			`{"previous_questions":[21,22],"quiz_category":{"id":"1","type":"Science"}}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, float64(20), body["question"].(map[string]interface{})["id"])
	})

	t.Run("exhausted returns a null question", func(t *testing.T) {
		s := newTestServer(t)
		s.quiz.On("NextQuestion", mock.Anything, mock.Anything).Return(&dto.QuizResponse{Success: true}, nil)

		status, body := s.do(t, fiber.MethodPost, "/quizzes",
			`{"previous_questions":[20,21,22],"quiz_category":{"id":1}}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["success"])
		assert.Contains(t, body, "question")
		assert.Nil(t, body["question"])
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTestServer(t)
		s.quiz.On("NextQuestion", mock.Anything, mock.Anything).
			Return(nil, domain.NewInvalidArgumentError("previous_questions is required"))

		status, body := s.do(t, fiber.MethodPost, "/quizzes", `{"quiz_category":{"id":0}}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "INVALID_ARGUMENT", body["code"])
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)
		status, _ := s.do(t, fiber.MethodPost, "/quizzes", `{"previous_questions":"1,2"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		cache      CachePinger
		wantStatus int
		wantChecks map[string]interface{}
	}{
		{
			name:       "healthy without cache",
			db:         stubPinger{},
			wantStatus: fiber.StatusOK,
			wantChecks: map[string]interface{}{"database": "ok", "cache": "disabled"},
		},
		{
			name:       "cache down is degraded but ok",
			db:         stubPinger{},
			cache:      stubPinger{err: errors.New("connection refused")},
			wantStatus: fiber.StatusOK,
			wantChecks: map[string]interface{}{"database": "ok", "cache": "unreachable"},
		},
		{
			name:       "database down",
			db:         stubPinger{err: errors.New("database is locked")},
			cache:      stubPinger{},
			wantStatus: fiber.StatusServiceUnavailable,
			wantChecks: map[string]interface{}{"database": "database is locked", "cache": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/healthz", NewHealthHandler(tt.db, tt.cache).Health)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantChecks, body["checks"])
		})
	}
}
