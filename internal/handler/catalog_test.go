package handler

import (
	"context"
	"testing"

	"trivia-api/internal/catalog"
	"trivia-api/internal/domain"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// memoryCatalog backs the real services with in-memory rows.
type memoryCatalog struct {
	questions  []*domain.Question
	categories []*domain.Category
}

func (m *memoryCatalog) ListQuestions(context.Context) ([]*domain.Question, error) {
	return m.questions, nil
}

func (m *memoryCatalog) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, q := range m.questions {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryCatalog) GetQuestion(_ context.Context, id int64) (*domain.Question, error) {
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (m *memoryCatalog) InsertQuestion(_ context.Context, q *domain.Question) (*domain.Question, error) {
	created := *q
	created.ID = int64(len(m.questions) + 1)
	m.questions = append(m.questions, &created)
	return &created, nil
}

func (m *memoryCatalog) DeleteQuestion(_ context.Context, id int64) error {
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return nil
		}
	}
	return domain.NewQuestionNotFoundError(id)
}

func (m *memoryCatalog) ListCategories(context.Context) ([]*domain.Category, error) {
	return m.categories, nil
}

func (m *memoryCatalog) FindCategory(_ context.Context, id int64) (*domain.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func newCatalogServer(t *testing.T, n int) *testServer {
	t.Helper()
	store := &memoryCatalog{categories: []*domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}}
	for i := 0; i < n; i++ {
		store.questions = append(store.questions, &domain.Question{
			ID: int64(i + 1), Question: "q", Answer: "a", Category: int64(i%2 + 1), Difficulty: 1,
		})
	}

	questions := service.NewQuestionService(store, store, nil, catalog.DefaultPageSize)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	RegisterRoutes(app, Handlers{
		Questions:  NewQuestionHandler(questions),
		Categories: NewCategoryHandler(service.NewCategoryService(store), questions),
		Quiz:       NewQuizHandler(service.NewQuizService(store, catalog.NewSelector(nil))),
	})
	return &testServer{app: app}
}

func TestCatalogRoutes_MaxIntPage(t *testing.T) {
	const maxPage = "9223372036854775807"

	t.Run("list questions is not found", func(t *testing.T) {
		s := newCatalogServer(t, 25)
		status, body := s.do(t, fiber.MethodGet, "/questions?page="+maxPage, "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("search is not found", func(t *testing.T) {
		s := newCatalogServer(t, 25)
		status, _ := s.do(t, fiber.MethodPost, "/questions?page="+maxPage, `{"searchTerm":"q"}`)
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("by category is an empty page", func(t *testing.T) {
		s := newCatalogServer(t, 25)
		status, body := s.do(t, fiber.MethodGet, "/categories/1/questions?page="+maxPage, "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, []interface{}{}, body["questions"])
		assert.Equal(t, float64(13), body["total_questions"])
	})
}

func TestCatalogRoutes_CreateThenPlay(t *testing.T) {
	s := newCatalogServer(t, 0)

	status, body := s.do(t, fiber.MethodPost, "/questions",
		`{"question":"Hue of the sky?","answer":"Blue","category":"1","difficulty":"2"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, float64(1), body["created"])

	status, body = s.do(t, fiber.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":1}}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["question"].(map[string]interface{})["id"])

	status, body = s.do(t, fiber.MethodPost, "/quizzes", `{"previous_questions":[1],"quiz_category":{"id":0}}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, body["question"])
}

func TestCatalogRoutes_DifficultyOutOfRange(t *testing.T) {
	s := newCatalogServer(t, 0)
	status, body := s.do(t, fiber.MethodPost, "/questions",
		`{"question":"q","answer":"a","category":1,"difficulty":99999999999}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]interface{}{"field": "difficulty"}, body["details"])
}
