package handler

import (
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles the route handlers. Health may be nil.
type Handlers struct {
	Questions  *QuestionHandler
	Categories *CategoryHandler
	Quiz       *QuizHandler
	Health     *HealthHandler
}

// RegisterRoutes mounts the catalog API on r.
func RegisterRoutes(r fiber.Router, h Handlers) {
	v := middleware.NewValidationMiddleware()

	r.Get("/categories", h.Categories.ListCategories)
	r.Get("/categories/:id/questions", v.ValidateID("category_id"), v.ValidatePage(), h.Categories.ListQuestionsByCategory)

	r.Get("/questions", v.ValidatePage(), h.Questions.ListQuestions)
	r.Post("/questions", v.ValidatePage(), h.Questions.CreateOrSearchQuestions)
	r.Get("/questions/:id", v.ValidateID("question_id"), h.Questions.GetQuestion)
	r.Delete("/questions/:id", v.ValidateID("question_id"), h.Questions.DeleteQuestion)

	r.Post("/quizzes", h.Quiz.NextQuestion)

	if h.Health != nil {
		r.Get("/healthz", h.Health.Health)
	}
}
