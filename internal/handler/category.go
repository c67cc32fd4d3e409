package handler

import (
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categories service.CategoryService
	questions  service.QuestionService
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(categories service.CategoryService, questions service.QuestionService) *CategoryHandler {
	return &CategoryHandler{categories: categories, questions: questions}
}

// ListCategories godoc
// @Summary List categories
// @Description Returns a map of category id to label
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	resp, err := h.categories.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestionsByCategory godoc
// @Summary List questions of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "1-based page number" default(1)
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse "Unknown category"
// @Router /categories/{id}/questions [get]
func (h *CategoryHandler) ListQuestionsByCategory(c *fiber.Ctx) error {
	resp, err := h.questions.ListQuestionsByCategory(c.UserContext(), middleware.ID(c), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
