package handler

import (
	"encoding/json"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question catalog HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns one page of questions with the category labels
// @Tags questions
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Success 200 {object} dto.QuestionPageResponse
// @Failure 404 {object} middleware.ErrorResponse "Page is empty"
// @Failure 422 {object} middleware.ErrorResponse "Invalid page"
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestions(c.UserContext(), middleware.Page(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionDetailResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestion(c.UserContext(), middleware.ID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	resp, err := h.service.DeleteQuestion(c.UserContext(), middleware.ID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateOrSearchQuestions godoc
// @Summary Create or search questions
// @Description A body with a searchTerm key searches question text (case-insensitive);
// @Description any other body creates a question.
// @Tags questions
// @Accept json
// @Produce json
// @Param page query int false "1-based page of search results" default(1)
// @Param request body dto.CreateQuestionRequest true "New question, or {\"searchTerm\": \"...\"}"
// @Success 200 {object} dto.SearchResponse "Search results"
// @Success 201 {object} dto.CreateQuestionResponse "Question created"
// @Failure 404 {object} middleware.ErrorResponse "No matches"
// @Failure 422 {object} middleware.ErrorResponse "Missing or invalid fields"
// @Router /questions [post]
func (h *QuestionHandler) CreateOrSearchQuestions(c *fiber.Ctx) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &probe); err != nil || probe == nil {
		return domain.NewValidationError("request body must be a JSON object")
	}

	if _, ok := probe["searchTerm"]; ok {
		var req dto.SearchQuestionsRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return domain.NewValidationError("searchTerm must be a string").WithContext("field", "searchTerm")
		}
		resp, err := h.service.SearchQuestions(c.UserContext(), req.SearchTerm, middleware.Page(c))
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}

	var req dto.CreateQuestionRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return domain.NewValidationError("invalid question payload: " + err.Error())
	}
	resp, err := h.service.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
