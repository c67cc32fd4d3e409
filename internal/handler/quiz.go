package handler

import (
	"encoding/json"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz play
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// NextQuestion godoc
// @Summary Draw the next quiz question
// @Description Returns a random question from quiz_category (id 0 = all) that is not in previous_questions.
// @Description question is null once every question in scope has been served.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz round state"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing previous_questions or quiz_category"
// @Router /quizzes [post]
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return domain.NewInvalidArgumentError("request body must contain previous_questions and quiz_category")
	}
	resp, err := h.service.NextQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
