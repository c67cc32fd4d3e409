package domain

import (
	"math"
	"strings"
)

// Category groups questions under a display label.
type Category struct {
	ID   int64
	Type string
}

// MaxDifficulty is the largest difficulty every backend's INTEGER column can hold.
const MaxDifficulty = math.MaxInt32

// Question is a single trivia question.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a new Question instance. The id is assigned by the store.
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewMissingFieldError("question")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return NewMissingFieldError("answer")
	}
	if q.Category <= 0 {
		return NewMissingFieldError("category")
	}
	if q.Difficulty <= 0 || q.Difficulty > MaxDifficulty {
		return NewValidationError("difficulty must be between 1 and 2147483647").WithContext("field", "difficulty")
	}
	return nil
}

// Validate validates the category
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Type) == "" {
		return NewMissingFieldError("type")
	}
	return nil
}
