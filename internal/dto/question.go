package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON number or a numeric string. null and "" leave it unset.
type FlexInt struct {
	Value int64
	Set   bool
}

// NewFlexInt returns a set FlexInt.
func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Set: true}
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = FlexInt{}
			return nil
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*f = FlexInt{Value: v, Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, f.Value, 10), nil
}

// QuestionResponse is the wire shape of a question
// @Description Trivia question
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoriesResponse maps category id to label
type CategoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

// QuestionPageResponse is returned by GET /questions
type QuestionPageResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	Categories     map[int64]string   `json:"categories"`
}

// SearchResponse is returned by POST /questions with a searchTerm
type SearchResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	SearchTerm     string             `json:"search_term"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory string             `json:"current_category"`
}

// QuestionDetailResponse is returned by GET /questions/{id}
type QuestionDetailResponse struct {
	Success  bool             `json:"success"`
	Question QuestionResponse `json:"question"`
}

// CreateQuestionRequest is the create variant of POST /questions
// @Description Numeric fields also accept numeric strings
type CreateQuestionRequest struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Category   FlexInt `json:"category" swaggertype:"integer"`
	Difficulty FlexInt `json:"difficulty" swaggertype:"integer"`
}

// SearchQuestionsRequest is the search variant of POST /questions
type SearchQuestionsRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// CreateQuestionResponse reports the id of the new question
type CreateQuestionResponse struct {
	Success bool   `json:"success"`
	Created int64  `json:"created"`
	Message string `json:"message"`
}

// DeleteQuestionResponse reports the id of the removed question
type DeleteQuestionResponse struct {
	Success bool   `json:"success"`
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}
