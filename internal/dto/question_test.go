package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{"number", `4`, NewFlexInt(4), false},
		{"numeric string", `"4"`, NewFlexInt(4), false},
		{"padded string", `" 12 "`, NewFlexInt(12), false},
		{"zero", `0`, NewFlexInt(0), false},
		{"null", `null`, FlexInt{}, false},
		{"empty string", `""`, FlexInt{}, false},
		{"word", `"four"`, FlexInt{}, true},
		{"float", `4.5`, FlexInt{}, true},
		{"bool", `true`, FlexInt{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateQuestionRequest_MissingFieldsStayUnset(t *testing.T) {
	var req CreateQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"question":"q","answer":"a","category":"4"}`), &req))
	assert.Equal(t, NewFlexInt(4), req.Category)
	assert.False(t, req.Difficulty.Set)
}

func TestQuizRequest_DistinguishesMissingFromEmptyHistory(t *testing.T) {
	var missing QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quiz_category":{"id":0,"type":"click"}}`), &missing))
	assert.Nil(t, missing.PreviousQuestions)
	require.NotNil(t, missing.QuizCategory)
	assert.True(t, missing.QuizCategory.ID.Set)

	var fresh QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"previous_questions":[],"quiz_category":{"id":"3","type":"Geography"}}`), &fresh))
	assert.NotNil(t, fresh.PreviousQuestions)
	assert.Empty(t, fresh.PreviousQuestions)
	assert.Equal(t, int64(3), fresh.QuizCategory.ID.Value)
}

func TestCategoriesResponse_StringKeys(t *testing.T) {
	out, err := json.Marshal(CategoriesResponse{Success: true, Categories: map[int64]string{1: "Science"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"categories":{"1":"Science"}}`, string(out))
}
