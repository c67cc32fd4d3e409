package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

// Quoted aliases keep lowercase column names on Oracle, which upper-cases unquoted identifiers.
const selectQuestions = `SELECT
		id "id",
		question "question",
		answer "answer",
		category "category",
		difficulty "difficulty"
	FROM questions`

const (
	insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
	VALUES (?, ?, ?, ?) RETURNING id`

	insertQuestionOracle = `INSERT INTO questions (question, answer, category, difficulty)
	VALUES (:question, :answer, :category, :difficulty)
	RETURNING id INTO :id`

	deleteQuestion = `DELETE FROM questions WHERE id = ?`
)

// QuestionDatabaseAdapter implements domain.QuestionRepository over sqlx.
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, selectQuestions+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return toDomainQuestions(rows), nil
}

// ListQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var rows []models.Question
	query := exec.Rebind(selectQuestions + ` WHERE category = ? ORDER BY id`)
	if err := exec.SelectContext(ctx, &rows, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	var row models.Question
	err := exec.GetContext(ctx, &row, exec.Rebind(selectQuestions+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// InsertQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) InsertQuestion(ctx context.Context, question *domain.Question) (*domain.Question, error) {
	if question == nil {
		return nil, domain.NewValidationError("question is required")
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	exec := GetExecutor(ctx, a.db)
	row := toModelQuestion(question)

	var id int64
	if exec.DriverName() == driverOracle {
		_, err := exec.ExecContext(ctx, insertQuestionOracle,
			sql.Named("question", row.Question),
			sql.Named("answer", row.Answer),
			sql.Named("category", row.Category),
			sql.Named("difficulty", row.Difficulty),
			sql.Named("id", sql.Out{Dest: &id}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert question: %w", err)
		}
	} else {
		if err := exec.QueryRowxContext(ctx, exec.Rebind(insertQuestion), row.Question, row.Answer, row.Category, row.Difficulty).Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to insert question: %w", err)
		}
	}

	row.ID = id
	return toDomainQuestion(row), nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, a.db)
	res, err := exec.ExecContext(ctx, exec.Rebind(deleteQuestion), id)
	if err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for question %d: %w", id, err)
	}
	if n == 0 {
		return domain.NewQuestionNotFoundError(id)
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	out := make([]*domain.Question, len(rows))
	for i := range rows {
		out[i] = toDomainQuestion(&rows[i])
	}
	return out
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
