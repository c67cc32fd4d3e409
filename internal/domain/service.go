package domain

import "context"

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// ListQuestions returns every question in ascending id order
	ListQuestions(ctx context.Context) ([]*Question, error)

	// ListQuestionsByCategory returns the questions of one category in ascending id order
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// GetQuestion returns nil, nil when no question has the id
	GetQuestion(ctx context.Context, id int64) (*Question, error)

	// InsertQuestion persists a new question and returns it with its id
	InsertQuestion(ctx context.Context, question *Question) (*Question, error)

	// DeleteQuestion fails with a NOT_FOUND DomainError when the id is absent
	DeleteQuestion(ctx context.Context, id int64) error
}

// TransactionManager runs fn atomically. Repositories called with the ctx passed to fn join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// ListCategories returns all categories in ascending id order
	ListCategories(ctx context.Context) ([]*Category, error)

	// FindCategory returns nil, nil when no category has the id
	FindCategory(ctx context.Context, id int64) (*Category, error)
}
