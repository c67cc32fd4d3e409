package catalog

import (
	"context"
	"math/rand/v2"

	"trivia-api/internal/domain"
)

// Scope selects the candidate pool of a quiz session.
type Scope struct {
	All        bool
	CategoryID int64
}

// AllCategories is the scope covering the whole catalog.
var AllCategories = Scope{All: true}

// InCategory scopes a session to one category.
func InCategory(id int64) Scope {
	return Scope{CategoryID: id}
}

// RandomSource yields an int in [0, n). Implementations must be safe for concurrent use
// when a Selector is shared.
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// QuestionSource loads candidate pools.
type QuestionSource interface {
	ListQuestions(ctx context.Context) ([]*domain.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error)
}

// Selector draws the next unseen quiz question.
type Selector struct {
	rnd RandomSource
}

// NewSelector creates a Selector. A nil source uses the process-wide math/rand/v2 generator.
func NewSelector(rnd RandomSource) *Selector {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Selector{rnd: rnd}
}

// NextQuestion returns one question from scope that is not in previous.
// A nil scope or nil previous is INVALID_ARGUMENT; an empty non-nil previous starts a session.
// When every candidate has been served it returns a QUIZ_EXHAUSTED error.
func (s *Selector) NextQuestion(ctx context.Context, scope *Scope, previous []int64, source QuestionSource) (*domain.Question, error) {
	if scope == nil {
		return nil, domain.NewInvalidArgumentError("quiz_category is required")
	}
	if previous == nil {
		return nil, domain.NewInvalidArgumentError("previous_questions is required")
	}

	var (
		pool []*domain.Question
		err  error
	)
	if scope.All {
		pool, err = source.ListQuestions(ctx)
	} else {
		pool, err = source.ListQuestionsByCategory(ctx, scope.CategoryID)
	}
	if err != nil {
		return nil, err
	}

	return Draw(pool, previous, s.rnd)
}

// Draw picks uniformly among the pool members whose id is not in previous.
func Draw(pool []*domain.Question, previous []int64, rnd RandomSource) (*domain.Question, error) {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]*domain.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			unseen = append(unseen, q)
		}
	}
	if len(unseen) == 0 {
		return nil, domain.NewExhaustedError()
	}
	return unseen[rnd.IntN(len(unseen))], nil
}
