package catalog

import (
	"strings"

	"trivia-api/internal/domain"
)

// Search keeps the questions whose text contains term, ignoring case. Order is preserved.
func Search(questions []*domain.Question, term string) ([]*domain.Question, error) {
	if strings.TrimSpace(term) == "" {
		return nil, domain.NewMissingFieldError("searchTerm")
	}

	needle := strings.ToLower(term)
	matches := make([]*domain.Question, 0)
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}
