package domain

import "strings"

// Defaults applied to a created question when the request omits them.
const (
	DefaultCategoryID = int64(1)
	DefaultDifficulty = 4
)

// Category is a question category, e.g. {1, "Science"}.
type Category struct {
	ID   int64
	Type string
}

// Question is a single trivia question. Category references Category.ID but
// referential integrity is left to the store.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion builds an unsaved question, filling in the defaults for a
// missing category or difficulty.
func NewQuestion(question, answer string, category *int64, difficulty *int) *Question {
	q := &Question{
		Question:   question,
		Answer:     answer,
		Category:   DefaultCategoryID,
		Difficulty: DefaultDifficulty,
	}
	if category != nil {
		q.Category = *category
	}
	if difficulty != nil {
		q.Difficulty = *difficulty
	}
	return q
}

// MatchesSearch reports whether term occurs in the question text, ignoring case.
func (q *Question) MatchesSearch(term string) bool {
	return strings.Contains(strings.ToLower(q.Question), strings.ToLower(term))
}

// CategoryTypes maps category ids to their display names.
func CategoryTypes(categories []*Category) map[int64]string {
	types := make(map[int64]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
