package domain

// AllCategories is the quiz category id meaning "draw from every category".
const AllCategories = int64(0)

// SelectQuizQuestion picks a question uniformly at random from pool, skipping
// every question whose id is in previous. intn must return a value in [0, n).
//
// Exclusion is by question id, never by category id: a question served once
// is not served again in the same session.
//
// ErrQuizExhausted is returned when no candidate is left.
func SelectQuizQuestion(pool []*Question, previous []int64, intn func(n int) int) (*Question, error) {
	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	candidates := make([]*Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		candidates = append(candidates, q)
	}

	if len(candidates) == 0 {
		return nil, ErrQuizExhausted
	}
	return candidates[intn(len(candidates))], nil
}
