package domain

// QuestionsPerPage is the fixed page size of every question listing.
const QuestionsPerPage = 10

// Page is one page of an ordered question listing together with the size of
// the unpaged result set.
type Page struct {
	Questions []*Question
	Total     int
}

// Paginate returns the items in [(page-1)*size, page*size). The result is
// empty when page < 1 or when the start offset is past the end. items must
// already be in a stable order; it is never modified.
func Paginate[T any](items []T, page, size int) []T {
	// Compare in pages first so (page-1)*size cannot overflow.
	if page < 1 || size <= 0 || page-1 >= (len(items)+size-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// NewPage paginates questions with QuestionsPerPage.
func NewPage(questions []*Question, page int) *Page {
	return &Page{
		Questions: Paginate(questions, page, QuestionsPerPage),
		Total:     len(questions),
	}
}

// Empty reports whether the page holds no questions.
func (p *Page) Empty() bool {
	return len(p.Questions) == 0
}
