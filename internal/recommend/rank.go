package recommend

import (
	"cmp"
	"slices"
)

// Top returns the n highest-rated books, highest first. Books with equal
// ratings keep their input order. The input slice is not modified.
func Top(books []Book, n int) []Book {
	if n <= 0 || len(books) == 0 {
		return []Book{}
	}
	sorted := slices.Clone(books)
	slices.SortStableFunc(sorted, func(a, b Book) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// SelectByTitle returns the first book whose title matches exactly.
func SelectByTitle(books []Book, title string) (Book, bool) {
	i := slices.IndexFunc(books, func(b Book) bool { return b.Title == title })
	if i < 0 {
		return Book{}, false
	}
	return books[i], true
}
