package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTop(t *testing.T) {
	books := []Book{
		{Title: "a", Rating: 3.0},
		{Title: "b", Rating: 4.5},
		{Title: "c", Rating: 3.0},
		{Title: "d", Rating: 0},
		{Title: "e", Rating: 4.5},
	}
	original := append([]Book(nil), books...)

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"stable on ties", 5, []string{"b", "e", "a", "c", "d"}},
		{"truncates", 3, []string{"b", "e", "a"}},
		{"n larger than input", 10, []string{"b", "e", "a", "c", "d"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Top(books, tt.n)
			titles := make([]string, 0, len(got))
			for _, b := range got {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
			assert.Equal(t, original, books, "input must not be reordered")
		})
	}
}

func TestTop_Empty(t *testing.T) {
	assert.Empty(t, Top(nil, 10))
}

func TestSelectByTitle(t *testing.T) {
	books := []Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Emma", Author: "Jane Austen"},
		{Title: "Dune", Author: "Someone Else"},
	}

	b, ok := SelectByTitle(books, "Dune")
	assert.True(t, ok)
	assert.Equal(t, "Frank Herbert", b.Author)

	_, ok = SelectByTitle(books, "dune")
	assert.False(t, ok)
}
