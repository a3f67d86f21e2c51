package recommend

import (
	"errors"
	"fmt"
	"strings"

	"bookrec/internal/platform/googlebooks"
)

const (
	// PageCap is the most items requested from upstream in one call.
	PageCap = 40
	// TotalCap is the most books accumulated for one genre.
	TotalCap = 100
	// DefaultTopN is the size of the ranked list shown to users.
	DefaultTopN = 10

	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownGenre  = "Unknown Genre"
)

var (
	// ErrTransport marks a failed upstream call (network, timeout, non-2xx).
	ErrTransport = errors.New("upstream transport failure")
	// ErrNotFound is returned when a selected title is not in the ranked list.
	ErrNotFound = errors.New("book not found")
	// ErrNoHistory is returned when fetch runs are not being recorded.
	ErrNoHistory = errors.New("fetch history not configured")
)

// Book is one normalized catalog entry.
type Book struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Genre  string  `json:"genre"`
}

// Result is the outcome of one genre fetch.
type Result struct {
	Genre string `json:"genre"`
	Books []Book `json:"books"`
	Pages int    `json:"pages"`
	// Exhausted is set when upstream ran out of items before TotalCap.
	Exhausted bool `json:"exhausted"`
	// Cached is set when the result was served from the genre cache.
	Cached bool `json:"cached"`
}

// TransportError wraps a failed page request. Partial results gathered before
// the failure are still returned alongside it.
type TransportError struct {
	StartIndex int
	Status     int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch page at %d: status %d: %v", e.StartIndex, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch page at %d: %v", e.StartIndex, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

func newBook(info *googlebooks.VolumeInfo) Book {
	b := Book{
		Title:  UnknownTitle,
		Author: UnknownAuthor,
		Rating: info.AverageRating,
		Genre:  UnknownGenre,
	}
	if t := strings.TrimSpace(info.Title); t != "" {
		b.Title = info.Title
	}
	if len(info.Authors) > 0 {
		b.Author = strings.Join(info.Authors, ", ")
	}
	if len(info.Categories) > 0 && info.Categories[0] != "" {
		b.Genre = info.Categories[0]
	}
	return b
}
