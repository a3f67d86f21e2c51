package recommend

import (
	"context"
	"errors"

	"bookrec/internal/logger"
	"bookrec/internal/platform/googlebooks"
)

const (
	orderByRelevance = "relevance"
	// DefaultMaxRequests bounds round trips when upstream keeps returning
	// pages without usable metadata.
	DefaultMaxRequests = 10
)

// CatalogFetcher pages through upstream search results for a genre.
type CatalogFetcher struct {
	searcher    VolumeSearcher
	maxRequests int
}

func NewCatalogFetcher(searcher VolumeSearcher, maxRequests int) *CatalogFetcher {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	return &CatalogFetcher{searcher: searcher, maxRequests: maxRequests}
}

// Fetch requests pages of at most PageCap items until TotalCap books are
// collected or upstream returns an empty page. On a transport failure it
// returns the books gathered so far together with a *TransportError.
func (f *CatalogFetcher) Fetch(ctx context.Context, genre string) (Result, error) {
	defer logger.Track(ctx, "fetch genre "+genre)()

	res := Result{Genre: genre, Books: make([]Book, 0, TotalCap)}
	startIndex := 0

	for len(res.Books) < TotalCap && res.Pages < f.maxRequests {
		pageSize := min(PageCap, TotalCap-len(res.Books))

		page, err := f.searcher.SearchVolumes(ctx, googlebooks.SearchParams{
			Query:      "subject:" + genre,
			OrderBy:    orderByRelevance,
			StartIndex: startIndex,
			MaxResults: pageSize,
		})
		res.Pages++
		if err != nil {
			terr := &TransportError{StartIndex: startIndex, Err: err}
			var se *googlebooks.StatusError
			if errors.As(err, &se) {
				terr.Status = se.Code
			}
			logger.For(ctx).WithError(err).WithField("genre", genre).
				WithField("start_index", startIndex).
				Warnf("upstream page failed after %d books", len(res.Books))
			return res, terr
		}

		if len(page.Items) == 0 {
			res.Exhausted = true
			break
		}

		for _, item := range page.Items {
			if item.VolumeInfo == nil {
				continue
			}
			res.Books = append(res.Books, newBook(item.VolumeInfo))
			if len(res.Books) >= TotalCap {
				break
			}
		}

		startIndex += pageSize
	}

	if len(res.Books) > TotalCap {
		res.Books = res.Books[:TotalCap]
	}
	logger.For(ctx).WithField("genre", genre).
		WithField("books", len(res.Books)).
		WithField("pages", res.Pages).
		Debug("genre fetch finished")
	return res, nil
}
