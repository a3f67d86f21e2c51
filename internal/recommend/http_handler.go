package recommend

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bookrec/internal/httpx"
	"bookrec/internal/logger"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type genreParams struct {
	Genre string `validate:"required,max=100,searchterm"`
	N     int    `validate:"min=1,max=100"`
	Title string `validate:"omitempty,max=500"`
}

func parseGenreParams(r *http.Request) (genreParams, []httpx.ErrorDetail) {
	query := r.URL.Query()
	p := genreParams{
		Genre: query.Get("genre"),
		N:     DefaultTopN,
		Title: query.Get("title"),
	}
	if s := query.Get("n"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, []httpx.ErrorDetail{{Field: "n", Message: "n must be an integer"}}
		}
		p.N = n
	}
	return p, httpx.ValidateStruct(p)
}

// List handles GET /v1/books
// @Summary Fetch books for a genre
// @Description Pages through Google Books for subject:{genre}, at most 100 books
// @Tags books
// @Produce json
// @Param genre query string true "Genre"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	p, details := parseGenreParams(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	res, err := h.svc.Recommend(r.Context(), p.Genre)
	if err != nil {
		writeFetchError(w, r, res, err)
		return
	}
	httpx.JSONSuccess(w, r, res.Books, resultMeta(res))
}

// Top handles GET /v1/books/top
// @Summary Top rated books for a genre
// @Tags books
// @Produce json
// @Param genre query string true "Genre"
// @Param n query int false "Number of books" default(10)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/books/top [get]
func (h *HTTPHandler) Top(w http.ResponseWriter, r *http.Request) {
	p, details := parseGenreParams(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	res, err := h.svc.TopBooks(r.Context(), p.Genre, p.N)
	if err != nil {
		writeFetchError(w, r, res, err)
		return
	}
	meta := resultMeta(res)
	meta["n"] = p.N
	httpx.JSONSuccess(w, r, res.Books, meta)
}

// Select handles GET /v1/books/select
// @Summary Pick one book from the top ten by exact title
// @Tags books
// @Produce json
// @Param genre query string true "Genre"
// @Param title query string true "Exact title"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/books/select [get]
func (h *HTTPHandler) Select(w http.ResponseWriter, r *http.Request) {
	p, details := parseGenreParams(r)
	if p.Title == "" {
		details = append(details, httpx.ErrorDetail{Field: "title", Message: "title is required"})
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book, err := h.svc.SelectBook(r.Context(), p.Genre, p.Title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not in the top ten", nil)
			return
		}
		writeFetchError(w, r, Result{Genre: p.Genre}, err)
		return
	}
	httpx.JSONSuccess(w, r, book, nil)
}

// Runs handles GET /v1/runs
// @Summary Recent genre fetches
// @Tags runs
// @Produce json
// @Param limit query int false "Max runs" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/runs [get]
func (h *HTTPHandler) Runs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.svc.RecentRuns(r.Context(), limit)
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			httpx.JSONError(w, r, http.StatusServiceUnavailable, "HISTORY_DISABLED", "Fetch history is not configured", nil)
			return
		}
		logger.For(r.Context()).WithError(err).Error("list fetch runs")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, runs, map[string]any{"limit": limit})
}

func resultMeta(res Result) map[string]any {
	return map[string]any{
		"genre":     res.Genre,
		"count":     len(res.Books),
		"pages":     res.Pages,
		"exhausted": res.Exhausted,
		"cached":    res.Cached,
	}
}

func writeFetchError(w http.ResponseWriter, r *http.Request, res Result, err error) {
	switch {
	case IsTransport(err):
		httpx.JSONErrorWithMeta(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE",
			"The book catalog could not be reached", nil,
			map[string]any{"genre": res.Genre, "partial_count": len(res.Books)})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		httpx.JSONError(w, r, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out", nil)
	default:
		logger.For(r.Context()).WithError(err).Error("genre fetch failed")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
