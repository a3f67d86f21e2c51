package recommend

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

func TestHTTPHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := NewMockFetcher(ctrl)
	handler := NewHTTPHandler(NewService(mockFetcher, nil, nil))

	t.Run("success", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Science Fiction").
			Return(Result{Genre: "Science Fiction", Books: sampleBooks(12), Pages: 2, Exhausted: true}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/books?genre=Science+Fiction", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		var books []Book
		require.NoError(t, json.Unmarshal(env.Data, &books))
		assert.Len(t, books, 12)
		assert.Equal(t, float64(12), env.Meta["count"])
		assert.Equal(t, true, env.Meta["exhausted"])
	})

	t.Run("missing genre", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Biography").
			Return(Result{Genre: "Biography", Books: sampleBooks(40), Pages: 2},
				&TransportError{StartIndex: 40, Status: 503, Err: errors.New("unavailable")})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/books?genre=Biography", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", env.Error.Code)
		assert.Equal(t, float64(40), env.Meta["partial_count"])
	})

	t.Run("empty genre result is a success", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Nothing").
			Return(Result{Genre: "Nothing", Books: []Book{}, Pages: 1, Exhausted: true}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/books?genre=Nothing", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(0), decodeEnvelope(t, w).Meta["count"])
	})
}

func TestHTTPHandler_Top(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := NewMockFetcher(ctrl)
	handler := NewHTTPHandler(NewService(mockFetcher, nil, nil))

	t.Run("default ten", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Fiction").
			Return(Result{Genre: "Fiction", Books: sampleBooks(30)}, nil)

		w := httptest.NewRecorder()
		handler.Top(w, httptest.NewRequest(http.MethodGet, "/v1/books/top?genre=Fiction", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var books []Book
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &books))
		require.Len(t, books, 10)
		assert.Equal(t, 5.0, books[0].Rating)
	})

	t.Run("custom n", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Fiction").
			Return(Result{Genre: "Fiction", Books: sampleBooks(30)}, nil)

		w := httptest.NewRecorder()
		handler.Top(w, httptest.NewRequest(http.MethodGet, "/v1/books/top?genre=Fiction&n=3", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var books []Book
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &books))
		assert.Len(t, books, 3)
	})

	t.Run("invalid n", func(t *testing.T) {
		for _, n := range []string{"abc", "0", "101"} {
			w := httptest.NewRecorder()
			handler.Top(w, httptest.NewRequest(http.MethodGet, "/v1/books/top?genre=Fiction&n="+n, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code, "n=%s", n)
		}
	})
}

func TestHTTPHandler_Select(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := NewMockFetcher(ctrl)
	handler := NewHTTPHandler(NewService(mockFetcher, nil, nil))

	t.Run("found", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Fiction").
			Return(Result{Genre: "Fiction", Books: sampleBooks(30)}, nil)

		w := httptest.NewRecorder()
		handler.Select(w, httptest.NewRequest(http.MethodGet, "/v1/books/select?genre=Fiction&title=Book+17", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var b Book
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &b))
		assert.Equal(t, "Book 17", b.Title)
	})

	t.Run("not in top ten", func(t *testing.T) {
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Fiction").
			Return(Result{Genre: "Fiction", Books: sampleBooks(30)}, nil)

		w := httptest.NewRecorder()
		handler.Select(w, httptest.NewRequest(http.MethodGet, "/v1/books/select?genre=Fiction&title=Book+0", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Select(w, httptest.NewRequest(http.MethodGet, "/v1/books/select?genre=Fiction", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Runs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("history disabled", func(t *testing.T) {
		handler := NewHTTPHandler(NewService(NewMockFetcher(ctrl), nil, nil))

		w := httptest.NewRecorder()
		handler.Runs(w, httptest.NewRequest(http.MethodGet, "/v1/runs", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("lists runs", func(t *testing.T) {
		mockRuns := NewMockRunRepository(ctrl)
		handler := NewHTTPHandler(NewService(NewMockFetcher(ctrl), nil, mockRuns))
		mockRuns.EXPECT().ListRecent(gomock.Any(), 5).
			Return([]Run{{ID: "r1", Genre: "Art", Status: RunStatusCompleted}}, nil)

		w := httptest.NewRecorder()
		handler.Runs(w, httptest.NewRequest(http.MethodGet, "/v1/runs?limit=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var runs []Run
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, "Art", runs[0].Genre)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRuns := NewMockRunRepository(ctrl)
		handler := NewHTTPHandler(NewService(NewMockFetcher(ctrl), nil, mockRuns))
		mockRuns.EXPECT().ListRecent(gomock.Any(), 20).Return(nil, errors.New("db error"))

		w := httptest.NewRecorder()
		handler.Runs(w, httptest.NewRequest(http.MethodGet, "/v1/runs", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestService_RecordsRunsWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockFetcher := NewMockFetcher(ctrl)
	mockRuns := NewMockRunRepository(ctrl)
	svc := NewService(mockFetcher, nil, mockRuns)

	gomock.InOrder(
		mockRuns.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return("run-9", nil),
		mockFetcher.EXPECT().Fetch(gomock.Any(), "Art").Return(Result{Genre: "Art", Books: sampleBooks(4), Pages: 2, Exhausted: true}, nil),
		mockRuns.EXPECT().FinishRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, run *Run) error {
			assert.Equal(t, "run-9", run.ID)
			assert.Equal(t, RunStatusExhausted, run.Status)
			return nil
		}),
	)

	res, err := svc.Recommend(t.Context(), "Art")
	require.NoError(t, err)
	assert.Len(t, res.Books, 4)
}
