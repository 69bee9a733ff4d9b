package review

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookreview/internal/testutil"
)

func newTestHandler() (*HTTPHandler, *mockRepository) {
	repo := new(mockRepository)
	return NewHTTPHandler(NewService(repo)), repo
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Create", mock.Anything, int64(1), mock.Anything).
			Return(Review{ID: 1, BookID: 1, Content: "Great!", Rating: 5}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/books/1/reviews", map[string]any{
			"content": "Great!",
			"rating":  5,
		})
		r.SetPathValue("id", "1")
		handler.Create(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		handler, repo := newTestHandler()

		for _, rating := range []int{0, 6} {
			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/books/1/reviews", map[string]any{
				"content": "Great!",
				"rating":  rating,
			})
			r.SetPathValue("id", "1")
			handler.Create(w, r)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %d", rating)
		}
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("missing content", func(t *testing.T) {
		handler, _ := newTestHandler()

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/books/1/reviews", map[string]any{"rating": 4})
		r.SetPathValue("id", "1")
		handler.Create(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("parent book missing", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Create", mock.Anything, int64(999999), mock.Anything).Return(Review{}, ErrBookNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/books/999999/reviews", map[string]any{
			"content": "valid payload",
			"rating":  4,
		})
		r.SetPathValue("id", "999999")
		handler.Create(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "Book not found", errBody["message"])
	})
}

func TestHTTPHandler_ListByBook(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("ListByBook", mock.Anything, int64(1), 0, DefaultPageSize).
			Return([]Review{{ID: 1, BookID: 1, Content: "Great!", Rating: 5}}, 1, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/1/reviews", nil)
		r.SetPathValue("id", "1")
		handler.ListByBook(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["total"])
		assert.Len(t, data["reviews"], 1)
	})

	t.Run("book not found", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("ListByBook", mock.Anything, int64(7), 0, DefaultPageSize).Return(nil, 0, ErrBookNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/books/7/reviews", nil)
		r.SetPathValue("id", "7")
		handler.ListByBook(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(in UpdateInput) bool {
			return in.Content != nil && in.Rating == nil
		})).Return(Review{ID: 1, Content: "Updated review text."}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/reviews/1", map[string]any{"content": "Updated review text."})
		r.SetPathValue("id", "1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Update", mock.Anything, int64(5), mock.Anything).Return(Review{}, ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/reviews/5", map[string]any{"content": "x"})
		r.SetPathValue("id", "5")
		handler.Update(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "Review not found", errBody["message"])
	})

	t.Run("rating out of range", func(t *testing.T) {
		handler, _ := newTestHandler()

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPut, "/books/reviews/1", map[string]any{"rating": 9})
		r.SetPathValue("id", "1")
		handler.Update(w, r)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Delete", mock.Anything, int64(1)).Return(nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/books/reviews/1", nil)
		r.SetPathValue("id", "1")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, repo := newTestHandler()
		repo.On("Delete", mock.Anything, int64(2)).Return(ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/books/reviews/2", nil)
		r.SetPathValue("id", "2")
		handler.Delete(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
