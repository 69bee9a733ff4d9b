package book

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookreview/internal/httpx"
	"bookreview/internal/review"
)

// ReviewLister supplies the reviews embedded in the single-book view.
// Satisfied by the review service.
type ReviewLister interface {
	ListAllByBook(ctx context.Context, bookID int64) ([]review.Review, error)
}

type HTTPHandler struct {
	service *Service
	reviews ReviewLister
}

func NewHTTPHandler(service *Service, reviews ReviewLister) *HTTPHandler {
	return &HTTPHandler{service: service, reviews: reviews}
}

type createBookReq struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"published_year"`
	ISBN          *string `json:"isbn" validate:"omitempty,isbn"`
}

type updateBookReq struct {
	Title         *string `json:"title" validate:"omitempty,min=1"`
	Author        *string `json:"author" validate:"omitempty,min=1"`
	Description   *string `json:"description"`
	Genre         *string `json:"genre"`
	PublishedYear *int    `json:"published_year"`
	ISBN          *string `json:"isbn" validate:"omitempty,isbn"`
}

type bookWithReviews struct {
	Book
	Reviews []review.Review `json:"reviews"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.service.Create(r.Context(), CreateInput{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
		ISBN:          req.ISBN,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", "ISBN already in use", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)

	books, total, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"total": total,
		"books": books,
	}, nil)
}

// Get handles GET /books/{id}, embedding the book's reviews.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	reviews, err := h.reviews.ListAllByBook(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, bookWithReviews{Book: b, Reviews: reviews}, nil)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Genre:         req.Genre,
		PublishedYear: req.PublishedYear,
		ISBN:          req.ISBN,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrDuplicateISBN):
			httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", "ISBN already in use", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return 0, false
	}
	return id, true
}

func pageParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ = strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}
