package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookreview/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReviewReq struct {
	ReviewerName *string `json:"reviewer_name" validate:"omitempty,max=100"`
	Content      string  `json:"content" validate:"required"`
	Rating       int     `json:"rating" validate:"required,gte=1,lte=5"`
}

type updateReviewReq struct {
	ReviewerName *string `json:"reviewer_name" validate:"omitempty,max=100"`
	Content      *string `json:"content" validate:"omitempty,min=1"`
	Rating       *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	IsVerified   *bool   `json:"is_verified"`
}

// Create handles POST /books/{id}/reviews
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "id", "Invalid book id")
	if !ok {
		return
	}

	var req createReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.service.Create(r.Context(), bookID, CreateInput{
		ReviewerName: req.ReviewerName,
		Content:      req.Content,
		Rating:       req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrInvalidRating):
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Rating must be between 1 and 5", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}

// ListByBook handles GET /books/{id}/reviews
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "id", "Invalid book id")
	if !ok {
		return
	}

	query := r.URL.Query()
	offset, _ := strconv.Atoi(query.Get("offset"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	reviews, total, err := h.service.ListByBook(r.Context(), bookID, offset, limit)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"total":   total,
		"reviews": reviews,
	}, nil)
}

// Update handles PUT /books/reviews/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Invalid review id")
	if !ok {
		return
	}

	var req updateReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	updated, err := h.service.Update(r.Context(), id, UpdateInput{
		ReviewerName: req.ReviewerName,
		Content:      req.Content,
		Rating:       req.Rating,
		IsVerified:   req.IsVerified,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
		case errors.Is(err, ErrInvalidRating):
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Rating must be between 1 and 5", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /books/reviews/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Invalid review id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request, name, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", invalidMsg, nil)
		return 0, false
	}
	return id, true
}
