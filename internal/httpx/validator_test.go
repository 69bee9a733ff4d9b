package httpx

import (
	"testing"
)

type createBookPayload struct {
	Title  string  `validate:"required"`
	Author string  `validate:"required"`
	ISBN   *string `validate:"omitempty,isbn"`
}

type reviewPayload struct {
	Content string `validate:"required"`
	Rating  int    `validate:"required,gte=1,lte=5"`
}

func strPtr(s string) *string { return &s }

func TestValidateStruct_RequiredFields(t *testing.T) {
	details := ValidateStruct(createBookPayload{})
	if len(details) != 2 {
		t.Fatalf("expected 2 validation failures, got %d: %v", len(details), details)
	}
	if details[0].Field != "title" {
		t.Errorf("expected first failure on title, got %s", details[0].Field)
	}
	if details[1].Field != "author" {
		t.Errorf("expected second failure on author, got %s", details[1].Field)
	}
}

func TestValidateStruct_ValidPayload(t *testing.T) {
	details := ValidateStruct(createBookPayload{Title: "Clean Code", Author: "Robert C. Martin"})
	if details != nil {
		t.Errorf("expected no failures, got %v", details)
	}
}

func TestValidateStruct_RatingBounds(t *testing.T) {
	cases := []struct {
		rating int
		valid  bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
	}

	for _, tc := range cases {
		details := ValidateStruct(reviewPayload{Content: "x", Rating: tc.rating})
		if tc.valid && len(details) != 0 {
			t.Errorf("rating %d: expected valid, got %v", tc.rating, details)
		}
		if !tc.valid && len(details) == 0 {
			t.Errorf("rating %d: expected a validation failure", tc.rating)
		}
	}
}

func TestValidateStruct_ISBN(t *testing.T) {
	valid := []string{"9780132350884", "978-0-13-235088-4", "0132350882", "043942089X"}
	for _, isbn := range valid {
		if details := ValidateStruct(createBookPayload{Title: "T", Author: "A", ISBN: strPtr(isbn)}); len(details) != 0 {
			t.Errorf("isbn %q: expected valid, got %v", isbn, details)
		}
	}

	invalid := []string{"123", "978013235088", "not-an-isbn"}
	for _, isbn := range invalid {
		if details := ValidateStruct(createBookPayload{Title: "T", Author: "A", ISBN: strPtr(isbn)}); len(details) == 0 {
			t.Errorf("isbn %q: expected a validation failure", isbn)
		}
	}

	// nil pointer is simply absent
	if details := ValidateStruct(createBookPayload{Title: "T", Author: "A"}); len(details) != 0 {
		t.Errorf("nil isbn: expected valid, got %v", details)
	}
}
