package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, bookID int64, in CreateInput) (Review, error) {
	args := m.Called(ctx, bookID, in)
	return args.Get(0).(Review), args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Review), args.Error(1)
}

func (m *mockRepository) ListByBook(ctx context.Context, bookID int64, offset, limit int) ([]Review, int, error) {
	args := m.Called(ctx, bookID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Review), args.Int(1), args.Error(2)
}

func (m *mockRepository) ListAllByBook(ctx context.Context, bookID int64) ([]Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, id int64, in UpdateInput) (Review, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(Review), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create_RatingBounds(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), 1, CreateInput{Content: "x", Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d must be rejected", rating)
	}
	repo.AssertNotCalled(t, "Create")

	for _, rating := range []int{1, 5} {
		repo.On("Create", mock.Anything, int64(1), CreateInput{Content: "x", Rating: rating}).
			Return(Review{ID: 1, BookID: 1, Rating: rating}, nil).Once()
		rev, err := service.Create(context.Background(), 1, CreateInput{Content: "x", Rating: rating})
		require.NoError(t, err)
		assert.Equal(t, rating, rev.Rating)
	}
	repo.AssertExpectations(t)
}

func TestService_Create_MissingBook(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo)

	repo.On("Create", mock.Anything, int64(999999), mock.Anything).Return(Review{}, ErrBookNotFound)

	_, err := service.Create(context.Background(), 999999, CreateInput{Content: "valid", Rating: 4})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestService_Update_RatingBounds(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo)

	bad := 6
	_, err := service.Update(context.Background(), 1, UpdateInput{Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)
	repo.AssertNotCalled(t, "Update")

	good := 3
	repo.On("Update", mock.Anything, int64(1), UpdateInput{Rating: &good}).Return(Review{ID: 1, Rating: 3}, nil)
	rev, err := service.Update(context.Background(), 1, UpdateInput{Rating: &good})
	require.NoError(t, err)
	assert.Equal(t, 3, rev.Rating)
}

func TestService_ListByBook_ClampsPage(t *testing.T) {
	repo := new(mockRepository)
	service := NewService(repo)

	repo.On("ListByBook", mock.Anything, int64(1), 0, DefaultPageSize).Return([]Review{}, 0, nil).Once()
	_, _, err := service.ListByBook(context.Background(), 1, -3, 0)
	require.NoError(t, err)

	repo.On("ListByBook", mock.Anything, int64(1), 5, MaxPageSize).Return([]Review{}, 0, nil).Once()
	_, _, err = service.ListByBook(context.Background(), 1, 5, 5000)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}
