package service

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error) {
	args := m.Called(ctx, title, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context, page, limit int, genre, author string) ([]repository.BookWithRating, int64, error) {
	args := m.Called(ctx, page, limit, genre, author)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]repository.BookWithRating), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookRepository) DeleteWithReviews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]models.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newBookService() (BookService, *MockBookRepository, *MockReviewRepository) {
	mockBookRepo := new(MockBookRepository)
	mockReviewRepo := new(MockReviewRepository)
	return NewBookService(mockBookRepo, mockReviewRepo), mockBookRepo, mockReviewRepo
}

func TestAddBook_MissingFields(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	_, err := svc.AddBook(context.Background(), "Dune", "", "SciFi")

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	mockBookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddBook_Duplicate(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	existing := &models.Book{ID: 1, Title: "Dune", Author: "Herbert"}
	mockBookRepo.On("FindByTitleAndAuthor", mock.Anything, "Dune", "Herbert").Return(existing, nil)

	_, err := svc.AddBook(context.Background(), "Dune", "Herbert", "SciFi")

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	mockBookRepo.AssertExpectations(t)
}

func TestAddBook_Success(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	mockBookRepo.On("FindByTitleAndAuthor", mock.Anything, "Dune", "Herbert").Return(nil, gorm.ErrRecordNotFound)
	mockBookRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.AddBook(context.Background(), "Dune", "Herbert", "SciFi")

	assert.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, "SciFi", book.Genre)
	// a brand-new book has no reviews, so no average rating
	assert.Nil(t, book.AverageRating)
	mockBookRepo.AssertExpectations(t)
}

func TestListBooks_PaginationMetadata(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	// 25 books, limit 10, page 5: past the end, but totals stay true
	mockBookRepo.On("List", mock.Anything, 5, 10, "", "").
		Return([]repository.BookWithRating{}, int64(25), nil)

	resp, err := svc.ListBooks(context.Background(), 5, 10, "", "")

	assert.NoError(t, err)
	assert.Empty(t, resp.Books)
	assert.Equal(t, int64(25), resp.Pagination.TotalBooks)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)
	assert.Equal(t, 5, resp.Pagination.CurrentPage)
	assert.Equal(t, 10, resp.Pagination.Limit)
	mockBookRepo.AssertExpectations(t)
}

func TestListBooks_DefaultsApplied(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	mockBookRepo.On("List", mock.Anything, 1, 10, "", "").
		Return([]repository.BookWithRating{}, int64(0), nil)

	resp, err := svc.ListBooks(context.Background(), 0, -3, "", "")

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 10, resp.Pagination.Limit)
	mockBookRepo.AssertExpectations(t)
}

func TestListBooks_AverageRatingRounded(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	rows := []repository.BookWithRating{
		{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SciFi", CreatedAt: time.Now(), AverageRating: 4.666666},
		{ID: 2, Title: "Emma", Author: "Austen", Genre: "Classic", CreatedAt: time.Now(), AverageRating: 0},
	}
	mockBookRepo.On("List", mock.Anything, 1, 10, "", "").Return(rows, int64(2), nil)

	resp, err := svc.ListBooks(context.Background(), 1, 10, "", "")

	assert.NoError(t, err)
	assert.Len(t, resp.Books, 2)
	assert.Equal(t, 4.67, *resp.Books[0].AverageRating)
	assert.Equal(t, 0.0, *resp.Books[1].AverageRating)
	mockBookRepo.AssertExpectations(t)
}

func TestGetBookByID_NotFound(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	mockBookRepo.On("FindByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetBookByID(context.Background(), 42)

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	mockBookRepo.AssertExpectations(t)
}

func TestGetBookByID_WithReviews(t *testing.T) {
	svc, mockBookRepo, mockReviewRepo := newBookService()

	book := &models.Book{ID: 1, Title: "Dune", Author: "Herbert", Genre: "SciFi"}
	reviews := []models.Review{
		{ID: 7, BookID: 1, ReviewerID: "user-id", ReviewText: "great", Rating: 5,
			Reviewer: models.User{ID: "user-id", Username: "alice"}},
		{ID: 6, BookID: 1, ReviewerID: "other-id", ReviewText: "fine", Rating: 3,
			Reviewer: models.User{ID: "other-id", Username: "bob"}},
	}

	mockBookRepo.On("FindByID", mock.Anything, int64(1)).Return(book, nil)
	// ratings [3,5] average to exactly 4.00
	mockBookRepo.On("AverageRating", mock.Anything, int64(1)).Return(4.0, nil)
	mockReviewRepo.On("ListByBook", mock.Anything, int64(1)).Return(reviews, nil)

	resp, err := svc.GetBookByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Dune", resp.Book.Title)
	assert.Equal(t, 4.0, *resp.Book.AverageRating)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, "alice", resp.Reviews[0].ReviewerUsername)
	assert.Equal(t, "bob", resp.Reviews[1].ReviewerUsername)
	mockBookRepo.AssertExpectations(t)
	mockReviewRepo.AssertExpectations(t)
}

func TestGetBookByID_NoReviews(t *testing.T) {
	svc, mockBookRepo, mockReviewRepo := newBookService()

	book := &models.Book{ID: 2, Title: "Emma", Author: "Austen", Genre: "Classic"}
	mockBookRepo.On("FindByID", mock.Anything, int64(2)).Return(book, nil)
	mockBookRepo.On("AverageRating", mock.Anything, int64(2)).Return(0.0, nil)
	mockReviewRepo.On("ListByBook", mock.Anything, int64(2)).Return([]models.Review{}, nil)

	resp, err := svc.GetBookByID(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, *resp.Book.AverageRating)
	assert.Empty(t, resp.Reviews)
}

func TestDeleteBook_NotFound(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	mockBookRepo.On("FindByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteBook(context.Background(), 42)

	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	mockBookRepo.AssertNotCalled(t, "DeleteWithReviews", mock.Anything, mock.Anything)
}

func TestDeleteBook_Success(t *testing.T) {
	svc, mockBookRepo, _ := newBookService()

	book := &models.Book{ID: 1, Title: "Dune", Author: "Herbert"}
	mockBookRepo.On("FindByID", mock.Anything, int64(1)).Return(book, nil)
	mockBookRepo.On("DeleteWithReviews", mock.Anything, int64(1)).Return(nil)

	err := svc.DeleteBook(context.Background(), 1)

	assert.NoError(t, err)
	mockBookRepo.AssertExpectations(t)
}
