package service

import (
	"context"
	"errors"
	"math"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type BookService interface {
	AddBook(ctx context.Context, title, author, genre string) (*dto.BookResponse, error)
	ListBooks(ctx context.Context, page, limit int, genre, author string) (*dto.BookListResponse, error)
	GetBookByID(ctx context.Context, id int64) (*dto.BookDetailResponse, error)
	DeleteBook(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	reviewRepo repository.ReviewRepository
}

func NewBookService(bookRepo repository.BookRepository, reviewRepo repository.ReviewRepository) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
	}
}

// storeError translates a raw store failure into the taxonomy. A call
// that ran out of time becomes a retryable unavailable condition rather
// than an opaque server error.
func storeError(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Unavailable("Service temporarily unavailable.")
	}
	return apperror.Internal(msg)
}

// roundRating rounds a mean rating to 2 decimal places.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

func (s *bookService) AddBook(ctx context.Context, title, author, genre string) (*dto.BookResponse, error) {
	if title == "" || author == "" || genre == "" {
		return nil, apperror.Validation("Please enter all book fields: title, author, and genre.")
	}

	// Check for an existing book with the same title and author
	if _, err := s.bookRepo.FindByTitleAndAuthor(ctx, title, author); err == nil {
		return nil, apperror.Conflict("A book with this title and author already exists.")
	}

	book := &models.Book{
		Title:  title,
		Author: author,
		Genre:  genre,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.Conflict("A book with this title and author already exists.")
		}
		return nil, storeError(err, "Server error while adding book.")
	}

	// average_rating stays absent for a brand-new book
	resp := dto.FromModelToBookResponse(book)
	return &resp, nil
}

// ListBooks returns one page of the catalog, newest first, with computed
// average ratings and pagination metadata. A page past the end comes back
// empty with the metadata still reflecting true totals.
func (s *bookService) ListBooks(ctx context.Context, page, limit int, genre, author string) (*dto.BookListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	rows, total, err := s.bookRepo.List(ctx, page, limit, genre, author)
	if err != nil {
		return nil, storeError(err, "Server error while fetching books.")
	}

	books := make([]dto.BookResponse, 0, len(rows))
	for _, row := range rows {
		row.AverageRating = roundRating(row.AverageRating)
		books = append(books, dto.FromRowToBookResponse(row))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.BookListResponse{
		Books: books,
		Pagination: dto.Pagination{
			TotalBooks:  total,
			TotalPages:  totalPages,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

func (s *bookService) GetBookByID(ctx context.Context, id int64) (*dto.BookDetailResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Book not found.")
		}
		return nil, storeError(err, "Server error while fetching book details.")
	}

	avg, err := s.bookRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, storeError(err, "Server error while fetching book details.")
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, id)
	if err != nil {
		return nil, storeError(err, "Server error while fetching book details.")
	}

	bookResp := dto.FromModelToBookResponse(book)
	rounded := roundRating(avg)
	bookResp.AverageRating = &rounded

	reviewResps := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		reviewResps = append(reviewResps, dto.FromModelToAnnotatedReviewResponse(review))
	}

	return &dto.BookDetailResponse{
		Book:    bookResp,
		Reviews: reviewResps,
	}, nil
}

// DeleteBook removes a book and, with it, its reviews. Any authenticated
// user may delete any book.
func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	if _, err := s.bookRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Book not found.")
		}
		return storeError(err, "Server error while deleting book.")
	}

	if err := s.bookRepo.DeleteWithReviews(ctx, id); err != nil {
		return storeError(err, "Server error while deleting book.")
	}

	return nil
}
