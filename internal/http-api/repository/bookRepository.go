package repository

import (
	"context"
	"fmt"
	"time"

	"bookhub/internal/http-api/models"

	"gorm.io/gorm"
)

// BookWithRating is a book row annotated with the mean of its review
// ratings. The aggregate is computed by the query, never stored.
type BookWithRating struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, id int64) (*models.Book, error)
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error)
	List(ctx context.Context, page, limit int, genre, author string) ([]BookWithRating, int64, error)
	AverageRating(ctx context.Context, bookID int64) (float64, error)
	DeleteWithReviews(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM will populate book.ID and book.CreatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Where("title = ? AND author = ?", title, author).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns one page of books newest-first, each with its computed
// average rating, plus the total count matching the filters. Genre and
// author filters are case-insensitive substring matches, ANDed together.
func (r *bookRepository) List(ctx context.Context, page, limit int, genre, author string) ([]BookWithRating, int64, error) {
	var total int64

	countQuery := r.db.WithContext(ctx).Model(&models.Book{})
	countQuery = applyBookFilters(countQuery, genre, author)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	offset := (page - 1) * limit

	list := make([]BookWithRating, 0, limit)
	query := r.db.WithContext(ctx).Model(&models.Book{}).
		Select("books.id, books.title, books.author, books.genre, books.created_at, COALESCE(AVG(reviews.rating), 0) AS average_rating").
		Joins("LEFT JOIN reviews ON reviews.book_id = books.id").
		Group("books.id").
		Order("books.created_at DESC").
		Limit(limit).
		Offset(offset)
	query = applyBookFilters(query, genre, author)

	if err := query.Scan(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return list, total, nil
}

func applyBookFilters(q *gorm.DB, genre, author string) *gorm.DB {
	// ILIKE for case-insensitive search
	if genre != "" {
		q = q.Where("books.genre ILIKE ?", "%"+genre+"%")
	}
	if author != "" {
		q = q.Where("books.author ILIKE ?", "%"+author+"%")
	}
	return q
}

// AverageRating computes the mean rating for a book, 0 when it has no reviews.
func (r *bookRepository) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}

// DeleteWithReviews removes a book and its reviews in one transaction.
// The FK already cascades; deleting explicitly keeps the behavior even on
// a schema without the constraint.
func (r *bookRepository) DeleteWithReviews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews for book: %w", err)
		}
		if err := tx.Delete(&models.Book{}, id).Error; err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}
