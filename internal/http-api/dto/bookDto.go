package dto

import (
	"time"

	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
)

type CreateBookDTO struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// BookResponse carries average_rating only when it is meaningful: a
// freshly created book has no reviews yet and the field is omitted.
type BookResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating *float64  `json:"average_rating,omitempty"`
}

type Pagination struct {
	TotalBooks  int64 `json:"totalBooks"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

type BookListResponse struct {
	Books      []BookResponse `json:"books"`
	Pagination Pagination     `json:"pagination"`
}

type BookDetailResponse struct {
	Book    BookResponse     `json:"book"`
	Reviews []ReviewResponse `json:"reviews"`
}

func FromModelToBookResponse(b *models.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		CreatedAt: b.CreatedAt,
	}
}

func FromRowToBookResponse(row repository.BookWithRating) BookResponse {
	avg := row.AverageRating
	return BookResponse{
		ID:            row.ID,
		Title:         row.Title,
		Author:        row.Author,
		Genre:         row.Genre,
		CreatedAt:     row.CreatedAt,
		AverageRating: &avg,
	}
}
