package dto

import (
	"time"

	"bookhub/internal/http-api/models"
)

type CreateReviewDTO struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

type ReviewResponse struct {
	ID               int64     `json:"id"`
	BookID           int64     `json:"book_id,omitempty"`
	ReviewerID       string    `json:"reviewer_id,omitempty"`
	ReviewText       string    `json:"review_text"`
	Rating           int       `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
	ReviewerUsername string    `json:"reviewer_username,omitempty"`
}

// FromModelToReviewResponse is the shape returned right after creation:
// the raw row including both references.
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		ReviewerID: r.ReviewerID,
		ReviewText: r.ReviewText,
		Rating:     r.Rating,
		CreatedAt:  r.CreatedAt,
	}
}

// FromModelToAnnotatedReviewResponse is the shape embedded in a book
// detail: annotated with the reviewer's username instead of ids.
func FromModelToAnnotatedReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:               r.ID,
		ReviewText:       r.ReviewText,
		Rating:           r.Rating,
		CreatedAt:        r.CreatedAt,
		ReviewerUsername: r.Reviewer.Username,
	}
}
