package service

import (
	"context"
	"errors"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	AddReview(ctx context.Context, bookID int64, reviewerID, reviewText string, rating int) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID int64, requesterID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

func (s *reviewService) AddReview(ctx context.Context, bookID int64, reviewerID, reviewText string, rating int) (*dto.ReviewResponse, error) {
	if reviewText == "" || rating == 0 {
		return nil, apperror.Validation("Please provide both review text and a rating.")
	}

	if rating < 1 || rating > 5 {
		return nil, apperror.Validation("Rating must be between 1 and 5 stars.")
	}

	// should not happen behind the auth gate, but never trust it blindly
	if reviewerID == "" {
		return nil, apperror.Authentication("Not authorized, reviewer ID missing.")
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Book not found.")
		}
		return nil, storeError(err, "Server error while adding review.")
	}

	review := &models.Review{
		BookID:     bookID,
		ReviewerID: reviewerID,
		ReviewText: reviewText,
		Rating:     rating,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, storeError(err, "Server error while adding review.")
	}

	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

// DeleteReview removes a review; only its author may do so.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, requesterID string) error {
	if requesterID == "" {
		return apperror.Authentication("Not authorized, user ID missing.")
	}

	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Review not found.")
		}
		return storeError(err, "Server error while deleting review.")
	}

	if review.ReviewerID != requesterID {
		return apperror.Authorization("Not authorized to delete this review. You can only delete your own reviews.")
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return storeError(err, "Server error while deleting review.")
	}

	return nil
}
