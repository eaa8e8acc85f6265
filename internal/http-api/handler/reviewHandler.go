package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterBookRoutes mounts review creation under the books group.
func (h *ReviewHandler) RegisterBookRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.POST("/:id/reviews", gate, h.Create)
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.DELETE("/:id", gate, h.Delete)
}

// Create handles POST /api/books/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, apperror.Validation("Invalid book ID."))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, apperror.Authentication("Not authorized, reviewer ID missing."))
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.Validation("Invalid request body."))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.AddReview(ctx, bookID, user.ID, req.ReviewText, req.Rating)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"review":  review,
	})
}

// Delete handles DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, apperror.Validation("Invalid review ID."))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		writeError(c, apperror.Authentication("Not authorized, user ID missing."))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteReview(ctx, reviewID, user.ID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully."})
}
