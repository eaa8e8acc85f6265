package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/dto"
	"bookhub/internal/http-api/handler"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddReview(ctx context.Context, bookID int64, reviewerID, reviewText string, rating int) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, bookID, reviewerID, reviewText, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID int64, requesterID string) error {
	args := m.Called(ctx, reviewID, requesterID)
	return args.Error(0)
}

func newReviewRouter(svc service.ReviewService, gate gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReviewHandler(svc)
	h.RegisterBookRoutes(r.Group("/api/books"), gate)
	h.RegisterRoutes(r.Group("/api/reviews"), gate)
	return r
}

func TestCreateReviewHandler_Created(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, int64(1), "user-id", "great", 5).
		Return(&dto.ReviewResponse{ID: 7, BookID: 1, ReviewerID: "user-id", ReviewText: "great", Rating: 5}, nil)
	user := &models.User{ID: "user-id", Username: "alice"}
	r := newReviewRouter(mockSvc, identityStub(user))

	body := `{"review_text":"great","rating":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books/1/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Review added successfully"`)
	assert.Contains(t, w.Body.String(), `"rating":5`)
	mockSvc.AssertExpectations(t)
}

func TestCreateReviewHandler_BadRating(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("AddReview", mock.Anything, int64(1), "user-id", "meh", 9).
		Return(nil, apperror.Validation("Rating must be between 1 and 5 stars."))
	user := &models.User{ID: "user-id"}
	r := newReviewRouter(mockSvc, identityStub(user))

	body := `{"review_text":"meh","rating":9}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books/1/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Rating must be between 1 and 5 stars."}`, w.Body.String())
}

func TestCreateReviewHandler_InvalidBookID(t *testing.T) {
	mockSvc := new(MockReviewService)
	user := &models.User{ID: "user-id"}
	r := newReviewRouter(mockSvc, identityStub(user))

	body := `{"review_text":"great","rating":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/books/abc/reviews", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid book ID."}`, w.Body.String())
	mockSvc.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReviewHandler_OK(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("DeleteReview", mock.Anything, int64(7), "user-id").Return(nil)
	user := &models.User{ID: "user-id"}
	r := newReviewRouter(mockSvc, identityStub(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Review deleted successfully."}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestDeleteReviewHandler_NotTheAuthor(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("DeleteReview", mock.Anything, int64(7), "user-b").
		Return(apperror.Authorization("Not authorized to delete this review. You can only delete your own reviews."))
	user := &models.User{ID: "user-b"}
	r := newReviewRouter(mockSvc, identityStub(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized to delete this review. You can only delete your own reviews."}`, w.Body.String())
}

func TestDeleteReviewHandler_NotFound(t *testing.T) {
	mockSvc := new(MockReviewService)
	mockSvc.On("DeleteReview", mock.Anything, int64(42), "user-id").
		Return(apperror.NotFound("Review not found."))
	user := &models.User{ID: "user-id"}
	r := newReviewRouter(mockSvc, identityStub(user))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/42", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Review not found."}`, w.Body.String())
}
