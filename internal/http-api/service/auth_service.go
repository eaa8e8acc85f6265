package service

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/config"
	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// dummy bcrypt hash compared against when the email is unknown, so both
// login failure paths take roughly the same time
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims is the identity payload carried by every issued token.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.JWTExpiry, // 1 hour unless configured otherwise
	}
}

// Signup registers a new user and returns it along with a fresh token.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", apperror.Validation("Please enter all fields")
	}

	// Check if username or email is already taken
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", apperror.Conflict("User with that email or username already exists")
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", apperror.Conflict("User with that email or username already exists")
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperror.Internal("Server error during signup")
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique indexes catch the race the existence checks can miss
		if repository.IsUniqueViolation(err) {
			return nil, "", apperror.Conflict("User with that email or username already exists")
		}
		return nil, "", storeError(err, "Server error during signup")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperror.Internal("Server error during signup")
	}

	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperror.Validation("Please enter all fields")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword(dummyHash, password)
		return nil, "", apperror.Authentication("Invalid credentials")
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", apperror.Authentication("Invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperror.Internal("Server error during login")
	}

	return user, token, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks the signature and expiry of a token and returns
// its claims. An expired token yields a distinct condition from a
// structurally invalid one.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Authentication("Not authorized, token expired")
		}
		return nil, apperror.Authentication("Not authorized, token failed")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.Authentication("Not authorized, token failed")
	}

	return claims, nil
}

// Authenticate resolves a bearer token to a live user record. A validly
// signed token whose subject no longer exists is rejected, never passed
// through unresolved.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Authentication("Not authorized, user not found")
		}
		// fail closed on anything unexpected
		return nil, storeError(err, "Server error during token verification.")
	}

	return user, nil
}
