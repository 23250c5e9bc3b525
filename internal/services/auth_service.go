package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/repositories"
	"devconnector/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the salt rounds accounts have always been hashed with.
const bcryptCost = 10

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	publisher  EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher EventPublisher, jwtSecret string, tokenDurat time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		publisher:  publisher,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDurat,
	}
}

// Register validates the input, hashes the password and stores a new user.
func (s *AuthService) Register(ctx context.Context, in validation.RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if res := validation.ValidateRegisterInput(in); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, errEmailTaken
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	user.Password = ""
	return user, nil
}

// Login authenticates a user and returns a "Bearer <jwt>" token.
func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if res := validation.ValidateLoginInput(in); !res.IsValid {
		return "", &ValidationError{Errors: res.Errors}
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", errNoUser
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", &ValidationError{Errors: map[string]string{"password": "password incorrect"}}
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenDurat).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return "Bearer " + tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if id, _ := claims["id"].(string); id == "" {
		return nil, errors.New("invalid token: missing id claim")
	}
	return claims, nil
}

// GetUser returns the account with the given id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &NotFoundError{Field: "user", Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user together with their profile and experience.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Info("account deleted")
	publish(s.publisher, EventAccountDeleted, map[string]interface{}{"userID": userID})
	return nil
}
