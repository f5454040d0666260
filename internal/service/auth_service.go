package service

//go:generate mockgen -source=auth_service.go -destination=mocks/mock_auth_service.go -package=mocks

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"courses-api/internal/entities"
	"courses-api/internal/models"
	"courses-api/internal/repository"
	"courses-api/internal/validation"
)

// AuthService defines the interface for registration and credential checks
type AuthService interface {
	Register(ctx context.Context, req *models.UserRequest) (*entities.User, error)
	Authenticate(ctx context.Context, authHeader string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register validates the payload, hashes the password and stores the user.
// Email addresses are not checked for uniqueness.
func (s *authService) Register(ctx context.Context, req *models.UserRequest) (*entities.User, error) {
	if verr := validation.Validate(req.Fields(), validation.UserRules); verr != nil {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &entities.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     string(hashedPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate resolves the user named by an HTTP Basic Authorization header.
// Rejections are *AuthenticationError; anything else is a store failure.
func (s *authService) Authenticate(ctx context.Context, authHeader string) (*entities.User, error) {
	name, password, ok := parseBasicAuth(authHeader)
	if !ok {
		return nil, authFailed("Auth header not found")
	}

	user, err := s.userRepo.FindByEmail(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, authFailed("User not found for username: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, authFailed("Authentication failure for email address: %s", user.EmailAddress)
	}

	return user, nil
}

// parseBasicAuth decodes "Basic base64(name:password)" the way net/http does,
// and also accepts credentials whose base64 padding was stripped.
func parseBasicAuth(header string) (name, password string, ok bool) {
	req := http.Request{Header: http.Header{"Authorization": {header}}}
	if name, password, ok = req.BasicAuth(); ok {
		return name, password, true
	}

	scheme, encoded, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", false
	}

	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(encoded), "="))
	if err != nil {
		return "", "", false
	}

	return strings.Cut(string(decoded), ":")
}
