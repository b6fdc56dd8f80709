// Package service contains the Labook business rules.
package service

import (
	"context"

	"labook/internal/idgen"
	"labook/internal/models"
	"labook/internal/observability"
	"labook/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}

// TokenIssuer issues access tokens for a user ID.
type TokenIssuer interface {
	GenerateToken(subjectID string) (string, error)
}

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	ids      idgen.Generator
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, ids idgen.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		ids:      ids,
	}
}

// Signup registers a new user and returns a token for it. Email uniqueness
// is left to the store.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (token string, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Signup")
	defer func() {
		span.SetError(err)
		span.End()
		observability.RecordAuth("signup", err)
	}()

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", models.NewValidationError("'name', 'email' and 'password' must be provided")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := models.NewUser(s.ids.Generate(), in.Name, in.Email, hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", models.AsAppError(err)
	}
	span.AddAttributes(attribute.String("user.id", user.ID))

	return s.issue(user.ID)
}

// Login checks credentials and returns a token. Unknown email and wrong
// password fail identically.
func (s *UserService) Login(ctx context.Context, in LoginInput) (token string, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Login")
	defer func() {
		span.SetError(err)
		span.End()
		observability.RecordAuth("login", err)
	}()

	if in.Email == "" || in.Password == "" {
		return "", models.NewValidationError("'email' and 'password' must be provided")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", models.AsAppError(err)
	}
	if user == nil || !s.hasher.Compare(in.Password, user.Password) {
		return "", models.NewUnauthorizedError("Invalid credentials")
	}

	return s.issue(user.ID)
}

// ToggleFriend flips the friendship between userID and targetID and reports
// whether they are friends afterwards.
func (s *UserService) ToggleFriend(ctx context.Context, userID, targetID string) (friends bool, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.ToggleFriend",
		attribute.String("user.id", userID),
		attribute.String("target.id", targetID),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if userID == targetID {
		return false, models.NewValidationError("Different 'id' must be provided")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, models.AsAppError(err)
	}

	friends, err = s.userRepo.ToggleFriendship(ctx, models.NewFriendPair(userID, targetID))
	if err != nil {
		return false, models.AsAppError(err)
	}
	observability.RecordToggle("friendship", friends)
	return friends, nil
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.GenerateToken(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
