package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/marketplace/internal/hash"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/tokens"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type AuthService struct {
	Repo     UserRepository
	Producer EventPublisher
	Tokens   *tokens.Issuer
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	AccessExp   time.Time
}

func validateSignup(req transport.SignupRequest) error {
	switch {
	case req.Email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case req.Username == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case !req.Role.Valid():
		return fmt.Errorf("%w: role must be CUSTOMER or SELLER", ErrValidation)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validateSignup(req); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: pwHash,
		Role:     req.Role,
		ShopName: req.ShopName,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	publish(ctx, s.Producer, mykafka.TopicUserEvents, mykafka.UserRegistered(user))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			hash.CheckAgainstDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !hash.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.CreateAccessToken(user.ID, string(user.Role), time.Now())
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResult{User: user, AccessToken: token, AccessExp: exp}, nil
}
