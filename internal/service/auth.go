package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// bcryptCost is the work factor applied to stored passwords.
const bcryptCost = 12

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Address  string
	Phone    string
}

// Auth orchestrates registration and login against the user store.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a new user and returns the sanitized identity.
// Returns ErrAlreadyExists when the email is taken and ErrValidation
// when required fields are missing.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.Identity, error) {
	a.logger.Debug("Auth service: registering user",
		"email", params.Email)

	if params.Email == "" || params.Password == "" || params.Name == "" {
		return model.Identity{}, model.ErrValidation
	}

	existing, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.Identity{}, model.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Address:      params.Address,
		Phone:        params.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	savedUser, err := a.userStore.Create(ctx, user)
	if err != nil {
		// Two concurrent registrations can both pass the lookup
		// above; the unique index settles it.
		if errors.Is(err, model.ErrAlreadyExists) {
			return model.Identity{}, model.ErrAlreadyExists
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", params.Email,
		"user_id", savedUser.ID)

	return savedUser.Identity(), nil
}

// Login verifies the credentials and returns the sanitized identity
// with a signed access token. An unknown email and a wrong password
// both return ErrInvalidCredentials so callers cannot enumerate users.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Identity, string, error) {
	a.logger.Debug("Auth service: logging in user",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Identity{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Identity{}, "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return model.Identity{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"email", email,
		"user_id", user.ID)

	return user.Identity(), accessToken, nil
}

// GetUserByID returns the sanitized identity for the user.
func (a *Auth) GetUserByID(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.ErrNotFound
		}
		return model.Identity{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Identity(), nil
}
