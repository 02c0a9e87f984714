package model

import "github.com/google/uuid"

// TokenManager generates and validates access tokens for the HTTP API.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}
