package services

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	"github.com/pocketfin/pocket_finance_backend/internal/dto"
)

// UserSvcFacade defines owner account operations.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	// Authenticate verifies credentials and returns the matching user, or
	// apperrors.ErrUnauthorized when they do not match.
	Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
