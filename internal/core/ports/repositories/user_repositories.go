package repositories

import (
	"context"

	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for owner accounts.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
