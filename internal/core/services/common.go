package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
)

// notOwnedErr logs and wraps an ownership violation. Every service loads a
// resource by id and checks the owning user before acting on it.
func notOwnedErr(ctx context.Context, resource, resourceID, userID string) error {
	middleware.GetLoggerFromCtx(ctx).Warn("Ownership check failed",
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("user_id", userID),
	)
	return fmt.Errorf("%s %s: %w", resource, resourceID, apperrors.ErrForbidden)
}
