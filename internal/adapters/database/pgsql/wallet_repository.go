package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
	"github.com/pocketfin/pocket_finance_backend/internal/utils/mapping"
)

type walletRepository struct {
	BaseRepository
}

// NewWalletRepository creates a new repository for wallet data.
func NewWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &walletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*walletRepository)(nil)

const walletColumns = `wallet_id, user_id, name, wallet_type, icon, color, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.UserID,
		&m.Name,
		&m.WalletType,
		&m.Icon,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveWallet inserts a new wallet.
func (r *walletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WalletID, m.UserID, m.Name, m.WalletType, m.Icon, m.Color,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wallet %s: %w", wallet.WalletID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save wallet %s: %w", wallet.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID. The derived balance is not
// populated here; use GetWalletBalance.
func (r *walletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	m, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}
	w := mapping.ToDomainWallet(*m)
	return &w, nil
}

// ListWalletsByUser retrieves all wallets belonging to the user.
func (r *walletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Wallet
	for rows.Next() {
		m, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wallet rows: %w", err)
	}
	return mapping.ToDomainWalletSlice(ms), nil
}

// UpdateWallet persists changes to an existing wallet.
func (r *walletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)
	query := `
		UPDATE wallets
		SET name = $2, wallet_type = $3, icon = $4, color = $5, last_updated_at = $6, last_updated_by = $7
		WHERE wallet_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.WalletID, m.Name, m.WalletType, m.Icon, m.Color, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %s: %w", wallet.WalletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWallet removes a wallet. Its transactions survive with wallet_id set
// to NULL by the schema's ON DELETE SET NULL.
func (r *walletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1;`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetWalletBalance derives the wallet balance as the signed sum of its
// transaction history. A wallet with no transactions yields 0, never NULL.
func (r *walletRepository) GetWalletBalance(ctx context.Context, walletID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN transaction_type = 'INCOME' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE wallet_id = $1;
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, walletID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to derive balance for wallet %s: %w", walletID, err)
	}
	return balance, nil
}

// GetTotalBalance derives the sum of all the user's wallet balances.
func (r *walletRepository) GetTotalBalance(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN t.transaction_type = 'INCOME' THEN t.amount ELSE -t.amount END), 0)
		FROM transactions t
		JOIN wallets w ON t.wallet_id = w.wallet_id
		WHERE w.user_id = $1;
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to derive total balance for user %s: %w", userID, err)
	}
	return balance, nil
}
