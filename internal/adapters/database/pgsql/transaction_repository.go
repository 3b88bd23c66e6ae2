package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
	"github.com/pocketfin/pocket_finance_backend/internal/utils/mapping"
)

const defaultListLimit = 20

type transactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &transactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, wallet_id, transaction_date, transaction_type, category, amount, note, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.WalletID,
		&m.TransactionDate,
		&m.TransactionType,
		&m.Category,
		&m.Amount,
		&m.Note,
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

// SaveTransaction inserts a new transaction.
func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.UserID, m.WalletID, m.TransactionDate, m.TransactionType,
		m.Category, m.Amount, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	t := mapping.ToDomainTransaction(*m)
	return &t, nil
}

// ListTransactionsByUser retrieves transactions matching the filter, newest
// first, paginated by limit/offset.
func (r *transactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	if filter.WalletID != nil {
		args = append(args, *filter.WalletID)
		sb.WriteString(" AND wallet_id = $" + strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sb.WriteString(" AND transaction_date >= $" + strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sb.WriteString(" AND transaction_date <= $" + strconv.Itoa(len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	sb.WriteString(" ORDER BY transaction_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)) + ";")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// UpdateTransaction persists changes to an existing transaction.
func (r *transactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET wallet_id = $2, transaction_date = $3, category = $4, amount = $5, note = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.WalletID, m.TransactionDate, m.Category, m.Amount, m.Note,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
