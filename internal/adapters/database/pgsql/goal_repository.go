package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/pocket_finance_backend/internal/apperrors"
	"github.com/pocketfin/pocket_finance_backend/internal/core/domain"
	portsrepo "github.com/pocketfin/pocket_finance_backend/internal/core/ports/repositories"
	"github.com/pocketfin/pocket_finance_backend/internal/models"
	"github.com/pocketfin/pocket_finance_backend/internal/utils/mapping"
)

type goalRepository struct {
	BaseRepository
}

// NewGoalRepository creates a new repository for goal and goal transaction data.
func NewGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &goalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepositoryFacade = (*goalRepository)(nil)

const goalColumns = `goal_id, user_id, name, target_amount, deadline, icon, color, created_at, created_by, last_updated_at, last_updated_by`

const goalTxnColumns = `goal_txn_id, goal_id, goal_txn_type, amount, note, wallet_id, transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.TargetAmount,
		&m.Deadline,
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

func scanGoalTransaction(row pgx.Row) (*models.GoalTransaction, error) {
	var m models.GoalTransaction
	err := row.Scan(
		&m.GoalTxnID,
		&m.GoalID,
		&m.GoalTxnType,
		&m.Amount,
		&m.Note,
		&m.WalletID,
		&m.TransactionID,
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

// SaveGoal inserts a new goal.
func (r *goalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.UserID, m.Name, m.TargetAmount, m.Deadline, m.Icon, m.Color,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("goal %s: %w", goal.GoalID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save goal %s: %w", goal.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal by its ID.
func (r *goalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	m, err := scanGoal(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal by ID %s: %w", goalID, err)
	}
	g := mapping.ToDomainGoal(*m)
	return &g, nil
}

// ListGoalsByUser retrieves all goals belonging to a user, newest first.
func (r *goalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Goal
	for rows.Next() {
		m, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal rows: %w", err)
	}
	return mapping.ToDomainGoalSlice(ms), nil
}

// UpdateGoal persists changes to an existing goal.
func (r *goalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	m := mapping.ToModelGoal(goal)
	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, deadline = $4, icon = $5, color = $6, last_updated_at = $7, last_updated_by = $8
		WHERE goal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.GoalID, m.Name, m.TargetAmount, m.Deadline, m.Icon, m.Color,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", goal.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes the goal, its goal transactions, and every wallet
// transaction linked from those goal transactions in one database transaction.
func (r *goalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		DELETE FROM transactions
		WHERE transaction_id IN (
			SELECT transaction_id FROM goal_transactions
			WHERE goal_id = $1 AND transaction_id IS NOT NULL
		);
	`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete linked transactions for goal %s: %w", goalID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM goal_transactions WHERE goal_id = $1;`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal transactions for goal %s: %w", goalID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// GetGoalCurrentAmount returns the derived current amount of the goal.
func (r *goalRepository) GetGoalCurrentAmount(ctx context.Context, goalID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN goal_txn_type = 'TOPUP' THEN amount ELSE -amount END), 0)
		FROM goal_transactions
		WHERE goal_id = $1;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, goalID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get current amount for goal %s: %w", goalID, err)
	}
	return total, nil
}

func insertGoalTransactionTx(ctx context.Context, tx pgx.Tx, m models.GoalTransaction) error {
	query := `
		INSERT INTO goal_transactions (` + goalTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.GoalTxnID, m.GoalID, m.GoalTxnType, m.Amount, m.Note, m.WalletID, m.TransactionID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return err
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, m models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.WalletID, m.TransactionDate, m.TransactionType,
		m.Category, m.Amount, m.Note,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return err
}

// SaveGoalTransaction persists the goal transaction and, when linkedTxn is
// non-nil, the mirrored wallet transaction in the same database transaction.
func (r *goalRepository) SaveGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if linkedTxn != nil {
		if err := insertTransactionTx(ctx, tx, mapping.ToModelTransaction(*linkedTxn)); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("transaction %s: %w", linkedTxn.TransactionID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save linked transaction %s: %w", linkedTxn.TransactionID, err)
		}
	}

	if err := insertGoalTransactionTx(ctx, tx, mapping.ToModelGoalTransaction(gt)); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("goal transaction %s: %w", gt.GoalTxnID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save goal transaction %s: %w", gt.GoalTxnID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateGoalTransaction updates the goal transaction row and, when linkedTxn
// is non-nil, the mirrored wallet transaction row in the same database
// transaction.
func (r *goalRepository) UpdateGoalTransaction(ctx context.Context, gt domain.GoalTransaction, linkedTxn *domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelGoalTransaction(gt)
	tag, err := tx.Exec(ctx, `
		UPDATE goal_transactions
		SET amount = $2, note = $3, transaction_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE goal_txn_id = $1;
	`, m.GoalTxnID, m.Amount, m.Note, m.TransactionID, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update goal transaction %s: %w", gt.GoalTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if linkedTxn != nil {
		tm := mapping.ToModelTransaction(*linkedTxn)
		tag, err := tx.Exec(ctx, `
			UPDATE transactions
			SET amount = $2, note = $3, last_updated_at = $4, last_updated_by = $5
			WHERE transaction_id = $1;
		`, tm.TransactionID, tm.Amount, tm.Note, tm.LastUpdatedAt, tm.LastUpdatedBy)
		if err != nil {
			return fmt.Errorf("failed to update linked transaction %s: %w", linkedTxn.TransactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("linked transaction %s: %w", linkedTxn.TransactionID, apperrors.ErrNotFound)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteGoalTransaction removes the goal transaction and, when
// linkedTransactionID is non-nil, the mirrored wallet transaction in the same
// database transaction.
func (r *goalRepository) DeleteGoalTransaction(ctx context.Context, goalTxnID string, linkedTransactionID *string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM goal_transactions WHERE goal_txn_id = $1;`, goalTxnID)
	if err != nil {
		return fmt.Errorf("failed to delete goal transaction %s: %w", goalTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if linkedTransactionID != nil {
		// The linked row may already be gone when deletion was initiated from
		// the wallet side, so a zero row count is not an error here.
		_, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, *linkedTransactionID)
		if err != nil {
			return fmt.Errorf("failed to delete linked transaction %s: %w", *linkedTransactionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindGoalTransactionByID retrieves a goal transaction by its ID.
func (r *goalRepository) FindGoalTransactionByID(ctx context.Context, goalTxnID string) (*domain.GoalTransaction, error) {
	query := `SELECT ` + goalTxnColumns + ` FROM goal_transactions WHERE goal_txn_id = $1;`
	m, err := scanGoalTransaction(r.Pool.QueryRow(ctx, query, goalTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal transaction by ID %s: %w", goalTxnID, err)
	}
	gt := mapping.ToDomainGoalTransaction(*m)
	return &gt, nil
}

// ListGoalTransactions retrieves the goal's transactions, newest first.
func (r *goalRepository) ListGoalTransactions(ctx context.Context, goalID string) ([]domain.GoalTransaction, error) {
	query := `SELECT ` + goalTxnColumns + ` FROM goal_transactions WHERE goal_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal transactions for goal %s: %w", goalID, err)
	}
	defer rows.Close()

	var ms []models.GoalTransaction
	for rows.Next() {
		m, err := scanGoalTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal transaction rows: %w", err)
	}
	return mapping.ToDomainGoalTransactionSlice(ms), nil
}

// FindGoalTransactionByTransactionID resolves the goal transaction owning the
// given linked wallet transaction id.
func (r *goalRepository) FindGoalTransactionByTransactionID(ctx context.Context, transactionID string) (*domain.GoalTransaction, error) {
	query := `SELECT ` + goalTxnColumns + ` FROM goal_transactions WHERE transaction_id = $1;`
	m, err := scanGoalTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal transaction by transaction ID %s: %w", transactionID, err)
	}
	gt := mapping.ToDomainGoalTransaction(*m)
	return &gt, nil
}

// FindGoalTransactionByFuzzyMatch resolves legacy rows that predate the
// transaction_id link: same wallet, same type, created within +-tolerance of
// the given instant. When several rows qualify the closest one wins.
func (r *goalRepository) FindGoalTransactionByFuzzyMatch(ctx context.Context, walletID string, gtType domain.GoalTransactionType, around time.Time, tolerance time.Duration) (*domain.GoalTransaction, error) {
	query := `
		SELECT ` + goalTxnColumns + `
		FROM goal_transactions
		WHERE wallet_id = $1
		  AND goal_txn_type = $2
		  AND transaction_id IS NULL
		  AND created_at BETWEEN $3 AND $4
		ORDER BY ABS(EXTRACT(EPOCH FROM created_at - $5::timestamptz))
		LIMIT 1;
	`
	m, err := scanGoalTransaction(r.Pool.QueryRow(ctx, query,
		walletID, string(gtType), around.Add(-tolerance), around.Add(tolerance), around,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fuzzy match goal transaction for wallet %s: %w", walletID, err)
	}
	gt := mapping.ToDomainGoalTransaction(*m)
	return &gt, nil
}
