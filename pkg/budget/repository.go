package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrBudgetNotFound = errors.New("budget not found")

type Repository interface {
	List(ctx context.Context, userId int) ([]Budget, error)
	Get(ctx context.Context, userId int, id string) (Budget, error)
	// Store inserts the budget under the next free ORC number of the user and returns its id.
	Store(ctx context.Context, userId int, budget Budget) (string, error)
	// UpdateStatus moves the budget from one status to another and appends event to its history.
	// It returns false when the budget does not exist or is no longer in status from.
	UpdateStatus(ctx context.Context, userId int, id string, from, to Status, event HistoryEvent) (bool, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	// SeedIfAbsent inserts budgets unless the user has been seeded before. Returns the number inserted.
	SeedIfAbsent(ctx context.Context, userId int, budgets []Budget) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// budgetNumberLock is the advisory lock class for budget number allocation; the second key is the user id.
const budgetNumberLock = 1

const selectBudget = `SELECT
				id,
				client_name,
				client_email,
				client_phone,
				client_address,
				value,
				issue_date,
				expiry_date,
				status,
				payment_terms,
				items,
				history,
				attachments
			FROM budget`

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]Budget, error) {
	rows, err := r.db.Query(ctx, selectBudget+` WHERE user_id = $1 ORDER BY number`, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id string) (Budget, error) {
	b, err := scanBudget(r.db.QueryRow(ctx, selectBudget+` WHERE user_id = $1 AND id = $2`, userId, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Budget{}, ErrBudgetNotFound
		}
		err := fmt.Errorf("could not get budget %s: %w", id, err)
		log.Error(err)
		return Budget{}, err
	}
	return b, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, budget Budget) (string, error) {
	query := `WITH next AS (
					SELECT COALESCE(MAX(number), 0) + 1 AS n FROM budget WHERE user_id = $1
				)
				INSERT INTO budget (
					user_id,
					number,
					id,
					client_name,
					client_email,
					client_phone,
					client_address,
					value,
					issue_date,
					expiry_date,
					status,
					payment_terms,
					items,
					history,
					attachments
				)
				SELECT $1, n, 'ORC' || lpad(n::text, GREATEST(3, length(n::text)), '0'),
					$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
				FROM next
				RETURNING id`

	budget = withNonNilCollections(budget)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// Numbers come from MAX(number)+1, so concurrent creates for one user take turns.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, budgetNumberLock, userId); err != nil {
		err := fmt.Errorf("could not lock budget numbers: %w", err)
		log.Error(err)
		return "", err
	}

	var id string
	err = tx.QueryRow(ctx, query,
		userId,
		budget.Client.Name,
		budget.Client.Email,
		budget.Client.Phone,
		budget.Client.Address,
		budget.Value,
		budget.IssueDate,
		budget.ExpiryDate,
		budget.Status,
		budget.PaymentTerms,
		budget.Items,
		budget.History,
		budget.Attachments,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("could not commit transaction: %w", err)
	}
	return id, nil
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, userId int, id string, from, to Status, event HistoryEvent) (bool, error) {
	query := `UPDATE budget SET
					status = $1,
					history = history || $2::jsonb
				WHERE user_id = $3 AND id = $4 AND status = $5`
	result, err := r.db.Exec(ctx, query, to, []HistoryEvent{event}, userId, id, from)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM budget WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) SeedIfAbsent(ctx context.Context, userId int, budgets []Budget) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, budgetNumberLock, userId); err != nil {
		err := fmt.Errorf("could not lock budget numbers: %w", err)
		log.Error(err)
		return 0, err
	}

	result, err := tx.Exec(ctx, `INSERT INTO budget_seed (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userId)
	if err != nil {
		err := fmt.Errorf("could not mark budgets as seeded: %w", err)
		log.Error(err)
		return 0, err
	}
	if result.RowsAffected() == 0 {
		log.Debugf("budgets already seeded for user %d", userId)
		return 0, nil
	}

	query := `INSERT INTO budget (
					user_id, number, id, client_name, client_email, client_phone, client_address,
					value, issue_date, expiry_date, status, payment_terms, items, history, attachments
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
				ON CONFLICT DO NOTHING`
	inserted := 0
	for i, b := range budgets {
		b = withNonNilCollections(b)
		result, err := tx.Exec(ctx, query,
			userId, i+1, b.Id,
			b.Client.Name, b.Client.Email, b.Client.Phone, b.Client.Address,
			b.Value, b.IssueDate, b.ExpiryDate, b.Status, b.PaymentTerms,
			b.Items, b.History, b.Attachments,
		)
		if err != nil {
			err := fmt.Errorf("could not seed budget %s: %w", b.Id, err)
			log.Error(err)
			return 0, err
		}
		inserted += int(result.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}
	return inserted, nil
}

func scanBudget(row pgx.Row) (Budget, error) {
	var b Budget
	err := row.Scan(
		&b.Id,
		&b.Client.Name,
		&b.Client.Email,
		&b.Client.Phone,
		&b.Client.Address,
		&b.Value,
		&b.IssueDate,
		&b.ExpiryDate,
		&b.Status,
		&b.PaymentTerms,
		&b.Items,
		&b.History,
		&b.Attachments,
	)
	return b, err
}

// JSONB columns must hold arrays, never null, so history can be appended to.
func withNonNilCollections(b Budget) Budget {
	if b.Items == nil {
		b.Items = []Item{}
	}
	if b.History == nil {
		b.History = []HistoryEvent{}
	}
	if b.Attachments == nil {
		b.Attachments = []Attachment{}
	}
	return b
}
