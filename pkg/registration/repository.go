package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrDraftNotFound = errors.New("registration draft not found")

type Repository interface {
	Store(ctx context.Context, userId int, draft Draft) error
	Get(ctx context.Context, userId int, uid string) (Draft, error)
	// Update saves form and position of an existing draft.
	Update(ctx context.Context, userId int, draft Draft) error
	Delete(ctx context.Context, userId int, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, draft Draft) error {
	query := `INSERT INTO registration_draft (
					uid, user_id, client_id, form, current_step, active_tab, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		draft.Uid,
		userId,
		nullableClientId(draft.ClientId),
		draft.Form,
		draft.CurrentStep,
		draft.ActiveTab,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not store registration draft: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, uid string) (Draft, error) {
	query := `SELECT uid, COALESCE(client_id, 0), form, current_step, active_tab, created_at, updated_at
				FROM registration_draft
				WHERE user_id = $1 AND uid = $2`

	if !validUid(uid) {
		return Draft{}, ErrDraftNotFound
	}
	var d Draft
	err := r.db.QueryRow(ctx, query, userId, uid).Scan(
		&d.Uid,
		&d.ClientId,
		&d.Form,
		&d.CurrentStep,
		&d.ActiveTab,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Draft{}, ErrDraftNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get registration draft %s: %w", uid, err)
		log.Error(err)
		return Draft{}, err
	}
	return d, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, draft Draft) error {
	query := `UPDATE registration_draft SET
					form = $1,
					current_step = $2,
					active_tab = $3,
					updated_at = $4
				WHERE user_id = $5 AND uid = $6`

	if !validUid(draft.Uid) {
		return ErrDraftNotFound
	}
	result, err := r.db.Exec(ctx, query, draft.Form, draft.CurrentStep, draft.ActiveTab, draft.UpdatedAt, userId, draft.Uid)
	if err != nil {
		err := fmt.Errorf("could not update registration draft: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDraftNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	if !validUid(uid) {
		return false, nil
	}
	result, err := r.db.Exec(ctx, `DELETE FROM registration_draft WHERE user_id = $1 AND uid = $2`, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete registration draft: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// uid columns are UUID; anything else would fail the query instead of matching nothing.
func validUid(uid string) bool {
	_, err := uuid.Parse(uid)
	return err == nil
}

func nullableClientId(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}
