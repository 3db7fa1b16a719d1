package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Store(ctx context.Context, userId int, n Notification) error
	// List returns the newest notifications first.
	List(ctx context.Context, userId int, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, userId int, uid string) (bool, error)
	DeleteAll(ctx context.Context, userId int) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, n Notification) error {
	query := `INSERT INTO notification (uid, user_id, kind, title, message, read, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, n.Uid, userId, n.Kind, n.Title, n.Message, n.Read, n.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store notification: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int, unreadOnly bool) ([]Notification, error) {
	query := `SELECT uid, kind, title, message, read, created_at
				FROM notification
				WHERE user_id = $1 AND (NOT $2 OR NOT read)
				ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId, unreadOnly)
	if err != nil {
		err := fmt.Errorf("could not query notifications: %w", err)
		log.Error(err)
		return nil, err
	}

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Notification, error) {
		var n Notification
		err := row.Scan(&n.Uid, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		err := fmt.Errorf("error scanning notifications: %w", err)
		log.Error(err)
		return nil, err
	}
	return notifications, nil
}

func (r *RepositoryImpl) MarkRead(ctx context.Context, userId int, uid string) (bool, error) {
	if _, err := uuid.Parse(uid); err != nil {
		log.Debugf("malformed notification uid %q", uid)
		return false, nil
	}
	result, err := r.db.Exec(ctx, `UPDATE notification SET read = true WHERE user_id = $1 AND uid = $2`, userId, uid)
	if err != nil {
		err := fmt.Errorf("could not mark notification as read: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteAll(ctx context.Context, userId int) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM notification WHERE user_id = $1`, userId)
	if err != nil {
		err := fmt.Errorf("could not delete notifications: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
