package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Notify(ctx context.Context, kind Kind, title, message string) (Notification, error)
	List(ctx context.Context, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, uid string) error
	Clear(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Notify(ctx context.Context, kind Kind, title, message string) (Notification, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Notification{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(title) == "" {
		return Notification{}, fmt.Errorf("notification title is required")
	}

	n := Notification{
		Uid:       uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Store(ctx, userId, n); err != nil {
		return Notification{}, err
	}
	log.Tracef("notification %q stored for user %d", title, userId)
	return n, nil
}

func (s *ServiceImpl) List(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, unreadOnly)
}

func (s *ServiceImpl) MarkRead(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	found, err := s.repo.MarkRead(ctx, userId, uid)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *ServiceImpl) Clear(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteAll(ctx, userId)
}
