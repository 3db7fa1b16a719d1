package notification

import (
	"context"
	"slices"
)

type RepositoryStub struct {
	notifications map[int][]Notification
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{notifications: map[int][]Notification{}}
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, n Notification) error {
	s.notifications[userId] = append(s.notifications[userId], n)
	return nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int, unreadOnly bool) ([]Notification, error) {
	result := make([]Notification, 0, len(s.notifications[userId]))
	for _, n := range slices.Backward(s.notifications[userId]) {
		if !unreadOnly || !n.Read {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *RepositoryStub) MarkRead(ctx context.Context, userId int, uid string) (bool, error) {
	for i, n := range s.notifications[userId] {
		if n.Uid == uid {
			s.notifications[userId][i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) DeleteAll(ctx context.Context, userId int) (int, error) {
	count := len(s.notifications[userId])
	delete(s.notifications, userId)
	return count, nil
}
