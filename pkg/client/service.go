package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidClient = errors.New("invalid client")

type Service interface {
	Create(ctx context.Context, client Client) (Client, error)
	Update(ctx context.Context, client Client) (Client, error)
	Get(ctx context.Context, id int) (Client, error)
	List(ctx context.Context, search string) ([]Client, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, client Client) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	client, err = normalize(client)
	if err != nil {
		return Client{}, err
	}
	client.Uid = uuid.NewString()
	client.CreatedAt = s.clock.Now()
	client.UpdatedAt = client.CreatedAt

	created, err := s.repo.Create(ctx, userId, client)
	if err != nil {
		return Client{}, err
	}
	log.Infof("client %d (%s) created", created.Id, created.Name)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, client Client) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	client, err = normalize(client)
	if err != nil {
		return Client{}, err
	}
	client.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, userId, client)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Client{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) List(ctx context.Context, search string) ([]Client, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, search)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

func normalize(client Client) (Client, error) {
	client.Name = strings.TrimSpace(client.Name)
	client.Document = DigitsOnly(client.Document)
	client.Email = strings.TrimSpace(client.Email)
	if client.PersonType == "" {
		client.PersonType = Individual
	}
	if client.PersonType != Individual && client.PersonType != Organization {
		return Client{}, fmt.Errorf("%w: unknown person type %q", ErrInvalidClient, client.PersonType)
	}
	if client.Name == "" {
		return Client{}, fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	if client.Document == "" {
		return Client{}, fmt.Errorf("%w: document is required", ErrInvalidClient)
	}
	if !client.WantsLoan {
		client.LoanAmount = ""
	}
	return client, nil
}

// DigitsOnly strips punctuation from documents such as "123.456.789-09".
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
