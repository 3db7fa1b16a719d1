package client

import (
	"cmp"
	"context"
	"slices"
	"strings"
)

type RepositoryStub struct {
	nextId  int
	clients map[int]map[int]Client
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{clients: map[int]map[int]Client{}}
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, client Client) (Client, error) {
	for _, c := range s.clients[userId] {
		if c.Document == client.Document {
			return Client{}, ErrClientExists
		}
	}
	if s.clients[userId] == nil {
		s.clients[userId] = map[int]Client{}
	}
	s.nextId++
	client.Id = s.nextId
	s.clients[userId][client.Id] = client
	return client, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, client Client) (Client, error) {
	stored, ok := s.clients[userId][client.Id]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	for _, c := range s.clients[userId] {
		if c.Id != client.Id && c.Document == client.Document {
			return Client{}, ErrClientExists
		}
	}
	client.Uid = stored.Uid
	client.CreatedAt = stored.CreatedAt
	s.clients[userId][client.Id] = client
	return client, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id int) (Client, error) {
	client, ok := s.clients[userId][id]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	return client, nil
}

func (s *RepositoryStub) List(ctx context.Context, userId int, search string) ([]Client, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	clients := make([]Client, 0, len(s.clients[userId]))
	for _, c := range s.clients[userId] {
		if search == "" || matches(c, search) {
			clients = append(clients, c)
		}
	}
	slices.SortFunc(clients, func(a, b Client) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Id, b.Id))
	})
	return clients, nil
}

func matches(c Client, search string) bool {
	for _, field := range []string{c.Name, c.CompanyName, c.Document, c.Email} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id int) (bool, error) {
	if _, ok := s.clients[userId][id]; !ok {
		return false, nil
	}
	delete(s.clients[userId], id)
	return true, nil
}
