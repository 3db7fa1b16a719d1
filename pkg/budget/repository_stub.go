package budget

import (
	"context"
	"fmt"
	"slices"
)

type RepositoryStub struct {
	budgets map[int][]Budget
	seeded  map[int]bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{budgets: map[int][]Budget{}, seeded: map[int]bool{}}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]Budget, error) {
	return slices.Clone(s.budgets[userId]), nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id string) (Budget, error) {
	for _, b := range s.budgets[userId] {
		if b.Id == id {
			return b, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, budget Budget) (string, error) {
	budget.Id = fmt.Sprintf("ORC%03d", len(s.budgets[userId])+1)
	s.budgets[userId] = append(s.budgets[userId], withNonNilCollections(budget))
	return budget.Id, nil
}

func (s *RepositoryStub) UpdateStatus(ctx context.Context, userId int, id string, from, to Status, event HistoryEvent) (bool, error) {
	for i, b := range s.budgets[userId] {
		if b.Id == id && b.Status == from {
			b.Status = to
			b.History = append(slices.Clone(b.History), event)
			s.budgets[userId][i] = b
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id string) (bool, error) {
	before := len(s.budgets[userId])
	s.budgets[userId] = slices.DeleteFunc(s.budgets[userId], func(b Budget) bool { return b.Id == id })
	return len(s.budgets[userId]) < before, nil
}

func (s *RepositoryStub) SeedIfAbsent(ctx context.Context, userId int, budgets []Budget) (int, error) {
	if s.seeded[userId] {
		return 0, nil
	}
	s.seeded[userId] = true
	for _, b := range budgets {
		s.budgets[userId] = append(s.budgets[userId], withNonNilCollections(b))
	}
	return len(budgets), nil
}

func (s *RepositoryStub) Cleanup() {
	s.budgets = map[int][]Budget{}
	s.seeded = map[int]bool{}
}
