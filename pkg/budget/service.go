package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidBudget = errors.New("invalid budget")

// Days a new budget stays valid when no expiry date is given.
const defaultValidityDays = 30

type Service interface {
	List(ctx context.Context, criteria Criteria) ([]Budget, error)
	Get(ctx context.Context, id string) (Budget, error)
	Create(ctx context.Context, budget Budget) (Budget, error)
	Approve(ctx context.Context, id string) (Budget, error)
	Reject(ctx context.Context, id string) (Budget, error)
	Delete(ctx context.Context, id string) (bool, error)
	Summary(ctx context.Context, criteria Criteria) (Summary, error)
	Seed(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo       Repository
	eventBus   *event_bus.EventBus
	clock      utils.Clock
	seedOnList bool
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock, seedOnList bool) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock, seedOnList: seedOnList}
}

func (s *ServiceImpl) List(ctx context.Context, criteria Criteria) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if s.seedOnList {
		if _, err := s.repo.SeedIfAbsent(ctx, userId, SeedBudgets()); err != nil {
			return nil, err
		}
	}

	budgets, err := s.repo.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	if criteria.IsZero() {
		return budgets, nil
	}
	filtered := Filter(budgets, criteria)
	log.Debugf("filtered %d of %d budgets for user %d", len(filtered), len(budgets), userId)
	return filtered, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}

	budget, err = s.prepareNew(budget, currentUser)
	if err != nil {
		return Budget{}, err
	}

	id, err := s.repo.Store(ctx, currentUser.Id, budget)
	if err != nil {
		return Budget{}, err
	}
	budget.Id = id

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetCreatedType, event_bus.BudgetCreated{
		BudgetId:   budget.Id,
		ClientName: budget.Client.Name,
		Value:      budget.Value,
	}))
	if err != nil {
		// The budget is stored; a failed notification must not fail the request.
		log.Errorf("failed to publish budget created event: %v", err)
	}
	return budget, nil
}

// prepareNew validates a budget sent by the dashboard and fills the fields owned by the service:
// status, dates, item totals, value and the first history entry.
func (s *ServiceImpl) prepareNew(budget Budget, author user.User) (Budget, error) {
	if strings.TrimSpace(budget.Client.Name) == "" {
		return Budget{}, fmt.Errorf("%w: client name is required", ErrInvalidBudget)
	}

	now := s.clock.Now()
	budget.Status = StatusPending
	budget.IssueDate = FormatDate(now)
	if budget.ExpiryDate == "" {
		budget.ExpiryDate = FormatDate(now.AddDate(0, 0, defaultValidityDays))
	} else {
		expiry, err := ParseDate(budget.ExpiryDate)
		if err != nil {
			return Budget{}, fmt.Errorf("%w: %w", ErrInvalidBudget, err)
		}
		if expiry.Before(truncateToDate(now)) {
			return Budget{}, fmt.Errorf("%w: expiry date %s is in the past", ErrInvalidBudget, budget.ExpiryDate)
		}
		budget.ExpiryDate = FormatDate(expiry)
	}

	if len(budget.Items) > 0 {
		total := decimal.Zero
		items := make([]Item, 0, len(budget.Items))
		for i, item := range budget.Items {
			if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 {
				return Budget{}, fmt.Errorf("%w: item %d needs a name and a positive quantity", ErrInvalidBudget, i+1)
			}
			unitPrice, err := ParseCurrency(item.UnitPrice)
			if err != nil {
				return Budget{}, fmt.Errorf("%w: item %d: %w", ErrInvalidBudget, i+1, err)
			}
			itemTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(itemTotal)

			item.Id = i + 1
			item.UnitPrice = FormatCurrency(unitPrice)
			item.Total = FormatCurrency(itemTotal)
			items = append(items, item)
		}
		budget.Items = items
		budget.Value = FormatCurrency(total)
	} else {
		value, err := ParseCurrency(budget.Value)
		if err != nil {
			return Budget{}, fmt.Errorf("%w: %w", ErrInvalidBudget, err)
		}
		budget.Value = FormatCurrency(value)
	}

	budget.History = []HistoryEvent{{
		Timestamp: now.Format(DateTimeLayout),
		Event:     "Orçamento criado",
		Actor:     author.DisplayName,
	}}
	return budget, nil
}

func (s *ServiceImpl) Approve(ctx context.Context, id string) (Budget, error) {
	return s.changeStatus(ctx, id, StatusApproved)
}

func (s *ServiceImpl) Reject(ctx context.Context, id string) (Budget, error) {
	return s.changeStatus(ctx, id, StatusRejected)
}

func (s *ServiceImpl) changeStatus(ctx context.Context, id string, to Status) (Budget, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}

	budget, err := s.repo.Get(ctx, currentUser.Id, id)
	if err != nil {
		return Budget{}, err
	}
	from := budget.Status
	if err := checkTransition(from, to); err != nil {
		return Budget{}, err
	}

	now := s.clock.Now()
	event := HistoryEvent{
		Timestamp: now.Format(DateTimeLayout),
		Event:     transitionEvents[to],
		Actor:     currentUser.DisplayName,
	}
	updated, err := s.repo.UpdateStatus(ctx, currentUser.Id, id, from, to, event)
	if err != nil {
		return Budget{}, err
	}
	if !updated {
		// Changed or deleted after it was read.
		return Budget{}, fmt.Errorf("%w: budget %s is no longer %s", ErrInvalidStatusTransition, id, from)
	}

	budget.Status = to
	budget.History = append(budget.History, event)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetStatusChangedType, event_bus.BudgetStatusChanged{
		BudgetId:   budget.Id,
		ClientName: budget.Client.Name,
		From:       string(from),
		To:         string(to),
		ChangedAt:  now,
		ChangedBy:  currentUser.DisplayName,
	}))
	if err != nil {
		log.Errorf("failed to publish budget status change event: %v", err)
	}
	return budget, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget %s not deleted, it does not exist for user %d", id, userId)
	}
	return deleted, nil
}

func (s *ServiceImpl) Summary(ctx context.Context, criteria Criteria) (Summary, error) {
	budgets, err := s.List(ctx, criteria)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(budgets), nil
}

func (s *ServiceImpl) Seed(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	inserted, err := s.repo.SeedIfAbsent(ctx, userId, SeedBudgets())
	if err != nil {
		return 0, err
	}
	log.Infof("seeded %d budgets for user %d", inserted, userId)
	return inserted, nil
}
