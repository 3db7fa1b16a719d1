package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/backoffice/internal/event_bus"
	"github.com/klokku/backoffice/internal/utils"
	"github.com/klokku/backoffice/pkg/client"
	"github.com/klokku/backoffice/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrNotOnLastStep = errors.New("registration can only be submitted from the last step")
var ErrInvalidPersonType = errors.New("invalid person type")

type Service interface {
	Start(ctx context.Context, form Form) (Draft, error)
	StartFromClient(ctx context.Context, clientId int) (Draft, error)
	Get(ctx context.Context, uid string) (Draft, error)
	UpdateForm(ctx context.Context, uid string, form Form) (Draft, error)
	Next(ctx context.Context, uid string) (Draft, error)
	Previous(ctx context.Context, uid string) (Draft, error)
	Submit(ctx context.Context, uid string) (client.Client, error)
	Discard(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo          Repository
	clientService client.Service
	eventBus      *event_bus.EventBus
	clock         utils.Clock
}

func NewService(repo Repository, clientService client.Service, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:          repo,
		clientService: clientService,
		eventBus:      eventBus,
		clock:         clock,
	}
}

func (s *ServiceImpl) Start(ctx context.Context, form Form) (Draft, error) {
	return s.start(ctx, 0, form)
}

func (s *ServiceImpl) StartFromClient(ctx context.Context, clientId int) (Draft, error) {
	c, err := s.clientService.Get(ctx, clientId)
	if err != nil {
		return Draft{}, err
	}
	return s.start(ctx, c.Id, formFromClient(c))
}

func (s *ServiceImpl) start(ctx context.Context, clientId int, form Form) (Draft, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to get current user: %w", err)
	}

	form, err = normalizeForm(form)
	if err != nil {
		return Draft{}, err
	}

	now := s.clock.Now()
	draft := Draft{
		Uid:         uuid.NewString(),
		ClientId:    clientId,
		Form:        form,
		CurrentStep: 1,
		ActiveTab:   TabPersonal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Store(ctx, userId, draft); err != nil {
		return Draft{}, err
	}
	log.Debugf("registration draft %s started for user %d", draft.Uid, userId)
	return draft, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Draft, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, uid)
}

// UpdateForm replaces the form. When person type or loan request changed, the wizard position is
// reconciled with the new tab sequence.
func (s *ServiceImpl) UpdateForm(ctx context.Context, uid string, form Form) (Draft, error) {
	form, err := normalizeForm(form)
	if err != nil {
		return Draft{}, err
	}
	return s.update(ctx, uid, func(draft *Draft) error {
		draft.Form = form
		draft.CurrentStep, draft.ActiveTab = Reconcile(draft.ActiveTab, draft.Tabs())
		return nil
	})
}

// Next validates the active tab and moves forward. A validation failure leaves the draft unchanged.
func (s *ServiceImpl) Next(ctx context.Context, uid string) (Draft, error) {
	return s.update(ctx, uid, func(draft *Draft) error {
		step, tab, err := Advance(draft.CurrentStep, draft.Tabs(), func(tab TabID) error {
			return ValidateTab(draft.Form, tab)
		})
		if err != nil {
			return err
		}
		draft.CurrentStep, draft.ActiveTab = step, tab
		return nil
	})
}

func (s *ServiceImpl) Previous(ctx context.Context, uid string) (Draft, error) {
	return s.update(ctx, uid, func(draft *Draft) error {
		draft.CurrentStep, draft.ActiveTab = Retreat(draft.CurrentStep, draft.Tabs())
		return nil
	})
}

func (s *ServiceImpl) update(ctx context.Context, uid string, change func(draft *Draft) error) (Draft, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to get current user: %w", err)
	}
	draft, err := s.repo.Get(ctx, userId, uid)
	if err != nil {
		return Draft{}, err
	}
	if err := change(&draft); err != nil {
		return Draft{}, err
	}
	draft.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, userId, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// Submit validates every applicable tab, stores the client and removes the draft.
func (s *ServiceImpl) Submit(ctx context.Context, uid string) (client.Client, error) {
	draft, err := s.Get(ctx, uid)
	if err != nil {
		return client.Client{}, err
	}
	tabs := draft.Tabs()
	if draft.CurrentStep != len(tabs) {
		return client.Client{}, fmt.Errorf("%w: draft is on step %d of %d", ErrNotOnLastStep, draft.CurrentStep, len(tabs))
	}
	if err := ValidateAll(draft.Form); err != nil {
		return client.Client{}, err
	}

	c, err := clientFromForm(draft.Form)
	if err != nil {
		return client.Client{}, err
	}
	updated := draft.ClientId != 0
	if updated {
		c.Id = draft.ClientId
		c, err = s.clientService.Update(ctx, c)
	} else {
		c, err = s.clientService.Create(ctx, c)
	}
	if err != nil {
		return client.Client{}, err
	}

	if _, err := s.Discard(ctx, uid); err != nil {
		log.Warnf("client %d saved but draft %s was not removed: %v", c.Id, uid, err)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ClientRegisteredType, event_bus.ClientRegistered{
		ClientId: c.Id,
		Name:     c.Name,
		Updated:  updated,
	}))
	if err != nil {
		log.Errorf("failed to publish client registered event: %v", err)
	}
	return c, nil
}

func (s *ServiceImpl) Discard(ctx context.Context, uid string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, uid)
}

func normalizeForm(form Form) (Form, error) {
	switch form.PersonType {
	case "":
		form.PersonType = Individual
	case Individual, Organization:
	default:
		return Form{}, fmt.Errorf("%w: %q", ErrInvalidPersonType, form.PersonType)
	}
	form.Personal.State = strings.ToUpper(strings.TrimSpace(form.Personal.State))
	form.Personal.Email = strings.TrimSpace(form.Personal.Email)
	return form, nil
}

func clientFromForm(form Form) (client.Client, error) {
	raw, err := json.Marshal(form)
	if err != nil {
		return client.Client{}, fmt.Errorf("could not encode registration form: %w", err)
	}

	address := fmt.Sprintf("%s - %s, %s", form.Personal.Address, form.Personal.City, form.Personal.State)
	c := client.Client{
		PersonType: client.PersonType(form.PersonType),
		Name:       form.Personal.FullName,
		Document:   form.Personal.Cpf,
		Email:      form.Personal.Email,
		Phone:      form.Personal.Phone,
		Address:    address,
		WantsLoan:  form.WantsLoan,
		Form:       raw,
	}
	if form.PersonType == Organization {
		c.Name = form.Business.CompanyName
		c.Document = form.Business.Cnpj
		c.CompanyName = form.Business.CompanyName
		c.TradeName = form.Business.TradeName
	}
	if form.WantsLoan {
		c.LoanAmount = form.Loan.Amount
	}
	return c, nil
}

// formFromClient restores the form a client was registered with. Clients created elsewhere get a form
// built from their stored fields.
func formFromClient(c client.Client) Form {
	var form Form
	if len(c.Form) > 0 {
		err := json.Unmarshal(c.Form, &form)
		if err == nil && form.Personal.FullName != "" {
			return form
		}
		log.Debugf("client %d has no usable registration form: %v", c.Id, err)
	}

	form = Form{
		PersonType: PersonType(c.PersonType),
		WantsLoan:  c.WantsLoan,
		Personal: Personal{
			FullName: c.Name,
			Email:    c.Email,
			Phone:    c.Phone,
			Address:  c.Address,
		},
		Loan: Loan{Amount: c.LoanAmount},
	}
	if c.PersonType == client.Organization {
		form.Business = Business{CompanyName: c.CompanyName, TradeName: c.TradeName, Cnpj: c.Document}
	} else {
		form.Personal.Cpf = c.Document
	}
	return form
}
