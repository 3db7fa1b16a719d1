package registration

import "context"

type RepositoryStub struct {
	drafts map[int]map[string]Draft
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{drafts: map[int]map[string]Draft{}}
}

func (s *RepositoryStub) Store(ctx context.Context, userId int, draft Draft) error {
	if s.drafts[userId] == nil {
		s.drafts[userId] = map[string]Draft{}
	}
	s.drafts[userId][draft.Uid] = draft
	return nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, uid string) (Draft, error) {
	draft, ok := s.drafts[userId][uid]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return draft, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, draft Draft) error {
	stored, ok := s.drafts[userId][draft.Uid]
	if !ok {
		return ErrDraftNotFound
	}
	draft.ClientId = stored.ClientId
	draft.CreatedAt = stored.CreatedAt
	s.drafts[userId][draft.Uid] = draft
	return nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, uid string) (bool, error) {
	if _, ok := s.drafts[userId][uid]; !ok {
		return false, nil
	}
	delete(s.drafts[userId], uid)
	return true, nil
}
