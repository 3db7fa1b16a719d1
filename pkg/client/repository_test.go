package client

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/backoffice/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	test_utils.TerminateDB()
	os.Exit(code)
}

func newClient(name, document string) Client {
	return Client{
		Uid:        uuid.NewString(),
		PersonType: Individual,
		Name:       name,
		Document:   document,
		Email:      "contato@example.com",
		CreatedAt:  time.Date(2024, 3, 20, 10, 30, 0, 0, time.UTC),
	}
}

func TestRepositoryImpl_CreateAndGet(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)

	// when
	created, err := repo.Create(ctx, u.Id, newClient("Maria Silva", "12345678901"))
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, u.Id, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Uid, stored.Uid)
	assert.Equal(t, "Maria Silva", stored.Name)
	assert.JSONEq(t, `{}`, string(stored.Form))
	assert.True(t, created.CreatedAt.Equal(stored.CreatedAt))
}

func TestRepositoryImpl_DuplicateDocument(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	_, err := repo.Create(ctx, u.Id, newClient("Maria Silva", "12345678901"))
	require.NoError(t, err)

	// when
	_, err = repo.Create(ctx, u.Id, newClient("Maria S.", "12345678901"))

	// then
	assert.ErrorIs(t, err, ErrClientExists)

	otherCtx, other := test_utils.CreateTestUser(t, db)
	_, err = repo.Create(otherCtx, other.Id, newClient("Maria Silva", "12345678901"))
	assert.NoError(t, err)
}

func TestRepositoryImpl_UpdateListDelete(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	maria, err := repo.Create(ctx, u.Id, newClient("Maria Silva", "12345678901"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, u.Id, newClient("Ana Costa", "98765432100"))
	require.NoError(t, err)

	// when
	maria.Email = "maria@silva.com.br"
	maria.UpdatedAt = maria.CreatedAt.Add(time.Hour)
	updated, err := repo.Update(ctx, u.Id, maria)
	require.NoError(t, err)

	// then
	assert.Equal(t, "maria@silva.com.br", updated.Email)

	all, err := repo.List(ctx, u.Id, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana Costa", all[0].Name)

	found, err := repo.List(ctx, u.Id, "SILVA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, maria.Id, found[0].Id)

	deleted, err := repo.Delete(ctx, u.Id, maria.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.Get(ctx, u.Id, maria.Id)
	assert.ErrorIs(t, err, ErrClientNotFound)
	_, err = repo.Update(ctx, u.Id, maria)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
