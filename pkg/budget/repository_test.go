package budget

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/klokku/backoffice/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	test_utils.TerminateDB()
	os.Exit(code)
}

func TestRepositoryImpl_SeedAndList(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)

	// when
	first, err := repo.SeedIfAbsent(ctx, u.Id, SeedBudgets())
	require.NoError(t, err)
	second, err := repo.SeedIfAbsent(ctx, u.Id, SeedBudgets())
	require.NoError(t, err)

	// then
	assert.Equal(t, 5, first)
	assert.Equal(t, 0, second)
	budgets, err := repo.List(ctx, u.Id)
	require.NoError(t, err)
	expected := SeedBudgets()
	for i := range expected {
		expected[i] = withNonNilCollections(expected[i])
	}
	assert.Equal(t, expected, budgets)
}

func TestRepositoryImpl_Store(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	budget := Budget{Client: Client{Name: "Padaria"}, Value: "R$ 100,00", IssueDate: "20/03/2024", Status: StatusPending}

	// when
	firstId, err := repo.Store(ctx, u.Id, budget)
	require.NoError(t, err)
	secondId, err := repo.Store(ctx, u.Id, budget)
	require.NoError(t, err)

	// then
	assert.Equal(t, "ORC001", firstId)
	assert.Equal(t, "ORC002", secondId)
	stored, err := repo.Get(ctx, u.Id, secondId)
	require.NoError(t, err)
	assert.Equal(t, "Padaria", stored.Client.Name)
	assert.Equal(t, []Item{}, stored.Items)
	assert.Equal(t, []HistoryEvent{}, stored.History)

	_, other := test_utils.CreateTestUser(t, db)
	_, err = repo.Get(ctx, other.Id, firstId)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepositoryImpl_UpdateStatus(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	_, err := repo.SeedIfAbsent(ctx, u.Id, SeedBudgets())
	require.NoError(t, err)
	event := HistoryEvent{Timestamp: "20/03/2024 10:30", Event: "Orçamento aprovado", Actor: "Test User"}

	// when
	updated, err := repo.UpdateStatus(ctx, u.Id, "ORC001", StatusPending, StatusApproved, event)
	require.NoError(t, err)
	again, err := repo.UpdateStatus(ctx, u.Id, "ORC001", StatusPending, StatusRejected, event)
	require.NoError(t, err)

	// then
	assert.True(t, updated)
	assert.False(t, again)
	stored, err := repo.Get(ctx, u.Id, "ORC001")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
	assert.Len(t, stored.History, 3)
	assert.Equal(t, event, stored.History[2])
}

func TestRepositoryImpl_Delete(t *testing.T) {
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	_, err := repo.SeedIfAbsent(ctx, u.Id, SeedBudgets())
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, u.Id, "ORC003")
	require.NoError(t, err)
	deletedAgain, err := repo.Delete(ctx, u.Id, "ORC003")
	require.NoError(t, err)

	assert.True(t, deleted)
	assert.False(t, deletedAgain)
	budgets, err := repo.List(ctx, u.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"ORC001", "ORC002", "ORC004", "ORC005"}, ids(budgets))
}

func TestRepositoryImpl_StoreConcurrently(t *testing.T) {
	// given
	db := test_utils.DB(t)
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := NewRepository(db)
	const creates = 10

	// when
	var wg sync.WaitGroup
	stored := make([]string, creates)
	errs := make([]error, creates)
	for i := range creates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored[i], errs[i] = repo.Store(ctx, u.Id, Budget{Client: Client{Name: "Padaria"}, Status: StatusPending})
		}()
	}
	wg.Wait()

	// then
	for _, err := range errs {
		require.NoError(t, err)
	}
	expected := make([]string, 0, creates)
	for n := 1; n <= creates; n++ {
		expected = append(expected, fmt.Sprintf("ORC%03d", n))
	}
	assert.ElementsMatch(t, expected, stored)
}
