package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/backoffice/pkg/user"
)

// CreateTestUser inserts an operator and returns a context carrying it. Every call creates a new user,
// so tests sharing one database do not see each other's rows.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) (context.Context, user.User) {
	t.Helper()
	ctx := context.Background()

	u := user.User{
		Uid:         uuid.NewString(),
		Username:    "test_" + uuid.NewString()[:8],
		DisplayName: "Test User",
		Role:        user.RoleOperator,
	}
	id, err := user.NewUserRepo(db).CreateUser(ctx, u)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	u.Id = id
	return user.WithUser(ctx, u), u
}
