package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

// currentUserKey is unexported so only WithUser can place an operator into a context.
type currentUserKey struct{}

var ErrNoUser = errors.New("no user in context")

// WithUser returns a context carrying u as the operator acting on the request.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, currentUserKey{}, u)
}

// CurrentUser returns the operator set by WithUser, or ErrNoUser.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(currentUserKey{}).(User)
	if !ok {
		log.Trace("no user in request context")
		return User{}, ErrNoUser
	}
	return u, nil
}

func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}
