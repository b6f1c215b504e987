package service

import (
	"context"
	"testing"

	"filmgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreateDefaultsNameToLogin(t *testing.T) {
	t.Parallel()

	var saved *models.User
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), &models.User{
		Email: "dolore@mail.test",
		Login: "dolore",
	})
	require.NoError(t, err)
	assert.Equal(t, "dolore", user.Name)
	require.NotNil(t, saved)
	assert.Equal(t, "dolore", saved.Name)
}

func TestUserServiceCreateKeepsExplicitName(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	user, err := svc.Create(context.Background(), &models.User{
		Email: "nick@mail.test",
		Login: "nick",
		Name:  "Nick Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nick Name", user.Name)
}

func TestUserServiceCreateConflictPropagates(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, _ *models.User) error {
		return models.NewConflictError("Email or login is already registered")
	}
	svc := NewUserService(repo)

	_, err := svc.Create(context.Background(), &models.User{Email: "a@b.c", Login: "a"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
