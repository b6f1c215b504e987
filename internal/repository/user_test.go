package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"filmgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:    "grace@test.local",
		Login:    "grace",
		Name:     "Grace",
		Birthday: time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace", got.Login)
	assert.Equal(t, "grace@test.local", got.Email)

	_, err = repo.GetByID(ctx, 999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryCreateDuplicateConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, "taken")

	dupLogin := &models.User{
		Email:    "other@test.local",
		Login:    "taken",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err := repo.Create(ctx, dupLogin)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	dupEmail := &models.User{
		Email:    "taken@test.local",
		Login:    "someoneelse",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err = repo.Create(ctx, dupEmail)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, db, "before")
	user.Login = "after"
	user.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Login)
	assert.Equal(t, "Renamed", got.Name)

	err = repo.Update(ctx, &models.User{ID: 999, Email: "ghost@test.local", Login: "ghost"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryGetByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := mustCreateUsers(t, db, 3)

	got, err := repo.GetByIDs(ctx, []uint{users[2].ID, users[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, users[0].ID, got[0].ID, "results are ordered by ascending ID regardless of input order")
	assert.Equal(t, users[2].ID, got[1].ID)

	got, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepositoryDeletePurgesRelations(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	friendRepo := NewFriendRepository(db)
	filmRepo := NewFilmRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	users := mustCreateUsers(t, db, 3)
	film := mustCreateFilm(t, db, "Liked Film")

	require.NoError(t, friendRepo.Add(ctx, users[0].ID, users[1].ID))
	require.NoError(t, friendRepo.Add(ctx, users[2].ID, users[0].ID))
	require.NoError(t, filmRepo.Like(ctx, film.ID, users[0].ID))

	review := &models.Review{Content: "kept", UserID: users[1].ID, FilmID: film.ID}
	require.NoError(t, reviewRepo.Create(ctx, review))
	require.NoError(t, reviewRepo.AddVote(ctx, review.ID, users[0].ID, true))
	require.NoError(t, reviewRepo.AddVote(ctx, review.ID, users[2].ID, true))

	require.NoError(t, userRepo.Delete(ctx, users[0].ID))

	_, err := userRepo.GetByID(ctx, users[0].ID)
	require.Error(t, err)

	// Friendships in both column orders are gone.
	ids, err := friendRepo.GetFriendIDs(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	ids, err = friendRepo.GetFriendIDs(ctx, users[2].ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	var likeCount int64
	require.NoError(t, db.Model(&models.FilmLike{}).Where("user_id = ?", users[0].ID).Count(&likeCount).Error)
	assert.Zero(t, likeCount)

	// The deleted user's vote is removed and the review score recomputed.
	got, err := reviewRepo.GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Useful)

	err = userRepo.Delete(ctx, users[0].ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
