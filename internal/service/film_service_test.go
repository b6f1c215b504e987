package service

import (
	"context"
	"testing"

	"filmgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmServiceCreateRequiresName(t *testing.T) {
	t.Parallel()

	svc := NewFilmService(noopFilmRepo())
	_, err := svc.Create(context.Background(), &models.Film{Duration: 90})
	assertValidationError(t, err)
}

func TestFilmServiceGetUnknownFilm(t *testing.T) {
	t.Parallel()

	repo := noopFilmRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Film, error) {
		return nil, models.NewNotFoundError("Film", id)
	}
	svc := NewFilmService(repo)

	_, err := svc.Get(context.Background(), 99)
	assertNotFoundError(t, err)
}

func TestFilmServiceUpdatePersists(t *testing.T) {
	t.Parallel()

	var saved *models.Film
	repo := noopFilmRepo()
	repo.updateFn = func(_ context.Context, f *models.Film) error {
		saved = f
		return nil
	}
	svc := NewFilmService(repo)

	_, err := svc.Update(context.Background(), &models.Film{ID: 4, Name: "Renamed", Duration: 100})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Renamed", saved.Name)
}
