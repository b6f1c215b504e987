package service

import (
	"context"
	"testing"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingMostPopularDefaultsCount(t *testing.T) {
	t.Parallel()

	var gotCount int
	repo := noopFilmRepo()
	repo.mostPopularFn = func(_ context.Context, count int) ([]models.Film, error) {
		gotCount = count
		return []models.Film{{ID: 1}}, nil
	}
	svc := NewRankingService(repo)

	_, err := svc.MostPopular(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, gotCount)

	_, err = svc.MostPopular(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, gotCount)
}

func TestRankingSearchRequiresQuery(t *testing.T) {
	t.Parallel()

	svc := NewRankingService(noopFilmRepo())
	_, err := svc.Search(context.Background(), "", "title")
	assertValidationError(t, err)
}

func TestRankingSearchParsesScope(t *testing.T) {
	t.Parallel()

	var gotScope repository.SearchScope
	repo := noopFilmRepo()
	repo.searchFn = func(_ context.Context, _ string, scope repoSearchScope) ([]models.Film, error) {
		gotScope = scope
		return nil, nil
	}
	svc := NewRankingService(repo)

	_, err := svc.Search(context.Background(), "crad", "title,director")
	require.NoError(t, err)
	assert.True(t, gotScope.Title)
	assert.True(t, gotScope.Director)

	_, err = svc.Search(context.Background(), "crad", "director")
	require.NoError(t, err)
	assert.False(t, gotScope.Title)
	assert.True(t, gotScope.Director)
}

func TestRankingFilmsByDirectorSortValidation(t *testing.T) {
	t.Parallel()

	svc := NewRankingService(noopFilmRepo())

	_, err := svc.FilmsByDirector(context.Background(), 1, "rating")
	assertValidationError(t, err)

	for _, sortBy := range []string{"year", "likes"} {
		_, err := svc.FilmsByDirector(context.Background(), 1, sortBy)
		require.NoError(t, err)
	}
}
