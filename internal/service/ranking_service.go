package service

import (
	"context"

	"filmgraph/internal/cache"
	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

const defaultPopularCount = 10

// RankingService provides read-only popularity queries over the film set.
type RankingService struct {
	filmRepo repository.FilmRepository
}

// NewRankingService returns a new RankingService.
func NewRankingService(filmRepo repository.FilmRepository) *RankingService {
	return &RankingService{filmRepo: filmRepo}
}

// MostPopular returns up to count films ordered by descending like count,
// ascending film ID on ties. Results are cached briefly; like mutations
// invalidate the cache.
func (s *RankingService) MostPopular(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		count = defaultPopularCount
	}

	var films []models.Film
	err := cache.CacheAside(ctx, cache.PopularKey(count), &films, cache.PopularTTL, func() error {
		var fetchErr error
		films, fetchErr = s.filmRepo.MostPopular(ctx, count)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}

// Search matches query case-insensitively against film titles and/or
// director names, ordered by descending like count. No match is an empty
// result, never an error.
func (s *RankingService) Search(ctx context.Context, query, by string) ([]models.Film, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	scope := repository.ParseSearchScope(by)
	return s.filmRepo.Search(ctx, query, scope)
}

// FilmsByDirector lists a director's films sorted by release year or by
// like count.
func (s *RankingService) FilmsByDirector(ctx context.Context, directorID uint, sortBy string) ([]models.Film, error) {
	if sortBy != "year" && sortBy != "likes" {
		return nil, models.NewValidationError("sortBy must be 'year' or 'likes'")
	}
	return s.filmRepo.ByDirector(ctx, directorID, sortBy)
}
