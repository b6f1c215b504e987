package service

import (
	"context"
	"time"

	"filmgraph/internal/cache"
	"filmgraph/internal/models"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"
)

// neighborCount is how many co-liking users feed a recommendation.
const neighborCount = 3

// RecommendationService suggests films to a user based on the like
// behavior of the users whose taste overlaps most with theirs: a
// k-nearest-neighbor collaborative filter over the binary like matrix,
// recomputed per call.
type RecommendationService struct {
	userRepo repository.UserRepository
	filmRepo repository.FilmRepository
}

// NewRecommendationService returns a new RecommendationService.
func NewRecommendationService(userRepo repository.UserRepository, filmRepo repository.FilmRepository) *RecommendationService {
	return &RecommendationService{
		userRepo: userRepo,
		filmRepo: filmRepo,
	}
}

// Recommend returns films liked by the user's nearest neighbors that the
// user has not liked yet. Users with no like overlap produce an empty
// result, never an error.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint) ([]models.Film, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	start := time.Now()
	defer observability.ObserveRecommendation(start)

	films := []models.Film{}
	err := cache.CacheAside(ctx, cache.RecommendationsKey(userID), &films, cache.RecommendationsTTL, func() error {
		var fetchErr error
		films, fetchErr = s.compute(ctx, userID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}

func (s *RecommendationService) compute(ctx context.Context, userID uint) ([]models.Film, error) {
	neighbors, err := s.filmRepo.CoLikedNeighbors(ctx, userID, neighborCount)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []models.Film{}, nil
	}

	candidates, err := s.filmRepo.FilmsLikedByUsers(ctx, neighbors)
	if err != nil {
		return nil, err
	}

	likedIDs, err := s.filmRepo.GetLikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	liked := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}

	result := make([]models.Film, 0, len(candidates))
	for _, film := range candidates {
		if _, ok := liked[film.ID]; ok {
			continue
		}
		result = append(result, film)
	}
	return result, nil
}
