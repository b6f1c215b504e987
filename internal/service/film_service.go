package service

import (
	"context"

	"filmgraph/internal/cache"
	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

// FilmService provides plain film persistence. Like mutations live in
// SocialService; ranking queries in RankingService.
type FilmService struct {
	filmRepo repository.FilmRepository
}

// NewFilmService returns a new FilmService.
func NewFilmService(filmRepo repository.FilmRepository) *FilmService {
	return &FilmService{filmRepo: filmRepo}
}

// Create registers a film with its genre, director and MPA references.
func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if film.Name == "" {
		return nil, models.NewValidationError("Film name is required")
	}
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.GetByID(ctx, film.ID)
}

// Update replaces a film's descriptive fields and associations.
func (s *FilmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if film.Name == "" {
		return nil, models.NewValidationError("Film name is required")
	}
	if err := s.filmRepo.Update(ctx, film); err != nil {
		return nil, err
	}
	cache.InvalidateFilm(ctx, film.ID)
	return s.filmRepo.GetByID(ctx, film.ID)
}

// Get returns a single film with its associations and like count.
func (s *FilmService) Get(ctx context.Context, filmID uint) (*models.Film, error) {
	film := &models.Film{}
	err := cache.CacheAside(ctx, cache.FilmKey(filmID), film, cache.FilmTTL, func() error {
		fetched, fetchErr := s.filmRepo.GetByID(ctx, filmID)
		if fetchErr != nil {
			return fetchErr
		}
		*film = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return film, nil
}

// List returns all films.
func (s *FilmService) List(ctx context.Context) ([]models.Film, error) {
	return s.filmRepo.List(ctx)
}
