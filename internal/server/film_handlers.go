package server

import (
	"time"

	"filmgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Earliest admissible release date: the first public film screening.
var earliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const maxDescriptionLength = 200

// validateFilm checks film fields shared by create and update.
func validateFilm(film *models.Film) error {
	if film.Name == "" {
		return models.NewValidationError("Film name is required")
	}
	if len(film.Description) > maxDescriptionLength {
		return models.NewValidationError("Film description must be at most 200 characters")
	}
	if !film.ReleaseDate.IsZero() && film.ReleaseDate.Before(earliestReleaseDate) {
		return models.NewValidationError("Release date cannot be before 1895-12-28")
	}
	if film.Duration <= 0 {
		return models.NewValidationError("Film duration must be positive")
	}
	return nil
}

// CreateFilm handles POST /api/films
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	film.ID = 0
	if err := validateFilm(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	created, err := s.filmService.Create(ctx, &film)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateFilm handles PUT /api/films
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if film.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Film ID is required"))
	}
	if err := validateFilm(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	updated, err := s.filmService.Update(ctx, &film)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(updated)
}

// GetFilms handles GET /api/films
func (s *Server) GetFilms(c *fiber.Ctx) error {
	films, err := s.filmService.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /api/films/:id
func (s *Server) GetFilm(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	film, err := s.filmService.Get(c.Context(), filmID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(film)
}

// DeleteFilm handles DELETE /api/films/:id
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.DeleteFilm(c.Context(), filmID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeFilm handles PUT /api/films/:id/like/:userId
func (s *Server) LikeFilm(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.socialService.AddLike(c.Context(), filmID, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UnlikeFilm handles DELETE /api/films/:id/like/:userId
func (s *Server) UnlikeFilm(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.socialService.RemoveLike(c.Context(), filmID, userID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetPopularFilms handles GET /api/films/popular?count=
func (s *Server) GetPopularFilms(c *fiber.Ctx) error {
	count := c.QueryInt("count", 0)
	if count < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Count must be positive"))
	}

	films, err := s.rankingService.MostPopular(c.Context(), count)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(films)
}

// SearchFilms handles GET /api/films/search?query=&by=
func (s *Server) SearchFilms(c *fiber.Ctx) error {
	query := c.Query("query")
	by := c.Query("by", "title")

	films, err := s.rankingService.Search(c.Context(), query, by)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(films)
}

// GetFilmsByDirector handles GET /api/films/director/:directorId?sortBy=
func (s *Server) GetFilmsByDirector(c *fiber.Ctx) error {
	directorID, err := s.parseID(c, "directorId")
	if err != nil {
		return nil
	}
	sortBy := c.Query("sortBy", "likes")

	films, err := s.rankingService.FilmsByDirector(c.Context(), directorID, sortBy)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(films)
}
