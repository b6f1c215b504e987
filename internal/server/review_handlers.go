package server

import (
	"context"

	"filmgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	ctx := c.Context()

	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	review.ID = 0

	created, err := s.reviewService.Create(ctx, &review)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateReview handles PUT /api/reviews
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	ctx := c.Context()

	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if review.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Review ID is required"))
	}

	updated, err := s.reviewService.Update(ctx, &review)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(updated)
}

// GetReviews handles GET /api/reviews?filmId=&count=
func (s *Server) GetReviews(c *fiber.Ctx) error {
	filmID := c.QueryInt("filmId", 0)
	count := c.QueryInt("count", 0)
	if filmID < 0 || count < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("filmId and count must be positive"))
	}

	reviews, err := s.reviewService.List(c.Context(), uint(filmID), count)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(reviews)
}

// GetReview handles GET /api/reviews/:id
func (s *Server) GetReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.Get(c.Context(), reviewID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.Delete(c.Context(), reviewID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeReview handles PUT /api/reviews/:id/like/:userId
func (s *Server) LikeReview(c *fiber.Ctx) error {
	return s.reviewVote(c, s.reviewService.AddLike)
}

// UnlikeReview handles DELETE /api/reviews/:id/like/:userId
func (s *Server) UnlikeReview(c *fiber.Ctx) error {
	return s.reviewVote(c, s.reviewService.RemoveLike)
}

// DislikeReview handles PUT /api/reviews/:id/dislike/:userId
func (s *Server) DislikeReview(c *fiber.Ctx) error {
	return s.reviewVote(c, s.reviewService.AddDislike)
}

// UndislikeReview handles DELETE /api/reviews/:id/dislike/:userId
func (s *Server) UndislikeReview(c *fiber.Ctx) error {
	return s.reviewVote(c, s.reviewService.RemoveDislike)
}

// reviewVote parses the shared :id/:userId params and applies one of the
// vote operations, responding with the refreshed review.
func (s *Server) reviewVote(
	c *fiber.Ctx,
	op func(ctx context.Context, reviewID, userID uint) (*models.Review, error),
) error {
	reviewID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	review, err := op(c.Context(), reviewID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(review)
}
