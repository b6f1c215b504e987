package service

import (
	"context"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

const defaultReviewCount = 10

// ReviewService mediates review persistence and usefulness voting. The
// usefulness score is recomputed by the repository from the vote rows on
// every mutation; this layer never touches it directly.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	filmRepo   repository.FilmRepository
	feed       FeedRecorder
}

// NewReviewService returns a new ReviewService.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	filmRepo repository.FilmRepository,
	feed FeedRecorder,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		filmRepo:   filmRepo,
		feed:       feed,
	}
}

// Create persists a new review with usefulness 0 and emits REVIEW/ADD.
func (s *ReviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Content == "" {
		return nil, models.NewValidationError("Review content is required")
	}
	if _, err := s.userRepo.GetByID(ctx, review.UserID); err != nil {
		return nil, err
	}
	if _, err := s.filmRepo.GetByID(ctx, review.FilmID); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if _, err := s.feed.Record(ctx, review.UserID, models.EventTypeReview, models.EventOperationAdd, review.ID); err != nil {
		return nil, err
	}
	return review, nil
}

// Update changes a review's content and polarity. Author and film
// references are immutable; the event is attributed to the stored author,
// not the caller's payload.
func (s *ReviewService) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if review.Content == "" {
		return nil, models.NewValidationError("Review content is required")
	}
	stored, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	stored.Content = review.Content
	stored.IsPositive = review.IsPositive
	if err := s.reviewRepo.Update(ctx, stored); err != nil {
		return nil, err
	}

	if _, err := s.feed.Record(ctx, stored.UserID, models.EventTypeReview, models.EventOperationUpdate, stored.ID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, stored.ID)
}

// Delete removes a review and its votes. The REVIEW/REMOVE event needs
// the author, so it is captured and emitted before the row goes away.
func (s *ReviewService) Delete(ctx context.Context, reviewID uint) error {
	stored, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if _, err := s.feed.Record(ctx, stored.UserID, models.EventTypeReview, models.EventOperationRemove, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

// Get returns a single review.
func (s *ReviewService) Get(ctx context.Context, reviewID uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, reviewID)
}

// List returns reviews ordered by descending usefulness. filmID 0 lists
// across all films.
func (s *ReviewService) List(ctx context.Context, filmID uint, count int) ([]models.Review, error) {
	if count <= 0 {
		count = defaultReviewCount
	}
	if filmID != 0 {
		if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
			return nil, err
		}
	}
	return s.reviewRepo.List(ctx, filmID, count)
}

// AddLike records a "useful" vote for the review.
func (s *ReviewService) AddLike(ctx context.Context, reviewID, userID uint) (*models.Review, error) {
	return s.vote(ctx, reviewID, userID, true, true)
}

// AddDislike records a "not useful" vote for the review.
func (s *ReviewService) AddDislike(ctx context.Context, reviewID, userID uint) (*models.Review, error) {
	return s.vote(ctx, reviewID, userID, false, true)
}

// RemoveLike withdraws a "useful" vote.
func (s *ReviewService) RemoveLike(ctx context.Context, reviewID, userID uint) (*models.Review, error) {
	return s.vote(ctx, reviewID, userID, true, false)
}

// RemoveDislike withdraws a "not useful" vote.
func (s *ReviewService) RemoveDislike(ctx context.Context, reviewID, userID uint) (*models.Review, error) {
	return s.vote(ctx, reviewID, userID, false, false)
}

func (s *ReviewService) vote(ctx context.Context, reviewID, userID uint, isUseful, add bool) (*models.Review, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var err error
	if add {
		err = s.reviewRepo.AddVote(ctx, reviewID, userID, isUseful)
	} else {
		err = s.reviewRepo.RemoveVote(ctx, reviewID, userID, isUseful)
	}
	if err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(ctx, reviewID)
}
