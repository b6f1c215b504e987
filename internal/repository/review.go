package repository

import (
	"context"
	"errors"

	"filmgraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for review and vote data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	List(ctx context.Context, filmID uint, count int) ([]models.Review, error)
	Delete(ctx context.Context, id uint) error

	AddVote(ctx context.Context, reviewID, userID uint, isUseful bool) error
	RemoveVote(ctx context.Context, reviewID, userID uint, isUseful bool) error
}

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// recomputeUseful rewrites the review's materialized usefulness from the
// authoritative vote rows. Always derived, never incremented, so the
// stored value cannot drift.
func recomputeUseful(tx *gorm.DB, reviewID uint) error {
	return tx.Exec(`
		UPDATE reviews SET useful =
			(SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND is_useful = ?) -
			(SELECT COUNT(*) FROM review_votes WHERE review_id = ? AND is_useful = ?)
		WHERE id = ?`,
		reviewID, true, reviewID, false, reviewID).Error
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.Useful = 0
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists content and polarity only; author and film references
// are immutable once written.
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"content":     review.Content,
			"is_positive": review.IsPositive,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Review", review.ID)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

// List returns reviews ordered by descending usefulness, review ID
// ascending on ties. filmID 0 means across all films.
func (r *reviewRepository) List(ctx context.Context, filmID uint, count int) ([]models.Review, error) {
	query := r.db.WithContext(ctx).
		Order("useful DESC, id ASC").
		Limit(count)
	if filmID != 0 {
		query = query.Where("film_id = ?", filmID)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Review", id)
		}
		return tx.Where("review_id = ?", id).Delete(&models.ReviewVote{}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

// AddVote records a usefulness vote and recomputes the review score in
// the same transaction. Repeated votes of the same polarity are no-ops.
func (r *reviewRepository) AddVote(ctx context.Context, reviewID, userID uint, isUseful bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote := &models.ReviewVote{ReviewID: reviewID, UserID: userID, IsUseful: isUseful}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(vote).Error; err != nil {
			return err
		}
		return recomputeUseful(tx, reviewID)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RemoveVote removes a usefulness vote and recomputes the review score in
// the same transaction. Removing an absent vote is a no-op.
func (r *reviewRepository) RemoveVote(ctx context.Context, reviewID, userID uint, isUseful bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ? AND user_id = ? AND is_useful = ?",
			reviewID, userID, isUseful).
			Delete(&models.ReviewVote{}).Error; err != nil {
			return err
		}
		return recomputeUseful(tx, reviewID)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
