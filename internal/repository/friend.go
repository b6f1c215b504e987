package repository

import (
	"context"

	"filmgraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friendship data operations.
// A friendship is symmetric; one row covers both directions.
type FriendRepository interface {
	Add(ctx context.Context, userID, friendID uint) error
	Remove(ctx context.Context, userID, friendID uint) error
	AreFriends(ctx context.Context, userID, friendID uint) (bool, error)
	GetFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// orderPair normalizes a friendship pair to (low, high) so the unique
// index covers both call orders and repeated adds hit the same row.
func orderPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *friendRepository) Add(ctx context.Context, userID, friendID uint) error {
	lo, hi := orderPair(userID, friendID)
	friendship := &models.Friendship{UserID: lo, FriendID: hi}
	// ON CONFLICT DO NOTHING keeps repeated adds idempotent under races.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(friendship).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Remove(ctx context.Context, userID, friendID uint) error {
	lo, hi := orderPair(userID, friendID)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", lo, hi).
		Delete(&models.Friendship{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, friendID uint) (bool, error) {
	lo, hi := orderPair(userID, friendID)
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", lo, hi).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *friendRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Select("CASE WHEN user_id = ? THEN friend_id ELSE user_id END", userID).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Scan(&ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.user_id OR users.id = f.friend_id)").
		Where("(f.user_id = ? OR f.friend_id = ?) AND users.id != ?", userID, userID, userID).
		Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
