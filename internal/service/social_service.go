package service

import (
	"context"

	"filmgraph/internal/cache"
	"filmgraph/internal/models"
	"filmgraph/internal/repository"
)

// FeedRecorder appends an event to the activity feed.
type FeedRecorder interface {
	Record(ctx context.Context, userID uint, eventType models.EventType, operation models.EventOperation, entityID uint) (*models.Event, error)
}

// SocialService owns the friendship relation between users and the like
// relation between users and films. All mutations of either relation go
// through here so symmetry, idempotence and feed emission stay in one place.
type SocialService struct {
	userRepo   repository.UserRepository
	filmRepo   repository.FilmRepository
	friendRepo repository.FriendRepository
	feed       FeedRecorder
}

// NewSocialService returns a new SocialService.
func NewSocialService(
	userRepo repository.UserRepository,
	filmRepo repository.FilmRepository,
	friendRepo repository.FriendRepository,
	feed FeedRecorder,
) *SocialService {
	return &SocialService{
		userRepo:   userRepo,
		filmRepo:   filmRepo,
		friendRepo: friendRepo,
		feed:       feed,
	}
}

// AddFriend makes two users friends. The relation is symmetric and the
// operation is idempotent. Emits FRIEND/ADD for the acting user.
func (s *SocialService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return models.NewValidationError("Cannot add yourself as a friend")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	if err := s.friendRepo.Add(ctx, userID, friendID); err != nil {
		return err
	}

	_, err := s.feed.Record(ctx, userID, models.EventTypeFriend, models.EventOperationAdd, friendID)
	return err
}

// RemoveFriend dissolves a friendship. Idempotent when the users are not
// currently friends. Emits FRIEND/REMOVE for the acting user.
func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	if err := s.friendRepo.Remove(ctx, userID, friendID); err != nil {
		return err
	}

	_, err := s.feed.Record(ctx, userID, models.EventTypeFriend, models.EventOperationRemove, friendID)
	return err
}

// GetFriends returns the user's friends as full user records.
func (s *SocialService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.friendRepo.GetFriends(ctx, userID)
}

// GetMutualFriends returns the intersection of two users' friend sets.
func (s *SocialService) GetMutualFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}

	userFriends, err := s.friendRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	otherFriends, err := s.friendRepo.GetFriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	otherSet := make(map[uint]struct{}, len(otherFriends))
	for _, id := range otherFriends {
		otherSet[id] = struct{}{}
	}
	var mutual []uint
	for _, id := range userFriends {
		if _, ok := otherSet[id]; ok {
			mutual = append(mutual, id)
		}
	}

	return s.userRepo.GetByIDs(ctx, mutual)
}

// AddLike records userID's like on filmID. Idempotent. Emits LIKE/ADD
// and invalidates the ranking and recommendation caches.
func (s *SocialService) AddLike(ctx context.Context, filmID, userID uint) error {
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.filmRepo.Like(ctx, filmID, userID); err != nil {
		return err
	}

	s.invalidateLikeCaches(ctx, filmID, userID)

	_, err := s.feed.Record(ctx, userID, models.EventTypeLike, models.EventOperationAdd, filmID)
	return err
}

// RemoveLike removes userID's like on filmID. Idempotent. Emits
// LIKE/REMOVE so the feed records both directions of the relation.
func (s *SocialService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if _, err := s.filmRepo.GetByID(ctx, filmID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.filmRepo.Unlike(ctx, filmID, userID); err != nil {
		return err
	}

	s.invalidateLikeCaches(ctx, filmID, userID)

	_, err := s.feed.Record(ctx, userID, models.EventTypeLike, models.EventOperationRemove, filmID)
	return err
}

// DeleteUser removes a user and purges every relation the user
// participates in, so no friend set or like set keeps a dangling
// reference.
func (s *SocialService) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	cache.InvalidatePopular(ctx)
	cache.InvalidateAllRecommendations(ctx)
	return nil
}

// DeleteFilm removes a film together with its likes, reviews and lookup
// associations, and drops it from all cached rankings and
// recommendations.
func (s *SocialService) DeleteFilm(ctx context.Context, filmID uint) error {
	if err := s.filmRepo.Delete(ctx, filmID); err != nil {
		return err
	}
	cache.InvalidateFilm(ctx, filmID)
	cache.InvalidatePopular(ctx)
	cache.InvalidateAllRecommendations(ctx)
	return nil
}

// invalidateLikeCaches drops cached results a like mutation can change.
// Only the acting user's recommendations are invalidated eagerly; other
// users' entries age out on their short TTL.
func (s *SocialService) invalidateLikeCaches(ctx context.Context, filmID, userID uint) {
	cache.InvalidateFilm(ctx, filmID)
	cache.InvalidatePopular(ctx)
	cache.InvalidateRecommendations(ctx, userID)
}
