// Package service implements the application's business logic.
package service

import (
	"context"
	"encoding/json"

	"filmgraph/internal/middleware"
	"filmgraph/internal/models"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"

	"log/slog"
)

// FeedPublisher pushes a recorded event towards the user's live
// subscribers. Publishing is best-effort; the feed row is authoritative.
type FeedPublisher interface {
	PublishFeedEvent(ctx context.Context, userID uint, payload string) error
}

// FeedService provides the append-only activity feed.
type FeedService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	publisher FeedPublisher
}

// NewFeedService returns a new FeedService. publisher may be nil when no
// realtime delivery is configured.
func NewFeedService(eventRepo repository.EventRepository, userRepo repository.UserRepository, publisher FeedPublisher) *FeedService {
	return &FeedService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Record appends an event to the acting user's feed. The timestamp and
// identifier are store-assigned. Prior events are never touched.
func (s *FeedService) Record(ctx context.Context, userID uint, eventType models.EventType, operation models.EventOperation, entityID uint) (*models.Event, error) {
	event := &models.Event{
		UserID:    userID,
		EventType: eventType,
		Operation: operation,
		EntityID:  entityID,
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		return nil, err
	}

	observability.FeedEventsTotal.WithLabelValues(string(eventType), string(operation)).Inc()

	if s.publisher != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			if pubErr := s.publisher.PublishFeedEvent(ctx, userID, string(payload)); pubErr != nil {
				middleware.Logger.WarnContext(ctx, "feed event publish failed",
					slog.Any("user_id", userID),
					slog.String("error", pubErr.Error()),
				)
			}
		}
	}

	return event, nil
}

// ListForUser returns the user's feed in insertion order.
func (s *FeedService) ListForUser(ctx context.Context, userID uint) ([]models.Event, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListForUser(ctx, userID)
}
