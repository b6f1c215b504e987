package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"filmgraph/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherStub struct {
	published []string
	err       error
}

func (p *publisherStub) PublishFeedEvent(_ context.Context, _ uint, payload string) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload)
	return nil
}

func TestFeedServiceRecordAppends(t *testing.T) {
	t.Parallel()

	var appended []*models.Event
	eventRepo := noopEventRepo()
	eventRepo.appendFn = func(_ context.Context, e *models.Event) error {
		e.ID = uint(len(appended) + 1)
		e.Timestamp = int64(1000 + len(appended))
		appended = append(appended, e)
		return nil
	}
	svc := NewFeedService(eventRepo, noopUserRepo(), nil)

	event, err := svc.Record(context.Background(), 1, models.EventTypeLike, models.EventOperationAdd, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, int64(1000), event.Timestamp)

	// A repeat of the same action appends a second row; nothing is updated.
	event2, err := svc.Record(context.Background(), 1, models.EventTypeLike, models.EventOperationAdd, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(2), event2.ID)
	assert.Len(t, appended, 2)
}

func TestFeedServiceRecordPublishes(t *testing.T) {
	t.Parallel()

	pub := &publisherStub{}
	svc := NewFeedService(noopEventRepo(), noopUserRepo(), pub)

	_, err := svc.Record(context.Background(), 7, models.EventTypeFriend, models.EventOperationAdd, 8)
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	var event models.Event
	require.NoError(t, json.Unmarshal([]byte(pub.published[0]), &event))
	assert.Equal(t, uint(7), event.UserID)
	assert.Equal(t, models.EventTypeFriend, event.EventType)
	assert.Equal(t, uint(8), event.EntityID)
}

func TestFeedServiceRecordPublishFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	pub := &publisherStub{err: errors.New("redis down")}
	svc := NewFeedService(noopEventRepo(), noopUserRepo(), pub)

	_, err := svc.Record(context.Background(), 7, models.EventTypeFriend, models.EventOperationAdd, 8)
	require.NoError(t, err, "the feed row is authoritative; publish is best-effort")
}

func TestFeedServiceListForUnknownUser(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFeedService(noopEventRepo(), userRepo, nil)

	_, err := svc.ListForUser(context.Background(), 42)
	assertNotFoundError(t, err)
}

func TestFeedServiceListForUser(t *testing.T) {
	t.Parallel()

	eventRepo := noopEventRepo()
	eventRepo.listForUserFn = func(_ context.Context, userID uint) ([]models.Event, error) {
		return []models.Event{
			{ID: 1, UserID: userID, Timestamp: 100},
			{ID: 2, UserID: userID, Timestamp: 200},
		}, nil
	}
	svc := NewFeedService(eventRepo, noopUserRepo(), nil)

	events, err := svc.ListForUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.LessOrEqual(t, events[0].Timestamp, events[1].Timestamp)
}
