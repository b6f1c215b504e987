package service

import (
	"context"
	"errors"
	"testing"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSearchScope = repository.SearchScope

type userRepoStub struct {
	createFn   func(context.Context, *models.User) error
	updateFn   func(context.Context, *models.User) error
	getByIDFn  func(context.Context, uint) (*models.User, error)
	getByIDsFn func(context.Context, []uint) ([]models.User, error)
	listFn     func(context.Context) ([]models.User, error)
	deleteFn   func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		updateFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.User, error) {
			users := make([]models.User, 0, len(ids))
			for _, id := range ids {
				users = append(users, models.User{ID: id})
			}
			return users, nil
		},
		listFn:   func(context.Context) ([]models.User, error) { return nil, nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type friendRepoStub struct {
	addFn          func(context.Context, uint, uint) error
	removeFn       func(context.Context, uint, uint) error
	areFriendsFn   func(context.Context, uint, uint) (bool, error)
	getFriendIDsFn func(context.Context, uint) ([]uint, error)
	getFriendsFn   func(context.Context, uint) ([]models.User, error)
}

func (s *friendRepoStub) Add(ctx context.Context, userID, friendID uint) error {
	return s.addFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID uint) error {
	return s.removeFn(ctx, userID, friendID)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID, friendID uint) (bool, error) {
	return s.areFriendsFn(ctx, userID, friendID)
}
func (s *friendRepoStub) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getFriendIDsFn(ctx, userID)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		addFn:          func(context.Context, uint, uint) error { return nil },
		removeFn:       func(context.Context, uint, uint) error { return nil },
		areFriendsFn:   func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFriendIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		getFriendsFn:   func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

type filmRepoStub struct {
	createFn            func(context.Context, *models.Film) error
	updateFn            func(context.Context, *models.Film) error
	getByIDFn           func(context.Context, uint) (*models.Film, error)
	listFn              func(context.Context) ([]models.Film, error)
	deleteFn            func(context.Context, uint) error
	likeFn              func(context.Context, uint, uint) error
	unlikeFn            func(context.Context, uint, uint) error
	isLikedFn           func(context.Context, uint, uint) (bool, error)
	getLikedFilmIDsFn   func(context.Context, uint) ([]uint, error)
	mostPopularFn       func(context.Context, int) ([]models.Film, error)
	searchFn            func(context.Context, string, repoSearchScope) ([]models.Film, error)
	byDirectorFn        func(context.Context, uint, string) ([]models.Film, error)
	coLikedNeighborsFn  func(context.Context, uint, int) ([]uint, error)
	filmsLikedByUsersFn func(context.Context, []uint) ([]models.Film, error)
}

func (s *filmRepoStub) Create(ctx context.Context, film *models.Film) error {
	return s.createFn(ctx, film)
}
func (s *filmRepoStub) Update(ctx context.Context, film *models.Film) error {
	return s.updateFn(ctx, film)
}
func (s *filmRepoStub) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	return s.getByIDFn(ctx, id)
}
func (s *filmRepoStub) List(ctx context.Context) ([]models.Film, error) {
	return s.listFn(ctx)
}
func (s *filmRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *filmRepoStub) Like(ctx context.Context, filmID, userID uint) error {
	return s.likeFn(ctx, filmID, userID)
}
func (s *filmRepoStub) Unlike(ctx context.Context, filmID, userID uint) error {
	return s.unlikeFn(ctx, filmID, userID)
}
func (s *filmRepoStub) IsLiked(ctx context.Context, filmID, userID uint) (bool, error) {
	return s.isLikedFn(ctx, filmID, userID)
}
func (s *filmRepoStub) GetLikedFilmIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getLikedFilmIDsFn(ctx, userID)
}
func (s *filmRepoStub) MostPopular(ctx context.Context, count int) ([]models.Film, error) {
	return s.mostPopularFn(ctx, count)
}
func (s *filmRepoStub) Search(ctx context.Context, query string, scope repoSearchScope) ([]models.Film, error) {
	return s.searchFn(ctx, query, scope)
}
func (s *filmRepoStub) ByDirector(ctx context.Context, directorID uint, sortBy string) ([]models.Film, error) {
	return s.byDirectorFn(ctx, directorID, sortBy)
}
func (s *filmRepoStub) CoLikedNeighbors(ctx context.Context, userID uint, limit int) ([]uint, error) {
	return s.coLikedNeighborsFn(ctx, userID, limit)
}
func (s *filmRepoStub) FilmsLikedByUsers(ctx context.Context, userIDs []uint) ([]models.Film, error) {
	return s.filmsLikedByUsersFn(ctx, userIDs)
}

func noopFilmRepo() *filmRepoStub {
	return &filmRepoStub{
		createFn:            func(context.Context, *models.Film) error { return nil },
		updateFn:            func(context.Context, *models.Film) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Film, error) { return &models.Film{ID: id}, nil },
		listFn:              func(context.Context) ([]models.Film, error) { return nil, nil },
		deleteFn:            func(context.Context, uint) error { return nil },
		likeFn:              func(context.Context, uint, uint) error { return nil },
		unlikeFn:            func(context.Context, uint, uint) error { return nil },
		isLikedFn:           func(context.Context, uint, uint) (bool, error) { return false, nil },
		getLikedFilmIDsFn:   func(context.Context, uint) ([]uint, error) { return nil, nil },
		mostPopularFn:       func(context.Context, int) ([]models.Film, error) { return nil, nil },
		searchFn:            func(context.Context, string, repoSearchScope) ([]models.Film, error) { return nil, nil },
		byDirectorFn:        func(context.Context, uint, string) ([]models.Film, error) { return nil, nil },
		coLikedNeighborsFn:  func(context.Context, uint, int) ([]uint, error) { return nil, nil },
		filmsLikedByUsersFn: func(context.Context, []uint) ([]models.Film, error) { return nil, nil },
	}
}

type reviewRepoStub struct {
	createFn     func(context.Context, *models.Review) error
	updateFn     func(context.Context, *models.Review) error
	getByIDFn    func(context.Context, uint) (*models.Review, error)
	listFn       func(context.Context, uint, int) ([]models.Review, error)
	deleteFn     func(context.Context, uint) error
	addVoteFn    func(context.Context, uint, uint, bool) error
	removeVoteFn func(context.Context, uint, uint, bool) error
}

func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) List(ctx context.Context, filmID uint, count int) ([]models.Review, error) {
	return s.listFn(ctx, filmID, count)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) AddVote(ctx context.Context, reviewID, userID uint, isUseful bool) error {
	return s.addVoteFn(ctx, reviewID, userID, isUseful)
}
func (s *reviewRepoStub) RemoveVote(ctx context.Context, reviewID, userID uint, isUseful bool) error {
	return s.removeVoteFn(ctx, reviewID, userID, isUseful)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		createFn:     func(context.Context, *models.Review) error { return nil },
		updateFn:     func(context.Context, *models.Review) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Review, error) { return &models.Review{ID: id}, nil },
		listFn:       func(context.Context, uint, int) ([]models.Review, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		addVoteFn:    func(context.Context, uint, uint, bool) error { return nil },
		removeVoteFn: func(context.Context, uint, uint, bool) error { return nil },
	}
}

type eventRepoStub struct {
	appendFn      func(context.Context, *models.Event) error
	listForUserFn func(context.Context, uint) ([]models.Event, error)
}

func (s *eventRepoStub) Append(ctx context.Context, event *models.Event) error {
	return s.appendFn(ctx, event)
}
func (s *eventRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Event, error) {
	return s.listForUserFn(ctx, userID)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		appendFn:      func(context.Context, *models.Event) error { return nil },
		listForUserFn: func(context.Context, uint) ([]models.Event, error) { return nil, nil },
	}
}

// recordingFeed captures every event the services emit.
type recordingFeed struct {
	events []models.Event
}

func (f *recordingFeed) Record(_ context.Context, userID uint, eventType models.EventType, operation models.EventOperation, entityID uint) (*models.Event, error) {
	event := models.Event{
		UserID:    userID,
		EventType: eventType,
		Operation: operation,
		EntityID:  entityID,
	}
	f.events = append(f.events, event)
	return &event, nil
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
