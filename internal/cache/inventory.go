package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PopularKeyPrefix         = "films:popular:%d"
	RecommendationsKeyPrefix = "user:%d:recommendations"
	FilmKeyPrefix            = "film:%d"
)

const (
	PopularTTL         = 1 * time.Minute
	RecommendationsTTL = 5 * time.Minute
	FilmTTL            = 10 * time.Minute
)

func PopularKey(count int) string {
	return fmt.Sprintf(PopularKeyPrefix, count)
}

func RecommendationsKey(userID uint) string {
	return fmt.Sprintf(RecommendationsKeyPrefix, userID)
}

func FilmKey(filmID uint) string {
	return fmt.Sprintf(FilmKeyPrefix, filmID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePopular drops every cached popular-films page. The key space
// is bounded by the distinct count values clients request, so a SCAN is
// cheap here.
func InvalidatePopular(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "films:popular:*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateRecommendations(ctx context.Context, userID uint) {
	Invalidate(ctx, RecommendationsKey(userID))
}

// InvalidateAllRecommendations drops every per-user recommendation cache.
// Used when a film is deleted, which can change any user's result set.
func InvalidateAllRecommendations(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "user:*:recommendations", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateFilm(ctx context.Context, filmID uint) {
	Invalidate(ctx, FilmKey(filmID))
}
