// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"filmgraph/internal/models"
	"filmgraph/internal/repository"
	"filmgraph/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumFilms    int
	ShouldClean bool
}

var (
	mpaNames = []string{"G", "PG", "PG-13", "R", "NC-17"}

	genreNames = []string{
		"Comedy", "Drama", "Cartoon", "Thriller", "Documentary", "Action",
		"Horror", "Science Fiction", "Romance", "Western",
	}

	directorNames = []string{
		"Akira Kurosawa", "Agnes Varda", "Stanley Kubrick", "Greta Gerwig",
		"Alfred Hitchcock", "Bong Joon-ho", "Sofia Coppola", "Hayao Miyazaki",
		"Kathryn Bigelow", "Denis Villeneuve", "Billy Wilder", "Chloe Zhao",
	}
)

// Seed populates the database with test data. Likes, friendships and
// review votes go through the service layer so derived state (usefulness
// scores, feed events) stays consistent with runtime behavior.
func Seed(db *gorm.DB, opts Options) error {
	ctx := context.Background()
	log.Printf("Starting database seeding with %d users and %d films...", opts.NumUsers, opts.NumFilms)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	eventRepo := repository.NewEventRepository(db)

	feed := service.NewFeedService(eventRepo, userRepo, nil)
	social := service.NewSocialService(userRepo, filmRepo, friendRepo, feed)
	reviews := service.NewReviewService(reviewRepo, userRepo, filmRepo, feed)

	mpa, genres, directors, err := Lookups(db)
	if err != nil {
		return fmt.Errorf("failed to seed lookups: %w", err)
	}
	log.Printf("Lookups ready: %d MPA ratings, %d genres, %d directors", len(mpa), len(genres), len(directors))

	factory := NewFactory(db)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))

	films := make([]*models.Film, 0, opts.NumFilms)
	for i := 0; i < opts.NumFilms; i++ {
		film, err := factory.CreateFilm(mpa, genres, directors)
		if err != nil {
			return fmt.Errorf("failed to create film: %w", err)
		}
		films = append(films, film)
	}
	log.Printf("%d films created", len(films))

	if len(users) > 1 {
		// Sparse friendship mesh: each user befriends a handful of others.
		for _, user := range users {
			for i := 0; i < 1+r.Intn(4); i++ {
				other := users[r.Intn(len(users))]
				if other.ID == user.ID {
					continue
				}
				if err := social.AddFriend(ctx, user.ID, other.ID); err != nil {
					return fmt.Errorf("failed to add friendship: %w", err)
				}
			}
		}
		log.Println("Friendship mesh created")
	}

	if len(films) > 0 {
		for _, user := range users {
			for i := 0; i < r.Intn(len(films)/2+1); i++ {
				film := films[r.Intn(len(films))]
				if err := social.AddLike(ctx, film.ID, user.ID); err != nil {
					return fmt.Errorf("failed to add like: %w", err)
				}
			}
		}
		log.Println("Likes created")
	}

	// Reviews on a subset of films, with a few usefulness votes each.
	for _, film := range films {
		if len(users) == 0 || r.Intn(3) == 0 {
			continue
		}
		author := users[r.Intn(len(users))]
		review, err := reviews.Create(ctx, factory.BuildReview(author.ID, film.ID))
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		for i := 0; i < r.Intn(5); i++ {
			voter := users[r.Intn(len(users))]
			if voter.ID == author.ID {
				continue
			}
			var voteErr error
			if r.Intn(3) > 0 {
				_, voteErr = reviews.AddLike(ctx, review.ID, voter.ID)
			} else {
				_, voteErr = reviews.AddDislike(ctx, review.ID, voter.ID)
			}
			if voteErr != nil {
				return fmt.Errorf("failed to vote on review: %w", voteErr)
			}
		}
	}
	log.Println("Reviews and votes created")

	log.Println("Database seeding completed successfully")
	return nil
}

// Lookups ensures the MPA, genre and director lookup tables are populated
// and returns their contents.
func Lookups(db *gorm.DB) ([]models.Mpa, []models.Genre, []models.Director, error) {
	for _, name := range mpaNames {
		if err := db.Where(models.Mpa{Name: name}).FirstOrCreate(&models.Mpa{Name: name}).Error; err != nil {
			return nil, nil, nil, err
		}
	}
	for _, name := range genreNames {
		if err := db.Where(models.Genre{Name: name}).FirstOrCreate(&models.Genre{Name: name}).Error; err != nil {
			return nil, nil, nil, err
		}
	}
	var directorCount int64
	if err := db.Model(&models.Director{}).Count(&directorCount).Error; err != nil {
		return nil, nil, nil, err
	}
	if directorCount == 0 {
		for _, name := range directorNames {
			if err := db.Create(&models.Director{Name: name}).Error; err != nil {
				return nil, nil, nil, err
			}
		}
	}

	var mpa []models.Mpa
	var genres []models.Genre
	var directors []models.Director
	if err := db.Order("id").Find(&mpa).Error; err != nil {
		return nil, nil, nil, err
	}
	if err := db.Order("id").Find(&genres).Error; err != nil {
		return nil, nil, nil, err
	}
	if err := db.Order("id").Find(&directors).Error; err != nil {
		return nil, nil, nil, err
	}
	return mpa, genres, directors, nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE events, review_votes, reviews, film_likes, friendships,
		film_genres, film_directors, films, directors, genres, mpa_ratings, users
		RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
