package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"filmgraph/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildUser constructs a user struct without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	login := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%04d", f.r.Intn(10000))
	user := &models.User{
		Email:    login + "@" + gofakeit.DomainName(),
		Login:    login,
		Name:     gofakeit.Name(),
		Birthday: gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser persists a generated user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildFilm constructs a film struct without persisting it. Genres,
// directors and MPA rating must already exist.
func (f *Factory) BuildFilm(mpa []models.Mpa, genres []models.Genre, directors []models.Director, overrides ...func(*models.Film)) *models.Film {
	film := &models.Film{
		Name:        gofakeit.MovieName(),
		Description: gofakeit.Sentence(10),
		ReleaseDate: gofakeit.DateRange(time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC), time.Now()),
		Duration:    60 + f.r.Intn(120),
	}
	if len(mpa) > 0 {
		film.MpaID = mpa[f.r.Intn(len(mpa))].ID
	}
	if len(genres) > 0 {
		film.Genres = pickSome(f.r, genres, 1, 3)
	}
	if len(directors) > 0 {
		film.Directors = pickSome(f.r, directors, 1, 2)
	}
	for _, override := range overrides {
		override(film)
	}
	return film
}

// CreateFilm persists a generated film with its associations.
func (f *Factory) CreateFilm(mpa []models.Mpa, genres []models.Genre, directors []models.Director, overrides ...func(*models.Film)) (*models.Film, error) {
	film := f.BuildFilm(mpa, genres, directors, overrides...)
	if err := f.db.Create(film).Error; err != nil {
		return nil, err
	}
	return film, nil
}

// BuildReview constructs a review by the given user on the given film
// without persisting it.
func (f *Factory) BuildReview(userID, filmID uint) *models.Review {
	return &models.Review{
		Content:    gofakeit.Paragraph(1, 2, 8, " "),
		IsPositive: f.r.Intn(4) > 0,
		UserID:     userID,
		FilmID:     filmID,
	}
}

// pickSome returns a random subset of between min and max elements.
func pickSome[T any](r *rand.Rand, pool []T, min, max int) []T {
	n := min
	if max > min {
		n += r.Intn(max - min + 1)
	}
	if n > len(pool) {
		n = len(pool)
	}
	idx := r.Perm(len(pool))[:n]
	out := make([]T, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}
