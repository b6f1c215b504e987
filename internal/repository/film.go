package repository

import (
	"context"
	"errors"
	"strings"

	"filmgraph/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchScope selects which fields a film search matches against.
type SearchScope struct {
	Title    bool
	Director bool
}

// ParseSearchScope parses the comma-separated "by" query parameter
// ("title", "director" or both) into a SearchScope.
func ParseSearchScope(by string) SearchScope {
	var scope SearchScope
	for _, part := range strings.Split(by, ",") {
		switch strings.TrimSpace(part) {
		case "title":
			scope.Title = true
		case "director":
			scope.Director = true
		}
	}
	return scope
}

// FilmRepository defines the interface for film data operations
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	Update(ctx context.Context, film *models.Film) error
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id uint) error

	Like(ctx context.Context, filmID, userID uint) error
	Unlike(ctx context.Context, filmID, userID uint) error
	IsLiked(ctx context.Context, filmID, userID uint) (bool, error)
	GetLikedFilmIDs(ctx context.Context, userID uint) ([]uint, error)

	MostPopular(ctx context.Context, count int) ([]models.Film, error)
	Search(ctx context.Context, query string, scope SearchScope) ([]models.Film, error)
	ByDirector(ctx context.Context, directorID uint, sortBy string) ([]models.Film, error)

	CoLikedNeighbors(ctx context.Context, userID uint, limit int) ([]uint, error)
	FilmsLikedByUsers(ctx context.Context, userIDs []uint) ([]models.Film, error)
}

// filmRepository implements FilmRepository
type filmRepository struct {
	db *gorm.DB
}

// NewFilmRepository creates a new film repository
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{db: db}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) error {
	if err := r.db.WithContext(ctx).Create(film).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Film{}).
			Where("id = ?", film.ID).
			Updates(map[string]interface{}{
				"name":         film.Name,
				"description":  film.Description,
				"release_date": film.ReleaseDate,
				"duration":     film.Duration,
				"mpa_id":       film.MpaID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Film", film.ID)
		}
		if err := tx.Model(film).Association("Genres").Replace(film.Genres); err != nil {
			return err
		}
		return tx.Model(film).Association("Directors").Replace(film.Directors)
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

func (r *filmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	if err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		First(&film, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Film", id)
		}
		return nil, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.FilmLike{}).
		Where("film_id = ?", id).
		Count(&film.LikeCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &film, nil
}

func (r *filmRepository) List(ctx context.Context) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		Order("id ASC").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

// Delete removes the film and purges its likes, lookup associations and
// reviews (with their votes) so no dangling references remain.
func (r *filmRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Film{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Film", id)
		}

		if err := tx.Where("film_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM film_genres WHERE film_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM film_directors WHERE film_id = ?", id).Error; err != nil {
			return err
		}

		var reviewIDs []uint
		if err := tx.Model(&models.Review{}).
			Where("film_id = ?", id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.ReviewVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("film_id = ?", id).Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}
		return nil
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

func (r *filmRepository) Like(ctx context.Context, filmID, userID uint) error {
	like := &models.FilmLike{UserID: userID, FilmID: filmID}
	// ON CONFLICT DO NOTHING keeps repeated likes idempotent under races.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *filmRepository) Unlike(ctx context.Context, filmID, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.FilmLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *filmRepository) IsLiked(ctx context.Context, filmID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FilmLike{}).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *filmRepository) GetLikedFilmIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FilmLike{}).
		Where("user_id = ?", userID).
		Order("film_id ASC").
		Pluck("film_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *filmRepository) MostPopular(ctx context.Context, count int) ([]models.Film, error) {
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Select("films.*, COUNT(film_likes.id) AS like_count").
		Joins("LEFT JOIN film_likes ON film_likes.film_id = films.id").
		Group("films.id").
		Order("like_count DESC, films.id ASC").
		Limit(count).
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

func (r *filmRepository) Search(ctx context.Context, query string, scope SearchScope) ([]models.Film, error) {
	if !scope.Title && !scope.Director {
		return nil, models.NewValidationError("Search scope must include title or director")
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var conds []string
	var args []interface{}
	if scope.Title {
		conds = append(conds, "LOWER(films.name) LIKE ?")
		args = append(args, pattern)
	}
	if scope.Director {
		conds = append(conds, "films.id IN (SELECT fd.film_id FROM film_directors fd JOIN directors d ON d.id = fd.director_id WHERE LOWER(d.name) LIKE ?)")
		args = append(args, pattern)
	}

	var films []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Select("films.*, COUNT(film_likes.id) AS like_count").
		Joins("LEFT JOIN film_likes ON film_likes.film_id = films.id").
		Where(strings.Join(conds, " OR "), args...).
		Group("films.id").
		Order("like_count DESC, films.id ASC").
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

func (r *filmRepository) ByDirector(ctx context.Context, directorID uint, sortBy string) ([]models.Film, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Director{}).
		Where("id = ?", directorID).
		Count(&count).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if count == 0 {
		return nil, models.NewNotFoundError("Director", directorID)
	}

	order := "films.release_date ASC"
	if sortBy == "likes" {
		order = "like_count DESC, films.id ASC"
	}

	var films []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Select("films.*, COUNT(film_likes.id) AS like_count").
		Joins("JOIN film_directors fd ON fd.film_id = films.id").
		Joins("LEFT JOIN film_likes ON film_likes.film_id = films.id").
		Where("fd.director_id = ?", directorID).
		Group("films.id").
		Order(order).
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}

// CoLikedNeighbors returns up to limit user IDs ordered by how many films
// they have liked in common with userID, most overlap first, ascending
// user ID on ties. Users with zero overlap are not returned.
func (r *filmRepository) CoLikedNeighbors(ctx context.Context, userID uint, limit int) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Raw(`
		SELECT fl.user_id
		FROM film_likes fl
		WHERE fl.user_id <> ?
		  AND fl.film_id IN (SELECT film_id FROM film_likes WHERE user_id = ?)
		GROUP BY fl.user_id
		ORDER BY COUNT(*) DESC, fl.user_id ASC
		LIMIT ?`, userID, userID, limit).
		Scan(&ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *filmRepository) FilmsLikedByUsers(ctx context.Context, userIDs []uint) ([]models.Film, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var films []models.Film
	if err := r.db.WithContext(ctx).
		Model(&models.Film{}).
		Distinct("films.*").
		Joins("JOIN film_likes ON film_likes.film_id = films.id").
		Where("film_likes.user_id IN ?", userIDs).
		Order("films.id ASC").
		Preload("Mpa").
		Preload("Genres").
		Preload("Directors").
		Find(&films).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return films, nil
}
