package models

import (
	"time"
)

// Mpa is a film's MPA age rating (G, PG, PG-13, R, NC-17).
type Mpa struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (Mpa) TableName() string {
	return "mpa_ratings"
}

// Genre is a film genre lookup entry.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Director is a film director lookup entry.
type Director struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// Film represents a film that users can like and review.
// The like relation lives in FilmLike rows and is mutated only through
// the social service, never by writing Film itself.
type Film struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	Duration    int       `json:"duration"`
	MpaID       uint      `json:"mpa_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Mpa       Mpa        `gorm:"foreignKey:MpaID" json:"mpa,omitempty"`
	Genres    []Genre    `gorm:"many2many:film_genres" json:"genres,omitempty"`
	Directors []Director `gorm:"many2many:film_directors" json:"directors,omitempty"`

	// LikeCount is populated by ranking queries, not stored.
	LikeCount int64 `gorm:"->;-:migration" json:"like_count"`
}

// FilmLike represents a user's like on a film.
// The combination of UserID and FilmID must be unique.
type FilmLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_film" json:"user_id"`
	FilmID    uint      `gorm:"not null;uniqueIndex:idx_user_film" json:"film_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Film Film `gorm:"foreignKey:FilmID" json:"-"`
}

// TableName specifies the table name for GORM
func (FilmLike) TableName() string {
	return "film_likes"
}
