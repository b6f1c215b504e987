package models

import (
	"time"
)

// Review is a user's written review of a film. Useful is a materialized
// score: count of useful votes minus count of not-useful votes. It is
// recomputed from review_votes on every vote mutation, never adjusted
// in place.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"not null" json:"content"`
	IsPositive bool      `json:"is_positive"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	FilmID     uint      `gorm:"not null" json:"film_id"`
	Useful     int       `gorm:"not null;default:0" json:"useful"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Film Film `gorm:"foreignKey:FilmID" json:"-"`
}

// ReviewVote is a user's usefulness vote on a review. IsUseful selects
// the polarity; a user may hold at most one vote per polarity per review.
type ReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_review_user_polarity" json:"review_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_polarity" json:"user_id"`
	IsUseful  bool      `gorm:"uniqueIndex:idx_review_user_polarity" json:"is_useful"`
	CreatedAt time.Time `json:"created_at"`

	Review Review `gorm:"foreignKey:ReviewID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (ReviewVote) TableName() string {
	return "review_votes"
}
