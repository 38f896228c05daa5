package models

import (
	"time"
)

// User is the persisted score record. IDs come from the identity provider
// and are stable; Score only ever grows. CreatedAt is immutable after
// registration since it participates in the leaderboard tiebreak ordering.
type User struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`

	Score     int64     `gorm:"not null;default:0;index:idx_leaderboard,priority:1,sort:desc" json:"score"`
	CreatedAt time.Time `gorm:"index:idx_leaderboard,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// LessonProgress records a completed lesson for a user. The leaderboard core
// never reads this table; it exists so score increments have an audit trail.
type LessonProgress struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      string    `gorm:"index"`
	Module      string
	Lesson      string
	Score       int64
	CompletedAt time.Time
}
