package models

import "time"

// Profile is the persisted identity of a contributor, human or bot.
// Bot profiles use a deterministic UUID derived from their personality key so
// repeated startups resolve to the same row.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Username  string    `json:"username"`
	IsAI      bool      `json:"is_ai" gorm:"default:false"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}
