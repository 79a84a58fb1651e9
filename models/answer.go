package models

import "time"

// Answer belongs to a question and is attributed to a profile, usually a bot
// personality. One answer per (question, bot) pair in the orchestrated flow.
type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	QuestionID uint      `json:"question_id" gorm:"index"`
	UserID     string    `json:"user_id" gorm:"index;size:36"`
	Content    string    `json:"content" gorm:"type:text"`
	IsAccepted bool      `json:"is_accepted" gorm:"default:false"`
	Author     *Profile  `json:"author,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for the Answer model.
func (Answer) TableName() string {
	return "answers"
}
