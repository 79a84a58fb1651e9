package models

import "time"

// Comment attaches to exactly one of a question or an answer, and may be
// threaded under another comment via ParentID.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	QuestionID *uint     `json:"question_id,omitempty" gorm:"index"`
	AnswerID   *uint     `json:"answer_id,omitempty" gorm:"index"`
	UserID     string    `json:"user_id" gorm:"size:36"`
	Content    string    `json:"content" gorm:"type:text"`
	ParentID   *uint     `json:"parent_id,omitempty"`
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}
