package models

import "time"

type QuestionStatus string

const (
	QuestionStatusOpen     QuestionStatus = "open"
	QuestionStatusAnswered QuestionStatus = "answered"
)

// Question is immutable once answered, except for SearchCount which is
// incremented whenever duplicate detection redirects a new ask to this row.
type Question struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time      `json:"created_at"`
	UserID      string         `json:"user_id" gorm:"index;size:36"`
	Title       string         `json:"title"`
	Content     string         `json:"content" gorm:"type:text"`
	Status      QuestionStatus `json:"status" gorm:"default:open"`
	SearchCount int            `json:"search_count" gorm:"default:0"`
	Tags        []Tag          `json:"tags,omitempty" gorm:"many2many:question_tags"`
	Answers     []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}

// TableName specifies the table name for the Question model.
func (Question) TableName() string {
	return "questions"
}
