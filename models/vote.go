package models

import "time"

type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// Vote targets exactly one of a question or an answer, at most one per
// (user, target). Re-submitting the same type removes the vote; a different
// type overwrites it in place.
type Vote struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id" gorm:"index;size:36"`
	QuestionID *uint     `json:"question_id,omitempty" gorm:"index"`
	AnswerID   *uint     `json:"answer_id,omitempty" gorm:"index"`
	VoteType   VoteType  `json:"vote_type"`
}

// TableName specifies the table name for the Vote model.
func (Vote) TableName() string {
	return "votes"
}

// VoteCounts is derived on read; the score is never denormalized onto the
// voted row.
type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
	Score     int64 `json:"score"`
}
