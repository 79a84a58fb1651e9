package models

// AskResponse is the payload for POST /api/ask. On the duplicate path
// OriginalQuestion carries the matched prior question and Answers its
// existing answers; otherwise Question is the newly created row and Answers
// holds one entry per bot that answered successfully.
type AskResponse struct {
	IsDuplicate      bool      `json:"isDuplicate"`
	Question         *Question `json:"question,omitempty"`
	OriginalQuestion *Question `json:"originalQuestion,omitempty"`
	Answers          []Answer  `json:"answers"`
	Tags             []Tag     `json:"tags"`
	TotalBots        int       `json:"totalBots"`
	SuccessfulBots   int       `json:"successfulBots"`
}
