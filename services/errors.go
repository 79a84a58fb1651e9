package services

import "errors"

// Sentinel errors for the failure taxonomy surfaced to API handlers.
var (
	// ErrNoIdentity means the asker's identity could not be established.
	ErrNoIdentity = errors.New("user identity cannot be established")
	// ErrInvalidCredential means the upstream model API rejected our key.
	ErrInvalidCredential = errors.New("llm api credential is missing or invalid")
	// ErrQuotaExhausted means the upstream model API rate/quota limit was hit.
	ErrQuotaExhausted = errors.New("llm quota or rate limit exhausted")
	// ErrModelUnavailable means the configured model does not exist upstream.
	ErrModelUnavailable = errors.New("llm model unavailable")
	// ErrAllBotsFailed means not a single personality produced an answer.
	ErrAllBotsFailed = errors.New("all bot personalities failed to answer")

	ErrInvalidVoteTarget = errors.New("exactly one of question_id or answer_id must be set")
	ErrInvalidVoteType   = errors.New("vote_type must be 'up' or 'down'")
)
