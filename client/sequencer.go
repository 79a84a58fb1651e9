package client

import (
	"context"
	"math/rand"
	"time"

	"askless/models"
)

// RevealSequencer paces a batch of bot answers so they appear one at a time:
// shuffled order, a fixed delay before the first reveal, then a randomized
// interval within [MinInterval, MaxInterval] between the rest.
type RevealSequencer struct {
	FirstDelay  time.Duration
	MinInterval time.Duration
	MaxInterval time.Duration

	rng *rand.Rand
}

// NewRevealSequencer creates a sequencer with the given timing bounds.
func NewRevealSequencer(firstDelay, minInterval, maxInterval time.Duration) *RevealSequencer {
	if maxInterval < minInterval {
		maxInterval = minInterval
	}
	return &RevealSequencer{
		FirstDelay:  firstDelay,
		MinInterval: minInterval,
		MaxInterval: maxInterval,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reveal emits the answers on the returned channel in shuffled, staggered
// order. The channel is closed once every answer is out or the context is
// cancelled.
func (s *RevealSequencer) Reveal(ctx context.Context, answers []models.Answer) <-chan models.Answer {
	shuffled := make([]models.Answer, len(answers))
	copy(shuffled, answers)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	out := make(chan models.Answer)
	go func() {
		defer close(out)
		for i, answer := range shuffled {
			delay := s.FirstDelay
			if i > 0 {
				delay = s.nextInterval()
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			select {
			case out <- answer:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *RevealSequencer) nextInterval() time.Duration {
	spread := s.MaxInterval - s.MinInterval
	if spread <= 0 {
		return s.MinInterval
	}
	return s.MinInterval + time.Duration(s.rng.Int63n(int64(spread)))
}

// PollAnswers polls the answers endpoint at a fixed interval until answers
// appear, up to maxAttempts. Exhausting the attempts is a silent give-up:
// it returns an empty slice and no error.
func (c *Client) PollAnswers(ctx context.Context, questionID uint, interval time.Duration, maxAttempts int) ([]models.Answer, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		answers, err := c.Answers(ctx, questionID)
		if err != nil {
			// Transient fetch errors count as an attempt.
			continue
		}
		if len(answers) > 0 {
			return answers, nil
		}
	}
	return []models.Answer{}, nil
}
