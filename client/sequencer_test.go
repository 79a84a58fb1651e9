package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"askless/models"

	"github.com/stretchr/testify/assert"
)

func TestRevealSequencer_Reveal(t *testing.T) {
	answers := []models.Answer{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}

	t.Run("Every answer is emitted exactly once", func(t *testing.T) {
		sequencer := NewRevealSequencer(time.Millisecond, time.Millisecond, 2*time.Millisecond)

		seen := map[uint]bool{}
		for answer := range sequencer.Reveal(context.Background(), answers) {
			assert.False(t, seen[answer.ID], "answer %d emitted twice", answer.ID)
			seen[answer.ID] = true
		}
		assert.Len(t, seen, len(answers))
	})

	t.Run("Cancellation closes the channel early", func(t *testing.T) {
		sequencer := NewRevealSequencer(time.Millisecond, time.Hour, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())

		out := sequencer.Reveal(ctx, answers)
		first, ok := <-out
		assert.True(t, ok)
		assert.NotZero(t, first.ID)
		cancel()

		var rest int
		for range out {
			rest++
		}
		assert.LessOrEqual(t, rest, 1)
	})

	t.Run("Empty batch closes immediately", func(t *testing.T) {
		sequencer := NewRevealSequencer(time.Millisecond, time.Millisecond, time.Millisecond)

		_, ok := <-sequencer.Reveal(context.Background(), nil)
		assert.False(t, ok)
	})

	t.Run("Inverted bounds collapse to the minimum", func(t *testing.T) {
		sequencer := NewRevealSequencer(0, 5*time.Millisecond, time.Millisecond)
		assert.Equal(t, 5*time.Millisecond, sequencer.MaxInterval)
	})

	t.Run("Input slice is not reordered", func(t *testing.T) {
		sequencer := NewRevealSequencer(0, 0, 0)
		original := []models.Answer{{ID: 1}, {ID: 2}, {ID: 3}}

		for range sequencer.Reveal(context.Background(), original) {
		}

		assert.Equal(t, uint(1), original[0].ID)
		assert.Equal(t, uint(2), original[1].ID)
		assert.Equal(t, uint(3), original[2].ID)
	})
}

func TestClient_PollAnswers(t *testing.T) {
	t.Run("Returns answers once they appear", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/questions/42/answers", r.URL.Path)
			if calls.Add(1) < 3 {
				json.NewEncoder(w).Encode([]models.Answer{})
				return
			}
			json.NewEncoder(w).Encode([]models.Answer{{ID: 7, QuestionID: 42, Content: "use flexbox"}})
		}))
		defer server.Close()

		answers, err := NewClient(server.URL).PollAnswers(context.Background(), 42, time.Millisecond, 10)

		assert.NoError(t, err)
		assert.Len(t, answers, 1)
		assert.Equal(t, uint(7), answers[0].ID)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Gives up silently after the attempt budget", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			json.NewEncoder(w).Encode([]models.Answer{})
		}))
		defer server.Close()

		answers, err := NewClient(server.URL).PollAnswers(context.Background(), 42, time.Millisecond, 4)

		assert.NoError(t, err)
		assert.NotNil(t, answers)
		assert.Empty(t, answers)
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("Fetch errors consume attempts without failing the poll", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode([]models.Answer{{ID: 7}})
		}))
		defer server.Close()

		answers, err := NewClient(server.URL).PollAnswers(context.Background(), 42, time.Millisecond, 5)

		assert.NoError(t, err)
		assert.Len(t, answers, 1)
	})

	t.Run("Cancellation aborts between attempts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]models.Answer{})
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		answers, err := NewClient(server.URL).PollAnswers(ctx, 42, time.Hour, 5)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, answers)
	})
}

func TestClient_Ask(t *testing.T) {
	t.Run("Decodes a successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/ask", r.URL.Path)
			var req AskRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "u1", req.UserID)
			json.NewEncoder(w).Encode(models.AskResponse{
				Question:       &models.Question{ID: 100},
				Answers:        []models.Answer{{ID: 1}},
				TotalBots:      5,
				SuccessfulBots: 1,
			})
		}))
		defer server.Close()

		response, err := NewClient(server.URL).Ask(context.Background(), AskRequest{UserID: "u1", Question: "hi"})

		assert.NoError(t, err)
		assert.Equal(t, uint(100), response.Question.ID)
		assert.Equal(t, 1, response.SuccessfulBots)
	})

	t.Run("Surfaces the server's error message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "quota exhausted"})
		}))
		defer server.Close()

		response, err := NewClient(server.URL).Ask(context.Background(), AskRequest{UserID: "u1", Question: "hi"})

		assert.Nil(t, response)
		assert.ErrorContains(t, err, "quota exhausted")
		assert.ErrorContains(t, err, "429")
	})
}
