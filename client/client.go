// Package client is a Go consumer of the askless HTTP API. It also carries
// the reveal/poll sequencer that paces bot answers the way an organic thread
// would fill in.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"askless/models"
)

// Client is a thin adapter over the askless JSON API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the given server base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// AskRequest mirrors the POST /api/ask payload.
type AskRequest struct {
	Question  string `json:"question"`
	Title     string `json:"title,omitempty"`
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	TagIDs    []uint `json:"tagIds,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// Ask submits a question through the orchestrated flow.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*models.AskResponse, error) {
	var response models.AskResponse
	if err := c.do(ctx, http.MethodPost, "/api/ask", req, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Answers fetches the answers on a question, oldest first.
func (c *Client) Answers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	path := fmt.Sprintf("/api/questions/%d/answers", questionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// AnswerComments fetches the comments on an answer.
func (c *Client) AnswerComments(ctx context.Context, answerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	path := fmt.Sprintf("/api/answers/%d/comments", answerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AnswerVoteCounts fetches the derived vote counts for an answer.
func (c *Client) AnswerVoteCounts(ctx context.Context, answerID uint) (*models.VoteCounts, error) {
	var counts models.VoteCounts
	query := url.Values{"answer_id": []string{strconv.FormatUint(uint64(answerID), 10)}}
	if err := c.do(ctx, http.MethodGet, "/api/votes?"+query.Encode(), nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}
