package api

import (
	"errors"
	"net/http"

	"askless/config"
	"askless/models"
	"askless/repository"
	"askless/services"
	"askless/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	askService     services.AskService
	voteService    services.VoteService
	profileService services.ProfileService
	tagService     services.TagService
	questionRepo   repository.QuestionRepository
	answerRepo     repository.AnswerRepository
	commentRepo    repository.CommentRepository
	bots           []*config.BotPersonality
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	askService services.AskService,
	voteService services.VoteService,
	profileService services.ProfileService,
	tagService services.TagService,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	commentRepo repository.CommentRepository,
	bots []*config.BotPersonality,
) *APIHandler {
	return &APIHandler{
		askService:     askService,
		voteService:    voteService,
		profileService: profileService,
		tagService:     tagService,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		commentRepo:    commentRepo,
		bots:           bots,
	}
}

// HealthHandler reports liveness.
// GET /health
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AskRequest is the client payload for the orchestrated ask flow.
type AskRequest struct {
	Question  string `json:"question" binding:"required"`
	Title     string `json:"title"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	TagIDs    []uint `json:"tagIds"`
}

// AskHandler runs the full submission flow: identity, tags, duplicate check,
// question persistence and the bot fan-out.
// POST /api/ask
func (h *APIHandler) AskHandler(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Field 'question' is required.", err)
		return
	}
	if req.UserID == "" {
		utils.SendJSONError(c, http.StatusUnauthorized, "A userId is required to ask a question.", nil)
		return
	}

	response, err := h.askService.Ask(c.Request.Context(), services.AskRequest{
		UserID:    req.UserID,
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Title:     req.Title,
		Question:  req.Question,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		h.sendAskError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// sendAskError maps the orchestrator's failure taxonomy onto HTTP statuses.
func (h *APIHandler) sendAskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoIdentity):
		utils.SendJSONError(c, http.StatusUnauthorized, "User identity could not be established.", err)
	case errors.Is(err, services.ErrInvalidCredential):
		utils.SendJSONError(c, http.StatusUnauthorized,
			"The model API credential is missing or invalid. Set LLM_API_KEY and restart.", err)
	case errors.Is(err, services.ErrQuotaExhausted):
		utils.SendJSONError(c, http.StatusTooManyRequests,
			"The model API quota or rate limit is exhausted. Wait a moment and retry, or switch to a provider plan with more headroom.", err)
	case errors.Is(err, services.ErrModelUnavailable):
		utils.SendJSONError(c, http.StatusBadRequest,
			"A configured model is unavailable upstream. Check llm.model_fallbacks against the models your provider offers.", err)
	case errors.Is(err, services.ErrAllBotsFailed):
		utils.SendJSONError(c, http.StatusInternalServerError, "No bot was able to answer the question. Please try again later.", err)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to process the question.", err)
	}
}

// InitializeBotsHandler seeds a profile for every configured personality.
// Idempotent; also runs at startup.
// POST /api/bots/initialize
func (h *APIHandler) InitializeBotsHandler(c *gin.Context) {
	profiles, err := h.profileService.InitializeBots(h.bots)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to initialize bot profiles.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Bot profiles initialized",
		"profiles": profiles,
	})
}

// VoteRequest targets exactly one of a question or an answer.
type VoteRequest struct {
	UserID     string          `json:"userId" binding:"required"`
	QuestionID *uint           `json:"questionId"`
	AnswerID   *uint           `json:"answerId"`
	VoteType   models.VoteType `json:"voteType" binding:"required"`
}

// CreateVoteHandler inserts, toggles off or overwrites the caller's vote.
// POST /api/votes
func (h *APIHandler) CreateVoteHandler(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Fields 'userId' and 'voteType' are required.", err)
		return
	}

	vote, err := h.voteService.CreateOrToggle(req.UserID, req.QuestionID, req.AnswerID, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteTarget), errors.Is(err, services.ErrInvalidVoteType):
			utils.SendJSONError(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, services.ErrNoIdentity):
			utils.SendJSONError(c, http.StatusUnauthorized, "A userId is required to vote.", err)
		default:
			utils.SendJSONError(c, http.StatusInternalServerError, "Failed to record vote.", err)
		}
		return
	}
	// vote is nil when an identical vote was toggled off.
	c.JSON(http.StatusOK, gin.H{"vote": vote})
}

// GetVoteCountsHandler derives the vote counts for one target on read.
// GET /api/votes?question_id= | ?answer_id=
func (h *APIHandler) GetVoteCountsHandler(c *gin.Context) {
	questionID, err := optionalUintQuery(c, "question_id")
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question_id parameter.", err)
		return
	}
	answerID, err := optionalUintQuery(c, "answer_id")
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid answer_id parameter.", err)
		return
	}

	counts, err := h.voteService.Counts(questionID, answerID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidVoteTarget) {
			utils.SendJSONError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch vote counts.", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
