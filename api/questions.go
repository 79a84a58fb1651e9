package api

import (
	"fmt"
	"net/http"
	"strconv"

	"askless/models"
	"askless/utils"

	"github.com/gin-gonic/gin"
)

const defaultQuestionLimit = 20
const maxQuestionLimit = 100

// ListQuestionsHandler returns the most recent questions.
// GET /api/questions?limit=
func (h *APIHandler) ListQuestionsHandler(c *gin.Context) {
	limit := defaultQuestionLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid limit parameter.", err)
			return
		}
		limit = parsed
	}
	if limit > maxQuestionLimit {
		limit = maxQuestionLimit
	}

	questions, err := h.questionRepo.List(limit)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch questions.", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestionHandler returns one question with its tags and answers.
// GET /api/questions/:id
func (h *APIHandler) GetQuestionHandler(c *gin.Context) {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question id.", err)
		return
	}
	question, err := h.questionRepo.GetByID(id)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch question.", err)
		return
	}
	if question == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Question not found.", nil)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestionRequest is the thin, non-orchestrated creation payload.
type CreateQuestionRequest struct {
	UserID   string   `json:"userId" binding:"required"`
	Username string   `json:"username"`
	Title    string   `json:"title"`
	Content  string   `json:"content" binding:"required"`
	Tags     []string `json:"tags"`
}

// CreateQuestionHandler persists a question without invoking the bots.
// POST /api/questions
func (h *APIHandler) CreateQuestionHandler(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Fields 'userId' and 'content' are required.", err)
		return
	}

	asker, err := h.profileService.ResolveProfile(req.UserID, req.Username, "", false)
	if err != nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "User identity could not be established.", err)
		return
	}
	tags, err := h.tagService.ResolveTags(req.Tags)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to resolve tags.", err)
		return
	}

	question := &models.Question{
		UserID:  asker.ID,
		Title:   req.Title,
		Content: req.Content,
		Status:  models.QuestionStatusOpen,
		Tags:    tags,
	}
	if err := h.questionRepo.Create(question); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create question.", err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListAnswersHandler returns a question's answers, oldest first.
// GET /api/questions/:id/answers
func (h *APIHandler) ListAnswersHandler(c *gin.Context) {
	questionID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question id.", err)
		return
	}
	answers, err := h.answerRepo.GetByQuestionID(questionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch answers.", err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// CreateAnswerRequest is a human-authored answer payload.
type CreateAnswerRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username"`
	Content  string `json:"content" binding:"required"`
}

// CreateAnswerHandler persists a human answer on a question.
// POST /api/questions/:id/answers
func (h *APIHandler) CreateAnswerHandler(c *gin.Context) {
	questionID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question id.", err)
		return
	}
	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Fields 'userId' and 'content' are required.", err)
		return
	}

	question, err := h.questionRepo.GetByID(questionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch question.", err)
		return
	}
	if question == nil {
		utils.SendJSONError(c, http.StatusNotFound, "Question not found.", nil)
		return
	}

	author, err := h.profileService.ResolveProfile(req.UserID, req.Username, "", false)
	if err != nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "User identity could not be established.", err)
		return
	}

	answer := &models.Answer{
		QuestionID: questionID,
		UserID:     author.ID,
		Content:    req.Content,
	}
	if err := h.answerRepo.Create(answer); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create answer.", err)
		return
	}
	answer.Author = author
	c.JSON(http.StatusCreated, answer)
}

// CreateCommentRequest attaches a comment to the question or answer named in
// the route, optionally threaded under a parent comment.
type CreateCommentRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Username string `json:"username"`
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

// ListQuestionCommentsHandler returns a question's comments.
// GET /api/questions/:id/comments
func (h *APIHandler) ListQuestionCommentsHandler(c *gin.Context) {
	questionID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question id.", err)
		return
	}
	comments, err := h.commentRepo.GetByQuestionID(questionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch comments.", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateQuestionCommentHandler attaches a comment to a question.
// POST /api/questions/:id/comments
func (h *APIHandler) CreateQuestionCommentHandler(c *gin.Context) {
	questionID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid question id.", err)
		return
	}
	h.createComment(c, &questionID, nil)
}

// ListAnswerCommentsHandler returns an answer's comments.
// GET /api/answers/:id/comments
func (h *APIHandler) ListAnswerCommentsHandler(c *gin.Context) {
	answerID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid answer id.", err)
		return
	}
	comments, err := h.commentRepo.GetByAnswerID(answerID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch comments.", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateAnswerCommentHandler attaches a comment to an answer.
// POST /api/answers/:id/comments
func (h *APIHandler) CreateAnswerCommentHandler(c *gin.Context) {
	answerID, err := parseUint(c.Param("id"))
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid answer id.", err)
		return
	}
	h.createComment(c, nil, &answerID)
}

func (h *APIHandler) createComment(c *gin.Context, questionID, answerID *uint) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Fields 'userId' and 'content' are required.", err)
		return
	}
	author, err := h.profileService.ResolveProfile(req.UserID, req.Username, "", false)
	if err != nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "User identity could not be established.", err)
		return
	}

	comment := &models.Comment{
		QuestionID: questionID,
		AnswerID:   answerID,
		UserID:     author.ID,
		Content:    req.Content,
		ParentID:   req.ParentID,
	}
	if err := h.commentRepo.Create(comment); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create comment.", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListTagsHandler returns every tag.
// GET /api/tags
func (h *APIHandler) ListTagsHandler(c *gin.Context) {
	tags, err := h.tagService.List()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch tags.", err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTagsRequest resolves a batch of names, creating missing tags.
type CreateTagsRequest struct {
	Names []string `json:"names" binding:"required"`
}

// CreateTagsHandler find-or-creates the given tag names.
// POST /api/tags
func (h *APIHandler) CreateTagsHandler(c *gin.Context) {
	var req CreateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Field 'names' is required.", err)
		return
	}
	tags, err := h.tagService.ResolveTags(req.Names)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to resolve tags.", err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// TopSearchedHandler returns the questions most often hit by duplicate
// detection.
// GET /api/top-searched
func (h *APIHandler) TopSearchedHandler(c *gin.Context) {
	questions, err := h.questionRepo.TopSearched(defaultQuestionLimit)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch top searched questions.", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Helper to parse uint from string.
func parseUint(s string) (uint, error) {
	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric id: %s: %w", s, err)
	}
	return uint(u), nil
}

func optionalUintQuery(c *gin.Context, key string) (*uint, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := parseUint(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
