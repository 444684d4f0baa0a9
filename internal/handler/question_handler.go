package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/model"
	"github.com/stemsi/qboard/internal/response"
	"github.com/stemsi/qboard/internal/service"
	"github.com/stemsi/qboard/internal/validator"
)

// QuestionHandler serves the /api/questions resource.
type QuestionHandler struct {
	questionService *service.QuestionService
	maxBodyBytes    int64
	log             zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler. A non-positive
// maxBodyBytes disables the request size cap.
func NewQuestionHandler(questionService *service.QuestionService, maxBodyBytes int64, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		maxBodyBytes:    maxBodyBytes,
		log:             log.With().Str("component", "question_handler").Logger(),
	}
}

// GetQuestions godoc
// GET /api/questions
// Returns the stored question set.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	set, err := h.questionService.Load(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrLoadFailed)
		return
	}
	response.Success(c, http.StatusOK, set)
}

// SaveQuestions godoc
// POST /api/questions
// Replaces the stored question set.
func (h *QuestionHandler) SaveQuestions(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req model.SaveQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		h.log.Warn().
			Str("request_id", response.RequestID(c)).
			Interface("fields", fields).
			Msg("rejected question set")
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.questionService.Save(c.Request.Context(), req.ToQuestionSet()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrSaveFailed)
		return
	}
	response.Acknowledge(c, http.StatusOK)
}

// Preflight godoc
// OPTIONS /api/questions
// Answers cross-origin preflight requests that carry no Origin header.
func (h *QuestionHandler) Preflight(c *gin.Context) {
	response.Empty(c, http.StatusOK)
}

// MethodNotAllowed answers any other method on a known path.
func MethodNotAllowed(c *gin.Context) {
	response.Fail(c, http.StatusMethodNotAllowed, response.ErrMethodNotAllowed)
}

// NotFound answers unknown paths.
func NotFound(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, response.ErrNotFound)
}
