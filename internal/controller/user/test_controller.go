package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pharmasuccess/examportal/internal/controller/middleware"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/service"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	questionBank service.QuestionBankService
	attempts     service.AttemptService
	submissions  service.SubmissionService
}

func NewTestController(
	questionBank service.QuestionBankService,
	attempts service.AttemptService,
	submissions service.SubmissionService,
) *TestController {
	return &TestController{
		questionBank: questionBank,
		attempts:     attempts,
		submissions:  submissions,
	}
}

// GetTest godoc
// @Summary Start taking a test
// @Description Opens an attempt and returns the test with its questions. Correct options are never included. A student gets exactly one attempt per test.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response{data=dto.TestSessionDTO}
// @Failure 400 {object} dto.Response "Invalid Test ID format"
// @Failure 404 {object} dto.Response "Test not found or not active"
// @Failure 409 {object} dto.Response "Test already attempted"
// @Router /tests/{test_id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid Test ID format"))
		return
	}

	test, questions, err := c.questionBank.FetchTest(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found or not active"))
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetTest: failed to fetch test")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load test"))
		return
	}

	attempt, err := c.attempts.OpenAttempt(claims.UserID, uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyAttempted) {
			ctx.JSON(http.StatusConflict, dto.Fail("Test already attempted"))
			return
		}
		log.Error().Err(err).Uint("userID", claims.UserID).Uint64("testID", testID).Msg("GetTest: failed to open attempt")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to start test"))
		return
	}

	log.Info().Uint("userID", claims.UserID).Uint64("testID", testID).Uint("attemptID", attempt.ID).Msg("Attempt opened")
	session := dto.TestSessionDTO{
		Test:      *test,
		Questions: questions,
		AttemptID: attempt.ID,
	}
	ctx.JSON(http.StatusOK, dto.OK("Test loaded", session))
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Grades the submission and stores answers, result and completion atomically. Unknown question IDs are skipped; duplicate answers keep the last choice. Rejected after the attempt deadline.
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param submission body dto.SubmitTestDTO true "Attempt ID and answers"
// @Success 200 {object} dto.Response{data=dto.ResultDTO}
// @Failure 400 {object} dto.Response "Invalid input"
// @Failure 404 {object} dto.Response "Test or attempt not found"
// @Failure 409 {object} dto.Response "Attempt already completed"
// @Failure 422 {object} dto.Response "Deadline exceeded"
// @Router /tests/{test_id}/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid Test ID format"))
		return
	}

	var req dto.SubmitTestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	answers := make([]service.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.SubmittedAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		})
	}

	result, err := c.submissions.Submit(claims.UserID, uint(testID), req.AttemptID, answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound), errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, service.ErrInvalidState):
			ctx.JSON(http.StatusConflict, dto.Fail("Attempt is already completed"))
		case errors.Is(err, service.ErrDeadlineExceeded):
			ctx.JSON(http.StatusUnprocessableEntity, dto.Fail("Submission deadline exceeded"))
		case errors.Is(err, service.ErrValidation):
			ctx.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		default:
			log.Error().Err(err).Uint("userID", claims.UserID).Uint64("testID", testID).Msg("SubmitTest: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to submit test"))
		}
		return
	}

	log.Info().
		Uint("userID", claims.UserID).
		Uint64("testID", testID).
		Uint("attemptID", req.AttemptID).
		Int("marksObtained", result.MarksObtained).
		Str("status", result.Status).
		Msg("Submission graded")

	resp := dto.ResultDTO{
		ID:            result.ID,
		TestID:        result.TestID,
		MarksObtained: result.MarksObtained,
		TotalMarks:    result.TotalMarks,
		Percentage:    result.Percentage,
		Status:        result.Status,
		CreatedAt:     result.CreatedAt,
	}
	ctx.JSON(http.StatusOK, dto.OK("Test submitted", resp))
}
