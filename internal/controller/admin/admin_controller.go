package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService       service.AdminService
	explanationService service.ExplanationService
}

func NewAdminController(adminService service.AdminService, explanationService service.ExplanationService) *AdminController {
	return &AdminController{
		adminService:       adminService,
		explanationService: explanationService,
	}
}

// Dashboard godoc
// @Summary Admin dashboard counters
// @Description Total students, pending approvals, active tests and total attempts.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=dto.AdminDashboardDTO}
// @Failure 403 {object} dto.Response "Admin access required"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.adminService.Dashboard()
	if err != nil {
		log.Error().Err(err).Msg("Admin Dashboard: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load dashboard"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Dashboard loaded", dashboard))
}

// Users godoc
// @Summary List student accounts
// @Description Students filtered by status. Defaults to pending, the approval queue.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Account status filter" Enums(pending, active, inactive, rejected)
// @Success 200 {object} dto.Response{data=[]dto.UserResponseDTO}
// @Failure 403 {object} dto.Response "Admin access required"
// @Router /admin/users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	status := ctx.DefaultQuery("status", "pending")

	users, err := c.adminService.Users(status)
	if err != nil {
		log.Error().Err(err).Str("status", status).Msg("Admin Users: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load users"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Users loaded", users))
}

// UpdateUserStatus godoc
// @Summary Approve, reject or deactivate a student account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param update body dto.UpdateUserStatusDTO true "User and new status"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 404 {object} dto.Response "User not found"
// @Router /admin/users/status [put]
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	var req dto.UpdateUserStatusDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := c.adminService.UpdateUserStatus(req.UserID, req.Status); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		log.Error().Err(err).Uint("userID", req.UserID).Msg("UpdateUserStatus: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to update user status"))
		return
	}

	log.Info().Uint("userID", req.UserID).Str("status", req.Status).Msg("User status updated")
	ctx.JSON(http.StatusOK, dto.OK("User status updated", nil))
}

// Tests godoc
// @Summary List all tests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.TestMetadataDTO}
// @Failure 403 {object} dto.Response "Admin access required"
// @Router /admin/tests [get]
func (c *AdminController) Tests(ctx *gin.Context) {
	tests, err := c.adminService.Tests()
	if err != nil {
		log.Error().Err(err).Msg("Admin Tests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load tests"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Tests loaded", tests))
}

// CreateTest godoc
// @Summary Create a test
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.Response{data=dto.TestMetadataDTO}
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 404 {object} dto.Response "Course not found"
// @Router /admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	test, err := c.adminService.CreateTest(req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Course not found"))
			return
		}
		log.Error().Err(err).Str("title", req.TestTitle).Msg("CreateTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to create test"))
		return
	}

	log.Info().Uint("testID", test.ID).Str("title", test.TestTitle).Msg("Test created")
	ctx.JSON(http.StatusCreated, dto.OK("Test created", test))
}

// DeleteTest godoc
// @Summary Delete a test
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid Test ID format"
// @Failure 404 {object} dto.Response "Test not found"
// @Router /admin/tests/{test_id} [delete]
func (c *AdminController) DeleteTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid Test ID format"))
		return
	}

	if err := c.adminService.DeleteTest(uint(testID)); err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("DeleteTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to delete test"))
		return
	}

	log.Info().Uint64("testID", testID).Msg("Test deleted")
	ctx.JSON(http.StatusOK, dto.OK("Test deleted", nil))
}

// BulkImport godoc
// @Summary Bulk import questions into a test
// @Description Inserts all questions in one transaction. Marks defaults to 4 when omitted.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param import body dto.BulkImportDTO true "Target test and questions"
// @Success 201 {object} dto.Response{data=dto.BulkImportResultDTO}
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 404 {object} dto.Response "Test not found"
// @Router /admin/questions/bulk [post]
func (c *AdminController) BulkImport(ctx *gin.Context) {
	var req dto.BulkImportDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	imported, err := c.adminService.BulkImport(req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
			return
		}
		log.Error().Err(err).Uint("testID", req.TestID).Msg("BulkImport: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to import questions"))
		return
	}

	log.Info().Uint("testID", req.TestID).Int("imported", imported).Msg("Questions imported")
	ctx.JSON(http.StatusCreated, dto.OK("Questions imported", dto.BulkImportResultDTO{Imported: imported}))
}

// AllResults godoc
// @Summary List all results across students and tests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.AdminResultDTO}
// @Failure 403 {object} dto.Response "Admin access required"
// @Router /admin/results [get]
func (c *AdminController) AllResults(ctx *gin.Context) {
	results, err := c.adminService.AllResults()
	if err != nil {
		log.Error().Err(err).Msg("Admin AllResults: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load results"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Results loaded", results))
}

// GenerateExplanation godoc
// @Summary Generate an AI explanation for a question
// @Description Produces a short explanation of the correct option and stores it on the question.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.Response{data=dto.ExplanationDTO}
// @Failure 400 {object} dto.Response "Invalid Question ID format"
// @Failure 404 {object} dto.Response "Question not found"
// @Failure 503 {object} dto.Response "Explanation generation unavailable"
// @Router /admin/questions/{question_id}/explanation [post]
func (c *AdminController) GenerateExplanation(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid Question ID format"))
		return
	}

	explanation, err := c.explanationService.GenerateExplanation(ctx.Request.Context(), uint(questionID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			ctx.JSON(http.StatusNotFound, dto.Fail("Question not found"))
		case errors.Is(err, service.ErrExplanationUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, dto.Fail("Explanation generation is not configured"))
		default:
			log.Error().Err(err).Uint64("questionID", questionID).Msg("GenerateExplanation: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to generate explanation"))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Explanation generated", dto.ExplanationDTO{
		QuestionID:  uint(questionID),
		Explanation: explanation,
	}))
}
