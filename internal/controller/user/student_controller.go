package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmasuccess/examportal/internal/controller/middleware"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	studentService service.StudentService
}

func NewStudentController(studentService service.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// Dashboard godoc
// @Summary Student dashboard counters
// @Description Completed test count, pending test count and average score for the logged-in student.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=dto.StudentDashboardDTO}
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	dashboard, err := c.studentService.Dashboard(claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("Student Dashboard: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load dashboard"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Dashboard loaded", dashboard))
}

// Courses godoc
// @Summary List all courses
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.CourseDTO}
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /student/courses [get]
func (c *StudentController) Courses(ctx *gin.Context) {
	courses, err := c.studentService.Courses()
	if err != nil {
		log.Error().Err(err).Msg("Student Courses: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load courses"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Courses loaded", courses))
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body dto.EnrollDTO true "Course to enroll in"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 404 {object} dto.Response "Course not found"
// @Failure 409 {object} dto.Response "Already enrolled"
// @Router /student/enrollments [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	var req dto.EnrollDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := c.studentService.Enroll(claims.UserID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			ctx.JSON(http.StatusNotFound, dto.Fail("Course not found"))
		case errors.Is(err, service.ErrAlreadyEnrolled):
			ctx.JSON(http.StatusConflict, dto.Fail("Already enrolled in this course"))
		default:
			log.Error().Err(err).Uint("userID", claims.UserID).Uint("courseID", req.CourseID).Msg("Enroll: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to enroll"))
		}
		return
	}

	log.Info().Uint("userID", claims.UserID).Uint("courseID", req.CourseID).Msg("Student enrolled in course")
	ctx.JSON(http.StatusCreated, dto.OK("Enrolled successfully", nil))
}

// AvailableTests godoc
// @Summary List tests the student can take now
// @Description Active tests in enrolled courses, inside their availability window, not yet attempted.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.AvailableTestDTO}
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /student/tests [get]
func (c *StudentController) AvailableTests(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	tests, err := c.studentService.AvailableTests(claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("AvailableTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load tests"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Tests loaded", tests))
}

// Results godoc
// @Summary List the student's own results
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]dto.ResultDTO}
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /student/results [get]
func (c *StudentController) Results(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	results, err := c.studentService.Results(claims.UserID)
	if err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("Student Results: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load results"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK("Results loaded", results))
}
