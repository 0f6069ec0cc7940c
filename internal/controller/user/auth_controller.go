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

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new student account
// @Description Creates a student account in pending state; an admin must approve it before login works.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterDTO true "Registration details"
// @Success 201 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 409 {object} dto.Response "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := c.authService.Register(req); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, dto.Fail("Email is already registered"))
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Register: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to register"))
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK("Registration successful. Await admin approval.", nil))
}

// Login godoc
// @Summary Log in as student or admin
// @Description Checks credentials against the requested role and returns a signed session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Email, password and role"
// @Success 200 {object} dto.Response{data=dto.LoginResponseDTO}
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 401 {object} dto.Response "Wrong credentials"
// @Failure 403 {object} dto.Response "Account not approved yet"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
		case errors.Is(err, service.ErrAccountNotActive):
			ctx.JSON(http.StatusForbidden, dto.Fail("Account is not active"))
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Login: service error")
			ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to log in"))
		}
		return
	}

	log.Info().Uint("userID", resp.User.ID).Str("userType", resp.User.UserType).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.OK("Login successful", resp))
}

// Verify godoc
// @Summary Verify the current session token
// @Description Returns the identity encoded in the presented token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=dto.UserResponseDTO}
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)
	identity := dto.UserResponseDTO{
		ID:       claims.UserID,
		FullName: claims.FullName,
		UserType: claims.UserType,
	}
	ctx.JSON(http.StatusOK, dto.OK("Session is valid", identity))
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless; the client discards its copy. The endpoint exists for API compatibility.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)
	log.Info().Uint("userID", claims.UserID).Msg("User logged out")
	ctx.JSON(http.StatusOK, dto.OK("Logged out", nil))
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body dto.ChangePasswordDTO true "New password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid request body"
// @Failure 401 {object} dto.Response "Missing or invalid token"
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := middleware.CurrentUser(ctx)

	var req dto.ChangePasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body: "+err.Error()))
		return
	}

	if err := c.authService.ChangePassword(claims.UserID, req.Password); err != nil {
		log.Error().Err(err).Uint("userID", claims.UserID).Msg("ChangePassword: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to change password"))
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Password updated", nil))
}
