package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pharmasuccess/examportal/config"
	"github.com/pharmasuccess/examportal/database"
	_ "github.com/pharmasuccess/examportal/docs" // Swagger docs - auto-generated
	adminctrl "github.com/pharmasuccess/examportal/internal/controller/admin"
	"github.com/pharmasuccess/examportal/internal/controller/middleware"
	userctrl "github.com/pharmasuccess/examportal/internal/controller/user"
	"github.com/pharmasuccess/examportal/internal/logger"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/pharmasuccess/examportal/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Pharma Success Exam Portal API
// @version 1.0
// @description Online exam portal for pharmacy students: registration with admin approval, course enrollment, timed multiple-choice tests and graded results.
// @contact.name API Support
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewResultRepository,
			repository.NewSubmissionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewGradingService,
			service.NewQuestionBankService,
			service.NewAttemptService,
			service.NewSubmissionService,
			service.NewStudentService,
			service.NewAdminService,
			service.NewExplanationService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewStudentController,
			userctrl.NewTestController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *userctrl.AuthController,
	studentCtrl *userctrl.StudentController,
	testCtrl *userctrl.TestController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(authService))
	{
		authed.GET("/auth/verify", authCtrl.Verify)
		authed.POST("/auth/logout", authCtrl.Logout)
		authed.PUT("/auth/password", authCtrl.ChangePassword)

		studentGroup := authed.Group("/student")
		{
			studentGroup.GET("/dashboard", studentCtrl.Dashboard)
			studentGroup.GET("/courses", studentCtrl.Courses)
			studentGroup.POST("/enrollments", studentCtrl.Enroll)
			studentGroup.GET("/tests", studentCtrl.AvailableTests)
			studentGroup.GET("/results", studentCtrl.Results)
		}

		authed.GET("/tests/:test_id", testCtrl.GetTest)
		authed.POST("/tests/:test_id/submit", testCtrl.SubmitTest)
		authed.GET("/results", studentCtrl.Results)

		adminGroup := authed.Group("/admin")
		adminGroup.Use(middleware.RequireAdmin())
		{
			adminGroup.GET("/dashboard", adminCtrl.Dashboard)
			adminGroup.GET("/users", adminCtrl.Users)
			adminGroup.PUT("/users/status", adminCtrl.UpdateUserStatus)
			adminGroup.GET("/tests", adminCtrl.Tests)
			adminGroup.POST("/tests", adminCtrl.CreateTest)
			adminGroup.DELETE("/tests/:test_id", adminCtrl.DeleteTest)
			adminGroup.POST("/questions/bulk", adminCtrl.BulkImport)
			adminGroup.POST("/questions/:question_id/explanation", adminCtrl.GenerateExplanation)
			adminGroup.GET("/results", adminCtrl.AllResults)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.Test{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Answer{},
		&model.Result{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
