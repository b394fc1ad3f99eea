package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ltmanh/vocaprep/config"
	"github.com/ltmanh/vocaprep/database"
	_ "github.com/ltmanh/vocaprep/docs" // Swagger docs - auto-generated
	studentctrl "github.com/ltmanh/vocaprep/internal/controller/student"
	teacherctrl "github.com/ltmanh/vocaprep/internal/controller/teacher"
	"github.com/ltmanh/vocaprep/internal/logger"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/ltmanh/vocaprep/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title VocaPrep API
// @version 1.0
// @description API for generating graded vocabulary practice tests from uploaded sheets, assigning them to students, and tracking resumable attempts.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			service.NewRandomizer,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewSheetRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAssignmentRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewWordExtractionService,
			service.NewSheetService,
			service.NewSynthesizerService,
			service.NewTestGeneratorService,
			service.NewTestCatalogService,
			service.NewAssignmentService,
			service.NewScoringService,
			func(
				testRepo repository.TestRepository,
				questionRepo repository.QuestionRepository,
				attemptRepo repository.AttemptRepository,
				answerRepo repository.AnswerRepository,
				scoring service.ScoringService,
				db *gorm.DB,
			) service.AttemptService {
				return service.NewAttemptService(testRepo, questionRepo, attemptRepo, answerRepo, scoring, db)
			},
		),

		// API Controllers Layer
		fx.Provide(
			teacherctrl.NewTeacherController,
			studentctrl.NewStudentController,
		),

		// Invokers - Functions that are executed by Fx
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
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Request logging through the global zerolog instance.
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
	teacherCtrl *teacherctrl.TeacherController,
	studentCtrl *studentctrl.StudentController,
) {
	// Teacher Routes (prefixed with /api/v1/teacher)
	teacherAPIGroup := router.Group("/api/v1/teacher")
	{
		sheetsGroup := teacherAPIGroup.Group("/sheets")
		sheetsGroup.POST("", teacherCtrl.CreateSheet)
		sheetsGroup.GET("", teacherCtrl.GetAllSheets)
		sheetsGroup.GET("/:sheet_id", teacherCtrl.GetSheet)
		sheetsGroup.POST("/:sheet_id/tests", teacherCtrl.GenerateTests)

		teacherAPIGroup.POST("/tests/:test_id/assignments", teacherCtrl.AssignTest)
		teacherAPIGroup.DELETE("/assignments/:assignment_id", teacherCtrl.UnassignTest)
	}

	// Student Routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	{
		// Test catalog
		studentAPIGroup.GET("/tests", studentCtrl.GetAllTests)
		studentAPIGroup.GET("/tests/:test_id", studentCtrl.GetTestDetails)

		// Assignments and attempt lifecycle
		studentAPIGroup.GET("/students/:student_id/assignments", studentCtrl.GetAssignments)
		studentAPIGroup.GET("/students/:student_id/attempts", studentCtrl.GetAttemptHistory)
		studentAPIGroup.POST("/tests/:test_id/attempts", studentCtrl.StartAttempt)
		studentAPIGroup.GET("/attempts/:attempt_id", studentCtrl.GetAttempt)
		studentAPIGroup.PUT("/attempts/:attempt_id/answers", studentCtrl.SaveAnswer)
		studentAPIGroup.PUT("/attempts/:attempt_id/position", studentCtrl.SetPosition)
		studentAPIGroup.POST("/attempts/:attempt_id/submit", studentCtrl.SubmitAttempt)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("VocaPrep API server starting on port %s", cfg.Server.Port)
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
		&model.Sheet{},
		&model.Word{},
		&model.Test{},
		&model.Question{},
		&model.Assignment{},
		&model.Attempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
