package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/teamflow-app/teamflow/internal/config"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/database"
	"github.com/teamflow-app/teamflow/internal/handlers"
	"github.com/teamflow-app/teamflow/internal/middleware"
	"github.com/teamflow-app/teamflow/internal/repository"
	"github.com/teamflow-app/teamflow/internal/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamflow",
		Short: "Team/project collaboration server",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogger(cfg.GinMode)
			gin.SetMode(cfg.GinMode)

			if err := database.Connect(cfg); err != nil {
				return err
			}
			if err := database.Migrate(); err != nil {
				return err
			}

			r := gin.Default()

			redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
			store, err := redisStore.NewStore(
				10,
				"tcp",
				redisAddr,
				"",
				[]byte(cfg.SessionSecret),
			)
			if err != nil {
				return err
			}
			isProduction := cfg.GinMode == "release"
			store.Options(sessions.Options{
				Path:     "/",
				MaxAge:   86400 * 7, // 7 days
				HttpOnly: true,
				Secure:   isProduction,
				SameSite: http.SameSiteLaxMode,
			})
			r.Use(sessions.Sessions(constants.SessionCookieName, store))

			registerRoutes(r, cfg)

			logrus.WithField("addr", cfg.ListenAddr).Info("Server starting")
			return r.Run(cfg.ListenAddr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogger(cfg.GinMode)

			if err := database.Connect(cfg); err != nil {
				return err
			}
			return database.Migrate()
		},
	}
}

func registerRoutes(r *gin.Engine, cfg *config.Config) {
	db := database.GetDB()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, userRepo, cfg.LegacyStatusFilter)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	apiHandler := handlers.NewAPIHandler(userRepo, projectRepo)

	// Auth (public)
	r.GET("/login/", authHandler.LoginPage)
	r.POST("/login/", authHandler.Login)
	r.GET("/logout/", authHandler.Logout)
	r.GET("/register/", authHandler.RegisterPage)
	r.POST("/register/", authHandler.Register)

	// Web (session required, redirect to login otherwise)
	web := r.Group("/")
	web.Use(middleware.RequireLogin())
	{
		web.GET("/", projectHandler.Home)
		web.GET("/projects/", projectHandler.ProjectsPage)
		web.GET("/projects/create/", projectHandler.CreateProjectPage)
		web.POST("/projects/create/", projectHandler.CreateProject)
		web.GET("/projects/:id/", middleware.RequireProjectMember(), projectHandler.ProjectDetail)
		web.POST("/projects/:id/tasks/create/", taskHandler.AssignTask)
		web.POST("/projects/:id/members/add/:email/", projectHandler.AddMember)
		web.POST("/projects/:id/members/remove/:member_id/", projectHandler.RemoveMember)
		web.POST("/projects/:id/delete/", projectHandler.DeleteProject)
		web.POST("/tasks/update/:task_id", taskHandler.ChangeTaskStatus)
	}

	// Read-only JSON API (session required, 401 otherwise)
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/users/", apiHandler.ListUsers)
		api.GET("/projects/", apiHandler.ListProjects)
		api.GET("/projects/user/", apiHandler.ListUserProjects)
		api.GET("/projects/:id/", apiHandler.GetProject)
		api.GET("/project/:id/users/", apiHandler.ListProjectMembers)
	}
}

func setupLogger(mode string) {
	if mode == "release" {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetOutput(os.Stdout)
}
