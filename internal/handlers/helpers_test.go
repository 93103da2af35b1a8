package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teamflow-app/teamflow/internal/constants"
	"github.com/teamflow-app/teamflow/internal/database"
	"github.com/teamflow-app/teamflow/internal/middleware"
	"github.com/teamflow-app/teamflow/internal/models"
	"github.com/teamflow-app/teamflow/internal/repository"
	"github.com/teamflow-app/teamflow/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	userRepo       repository.UserRepository
	projectRepo    repository.ProjectRepository
	taskRepo       repository.TaskRepository
	authService    *services.AuthService
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, userRepo, false)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)
	apiHandler := NewAPIHandler(userRepo, projectRepo)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.GET("/login/", authHandler.LoginPage)
	r.POST("/login/", authHandler.Login)
	r.GET("/logout/", authHandler.Logout)
	r.GET("/register/", authHandler.RegisterPage)
	r.POST("/register/", authHandler.Register)

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

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/users/", apiHandler.ListUsers)
		api.GET("/projects/", apiHandler.ListProjects)
		api.GET("/projects/user/", apiHandler.ListUserProjects)
		api.GET("/projects/:id/", apiHandler.GetProject)
		api.GET("/project/:id/users/", apiHandler.ListProjectMembers)
	}

	return &testEnv{
		db:             db,
		router:         r,
		userRepo:       userRepo,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		authService:    authService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// testClient carries the session cookie across requests, so flash messages
// and login state behave as they would in a browser.
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, env *testEnv) *testClient {
	return &testClient{t: t, router: env.router}
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		replaced := false
		for i, old := range tc.cookies {
			if old.Name == c.Name {
				tc.cookies[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			tc.cookies = append(tc.cookies, c)
		}
	}

	return w
}

// messages fetches path and returns the flash messages it delivered.
func (tc *testClient) messages(path string) []string {
	tc.t.Helper()

	w := tc.do(http.MethodGet, path, nil)
	require.Equal(tc.t, http.StatusOK, w.Code)

	var body struct {
		Messages []string `json:"messages"`
	}
	require.NoError(tc.t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Messages
}

func registerUser(t *testing.T, env *testEnv, username, email, password string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return user
}

func login(t *testing.T, tc *testClient, email, password string) {
	t.Helper()

	w := tc.do(http.MethodPost, "/login/", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}
