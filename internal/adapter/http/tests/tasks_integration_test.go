//go:build integration
// +build integration

package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/app"
	"taskboard/internal/config"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "supabase.auth"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageId, translator.LanguageEn},
	})
	os.Exit(m.Run())
}

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	app    *app.App
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetState()

	cfg := &config.Config{
		BackendURL:           s.BackendURL(),
		BackendAnonKey:       "anon-key",
		HTTPTimeout:          5 * time.Second,
		SessionKeyPrefix:     sessionKeyPrefix,
		StorageDriver:        config.StorageMySQL,
		DbHost:               s.dbHost,
		DbPort:               s.dbPort,
		DbUser:               s.dbUser,
		DbPassword:           s.dbPassword,
		DbName:               s.testDBName,
		DbParams:             s.dbParams,
		NotificationsEnabled: true,
		NotifyInterval:       time.Hour,
		NotifyInitialDelay:   time.Hour,
		Location:             time.UTC,
	}

	application, err := app.New(context.Background(), cfg, zap.NewNop())
	s.Require().NoError(err)
	s.Require().NoError(application.Start(context.Background()))
	s.app = application

	router := gin.New()
	httpadapter.RegisterRoutes(router, application.Sessions, httpadapter.Handlers{
		Health:        handlers.NewHealthHandler(application.Backend, application.Storage),
		Auth:          handlers.NewAuthHandler(application.Sessions),
		Tasks:         handlers.NewTaskHandler(application.Tasks, cfg.Location),
		Views:         handlers.NewViewHandler(application.Tasks, cfg.Location),
		Export:        handlers.NewExportHandler(application.Tasks, application.Exporter),
		Notifications: handlers.NewNotificationHandler(application.Inbox, application.PermissionChanged),
	})
	s.router = router
}

func (s *TasksIntegrationSuite) TearDownTest() {
	if s.app != nil {
		s.app.Close()
	}
}

func (s *TasksIntegrationSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) signIn() {
	rec := s.do(http.MethodPost, "/api/auth/signin", `{"email":"`+fakeEmail+`","password":"`+fakePassword+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *TasksIntegrationSuite) storedKeys() []string {
	var keys []string
	s.Require().NoError(s.DB.Select(&keys, "SELECT storage_key FROM local_storage ORDER BY storage_key"))
	return keys
}

func (s *TasksIntegrationSuite) TestTasks_RequireSignIn() {
	rec := s.do(http.MethodGet, "/api/tasks", "")

	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("You need to sign in first", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestSignIn_ConfirmsEmailAndPersistsSession() {
	s.signIn()

	s.Require().Equal([]string{sessionKeyPrefix + ".token"}, s.storedKeys())

	rec := s.do(http.MethodGet, "/api/auth/session", "")
	var got dto.SessionItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotNil(got.Identity)
	s.Require().Equal(fakeEmail, got.Identity.Email)
}

func (s *TasksIntegrationSuite) TestSignIn_WrongPassword() {
	rec := s.do(http.MethodPost, "/api/auth/signin", `{"email":"`+fakeEmail+`","password":"wrong-password"}`)

	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Require().Empty(s.storedKeys())
}

func (s *TasksIntegrationSuite) TestTaskLifecycle() {
	s.signIn()

	rec := s.do(http.MethodPost, "/api/tasks", `{
		"title":"  Write chapter two  ",
		"category":"thesis",
		"priority":"high",
		"deadline":"2030-02-20",
		"description":"literature review"
	}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Require().NotEmpty(created.ID)
	s.Require().Equal("Write chapter two", created.Title)
	s.Require().Equal("not_started", created.Status)

	rec = s.do(http.MethodPost, "/api/tasks", `{"title":"Budget","category":"work","priority":"low"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks?view=thesis", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var listed []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	s.Require().Len(listed, 1)
	s.Require().Equal(created.ID, listed[0].ID)

	rec = s.do(http.MethodPatch, "/api/tasks/"+created.ID, `{"status":"done","description":null}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("done", updated.Status)
	s.Require().Nil(updated.Description)
	s.Require().Equal(created.CreatedAt, updated.CreatedAt)

	rec = s.do(http.MethodGet, "/api/profile", "")
	var profile dto.ProfileItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &profile))
	s.Require().Equal(dto.StatsItem{Total: 2, Completed: 1, Pending: 1}, profile.Stats)

	rec = s.do(http.MethodDelete, "/api/tasks/"+created.ID, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/tasks/"+created.ID, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/tasks/refresh", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	s.Require().Len(listed, 1)
	s.Require().Equal("Budget", listed[0].Title)
}

func (s *TasksIntegrationSuite) TestExport_DownloadsSpreadsheet() {
	s.signIn()
	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Budget","category":"work","priority":"low"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/export/xlsx", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Header().Get("Content-Disposition"), "task-list-")
	s.Require().True(strings.HasPrefix(rec.Body.String(), "PK"))
}

func (s *TasksIntegrationSuite) TestSignOut_ClearsLocalStateAndTasks() {
	s.signIn()
	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Budget","category":"work","priority":"low"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/signout", "")

	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Require().Equal(1, s.Backend.Logouts())
	s.Require().Empty(s.storedKeys())
	s.Require().Empty(s.app.Tasks.List())
	s.Require().Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/tasks", "").Code)
}

func (s *TasksIntegrationSuite) TestHealthReport() {
	rec := s.do(http.MethodGet, "/api/health/report", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var got handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(handlers.StatusOk, got.Status.Backend)
	s.Require().Equal(handlers.StatusOk, got.Status.LocalStorage)
}
