//go:build integration
// +build integration

package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

// IntegrationSuiteBase provides a MySQL database for local storage and an
// in-process stand-in for the hosted backend.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string

	dbHost     string
	dbPort     string
	dbUser     string
	dbPassword string
	dbParams   string

	Backend *fakeBackend
	server  *httptest.Server
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.dbHost = envOrDefault("MYSQL_HOST", "127.0.0.1")
	s.dbPort = envOrDefault("MYSQL_PORT", "3306")
	s.dbUser = envOrDefault("MYSQL_ROOT_USER", "root")
	s.dbPassword = envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	s.dbParams = envOrDefault("MYSQL_PARAMS", "parseTime=true")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "taskboard")+"_test")

	adminDB, err := sqlx.Connect("mysql", mysqlDSN(s.dbUser, s.dbPassword, s.dbHost, s.dbPort, "", s.dbParams))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	db, err := sqlx.Connect("mysql", mysqlDSN(s.dbUser, s.dbPassword, s.dbHost, s.dbPort, database, s.dbParams))
	s.Require().NoError(err)
	s.DB = db
	s.testDBName = database

	s.Backend = newFakeBackend()
	s.server = httptest.NewServer(s.Backend)
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.testDBName != "" && strings.HasSuffix(s.testDBName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.testDBName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// ResetState empties local storage and the backend's task table.
func (s *IntegrationSuiteBase) ResetState() {
	_, err := s.DB.Exec("DROP TABLE IF EXISTS local_storage")
	s.Require().NoError(err)
	s.Backend.reset()
}

func (s *IntegrationSuiteBase) BackendURL() string {
	return s.server.URL
}

func mysqlDSN(user, password, host, port, database, params string) string {
	if database == "" {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", user, password, host, port, params)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

const (
	fakeUserID      = "0d6f1c1e-1111-4c5b-9d7e-5a9b1f2c3d4e"
	fakeEmail       = "dina@example.com"
	fakePassword    = "secret1"
	fakeAccessToken = "access-token"
)

// fakeBackend answers the auth and data endpoints the client uses. Accounts
// start unconfirmed until the confirm_user_email RPC is called.
type fakeBackend struct {
	mu        sync.Mutex
	confirmed bool
	rows      []map[string]any
	logouts   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{}
}

func (f *fakeBackend) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = false
	f.rows = nil
	f.logouts = 0
}

func (f *fakeBackend) Logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logouts
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/auth/v1/health":
		writeJSON(w, http.StatusOK, map[string]any{"name": "auth"})
	case r.URL.Path == "/auth/v1/token":
		f.token(w, r)
	case r.URL.Path == "/auth/v1/logout":
		f.logouts++
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/rest/v1/rpc/confirm_user_email":
		f.confirmed = true
		writeJSON(w, http.StatusOK, nil)
	case r.URL.Path == "/rest/v1/tasks":
		if r.Header.Get("Authorization") != "Bearer "+fakeAccessToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "JWT expired"})
			return
		}
		f.tasks(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBackend) token(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if creds.Email != fakeEmail || creds.Password != fakePassword {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error_code": "invalid_credentials", "msg": "Invalid login credentials"})
		return
	}
	if !f.confirmed {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error_code": "email_not_confirmed", "msg": "Email not confirmed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  fakeAccessToken,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "refresh-token",
		"user":          map[string]any{"id": fakeUserID, "email": fakeEmail},
	})
}

func (f *fakeBackend) tasks(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")

	switch r.Method {
	case http.MethodGet:
		owner := strings.TrimPrefix(r.URL.Query().Get("user_id"), "eq.")
		rows := make([]map[string]any, 0)
		// Rows are kept newest first.
		for _, row := range f.rows {
			if row["user_id"] == owner {
				rows = append(rows, row)
			}
		}
		writeJSON(w, http.StatusOK, rows)
	case http.MethodPost:
		var inserted []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&inserted); err != nil || len(inserted) != 1 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad insert"})
			return
		}
		row := inserted[0]
		row["id"] = uuid.NewString()
		row["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
		f.rows = append([]map[string]any{row}, f.rows...)
		writeJSON(w, http.StatusCreated, []map[string]any{row})
	case http.MethodPatch:
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for _, row := range f.rows {
			if row["id"] == id {
				for key, value := range patch {
					row[key] = value
				}
				writeJSON(w, http.StatusOK, []map[string]any{row})
				return
			}
		}
		writeJSON(w, http.StatusOK, []map[string]any{})
	case http.MethodDelete:
		for i, row := range f.rows {
			if row["id"] == id {
				f.rows = append(f.rows[:i], f.rows[i+1:]...)
				writeJSON(w, http.StatusOK, []map[string]any{{"id": id}})
				return
			}
		}
		writeJSON(w, http.StatusOK, []map[string]any{})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
