package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	fakefranchiserepo "github.com/jwtpizza/pizza-service/franchise/repofake"
	"github.com/jwtpizza/pizza-service/internal/config"
	fakefactory "github.com/jwtpizza/pizza-service/order/factoryfake"
	fakeorderrepo "github.com/jwtpizza/pizza-service/order/repofake"
	"github.com/jwtpizza/pizza-service/server"
	"github.com/jwtpizza/pizza-service/session"
	fakerevocationstore "github.com/jwtpizza/pizza-service/session/repofake"
	"github.com/jwtpizza/pizza-service/users"
	fakeuserrepo "github.com/jwtpizza/pizza-service/users/repofake"
)

const (
	secretStr         = "1234"
	testUserName      = "pizza diner"
	testUserEmail     = "diner@test.com"
	testUserPassword  = "a"
	testAdminName     = "admin"
	testAdminEmail    = "admin@test.com"
	testAdminPassword = "toomanysecrets"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo      *fakeuserrepo.FakeUserRepo
	franchiseRepo *fakefranchiserepo.FakeFranchiseRepo
	orderRepo     *fakeorderrepo.FakeOrderRepo
	store         *fakerevocationstore.FakeRevocationStore
	sessions      *session.Service
	factory       *fakefactory.FakeFactory
	server        *server.Server
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	userRepo := fakeuserrepo.NewFakeUserRepo()
	franchiseRepo := fakefranchiserepo.NewFakeFranchiseRepo(userRepo)
	orderRepo := fakeorderrepo.NewFakeOrderRepo()
	store := fakerevocationstore.NewFakeRevocationStore()

	codec, err := session.NewCodec(secretStr)
	require.NoError(t, err)
	sessions, err := session.NewService(codec, store)
	require.NoError(t, err)

	factory := fakefactory.NewFakeFactory()

	cfg := &config.Config{
		App:     config.AppConfig{Name: "JWT Pizza", Version: "test"},
		JWT:     config.JWTConfig{Secret: secretStr},
		Factory: config.FactoryConfig{URL: "https://factory.example.com"},
	}

	srv, err := server.New(cfg, server.Repos{
		Users:      userRepo,
		Franchises: franchiseRepo,
		Orders:     orderRepo,
	}, sessions, factory)
	require.NoError(t, err)

	return &testFixture{
		userRepo:      userRepo,
		franchiseRepo: franchiseRepo,
		orderRepo:     orderRepo,
		store:         store,
		sessions:      sessions,
		factory:       factory,
		server:        srv,
	}
}

// do performs a request against the server and returns the recorder.
func (f *testFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerDiner registers a new diner through the API and returns its token.
func (f *testFixture) registerDiner(t *testing.T, name, email, password string) (map[string]any, string) {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return user, token
}

// createAdmin seeds an admin user directly and logs it in through the API.
func (f *testFixture) createAdmin(t *testing.T) (*users.User, string) {
	t.Helper()

	hash, err := users.HashPassword(testAdminPassword)
	require.NoError(t, err)

	admin, err := f.userRepo.Add(context.Background(), &users.User{
		Name:     testAdminName,
		Email:    testAdminEmail,
		Password: hash,
		Roles:    []users.RoleAssignment{{Role: users.RoleAdmin}},
	})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/auth", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return admin, token
}

func TestWelcomeMessage(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "welcome to JWT Pizza", decodeBody(t, rec)["message"])
}

func TestUnknownEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "unknown endpoint", decodeBody(t, rec)["message"])
}

func TestDocsEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodGet, "/api/docs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "test", body["version"])
	endpoints, ok := body["endpoints"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, endpoints)
}

func TestCorsHeaders(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/order/menu", nil)
	req.Header.Set("Origin", "http://pizza.test")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, "http://pizza.test", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, PUT, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestServerNewRequiresDependencies(t *testing.T) {
	f := setupTestFixture(t)
	cfg := &config.Config{}

	_, err := server.New(nil, server.Repos{Users: f.userRepo, Franchises: f.franchiseRepo, Orders: f.orderRepo}, f.sessions, f.factory)
	require.Error(t, err)

	_, err = server.New(cfg, server.Repos{}, f.sessions, f.factory)
	require.Error(t, err)

	_, err = server.New(cfg, server.Repos{Users: f.userRepo, Franchises: f.franchiseRepo, Orders: f.orderRepo}, nil, f.factory)
	require.Error(t, err)
}

// uniqueEmail avoids collisions between tests sharing a fixture.
func uniqueEmail(t *testing.T, n int) string {
	t.Helper()
	return fmt.Sprintf("user%d@test.com", n)
}
