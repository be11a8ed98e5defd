package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/middleware"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/internal/testhelpers"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTokenValidator implements a mock token validator for testing
type MockTokenValidator struct {
	mock.Mock
}

func (v *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := v.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// memoryStore is an in-process object store.
type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) PutObject(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "https://bucket.example/" + key, nil
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *memoryStore
}

func setupTestRouter(t *testing.T, guards Guards, withStore bool) *testServer {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	log := logger.NewNop()

	recipes := service.NewRecipeService(repository.NewRecipeRepository(db, log), log)
	var store *memoryStore
	var objectStore service.ObjectStore
	if withStore {
		store = &memoryStore{objects: map[string][]byte{}}
		objectStore = store
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	RegisterRoutes(router, Services{
		DB:      db,
		Recipes: recipes,
		Images:  service.NewImageService(objectStore, recipes, log),
		Tasks:   service.NewTaskService(repository.NewTaskRepository(db, log), log),
	}, guards, log)

	return &testServer{router: router, db: db, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}


