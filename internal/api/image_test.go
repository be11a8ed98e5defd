package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyllc/recipe-manager/backend/internal/testhelpers"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func uploadRequest(t *testing.T, path, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRecipeImage(t *testing.T) {
	srv := setupTestRouter(t, Guards{}, true)

	w := srv.do(t, http.MethodPost, "/recipes", testhelpers.TeaRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[types.RecipeView](t, w)
	path := "/recipes/" + created.ID.String() + "/image"

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, path, "image", pngHeader))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	view := decode[types.RecipeView](t, w)
	assert.True(t, strings.HasPrefix(view.ImageURL, "https://bucket.example/recipes/"+created.ID.String()+"/"))
	assert.Len(t, srv.store.objects, 1)

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, path, "photo", pngHeader))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, path, "image", []byte("just some text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, "/recipes/"+uuid.NewString()+"/image", "image", pngHeader))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadRecipeImageWithoutStorage(t *testing.T) {
	srv := setupTestRouter(t, Guards{}, false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, "/recipes/"+uuid.NewString()+"/image", "image", pngHeader))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
