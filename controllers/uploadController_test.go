package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func uploadRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/receipt", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newUploadRouter(dir string, maxBytes int64) *gin.Engine {
	uc := NewUploadController(dir, maxBytes, zap.NewNop())
	r := gin.New()
	r.POST("/api/uploads/receipt", uc.UploadReceipt())
	return r
}

func TestUploadReceipt(t *testing.T) {
	dir := t.TempDir()
	r := newUploadRouter(dir, 1<<20)

	w := serve(r, uploadRequest(t, "receipt", "transfer.png", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	url := decode[map[string]string](t, w)["url"]
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, saved)
}

func TestUploadReceipt_Rejections(t *testing.T) {
	dir := t.TempDir()

	w := serve(newUploadRouter(dir, 1<<20), uploadRequest(t, "receipt", "notes.txt", []byte("just some text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(newUploadRouter(dir, 1<<20), uploadRequest(t, "file", "transfer.png", pngHeader))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(newUploadRouter(dir, 8), uploadRequest(t, "receipt", "transfer.png", pngHeader))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
