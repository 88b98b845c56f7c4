package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedaZarei/WeddingSite/pkg/models"
)

type recordingStore struct {
	keys         []string
	contentTypes []string
	err          error
}

func (r *recordingStore) PutObject(_ context.Context, key string, _ []byte, contentType string) error {
	if r.err != nil {
		return r.err
	}
	r.keys = append(r.keys, key)
	r.contentTypes = append(r.contentTypes, contentType)
	return nil
}

func newMirrorService(t *testing.T) (*Service, *recordingStore, *httptest.Server) {
	t.Helper()
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/7.png", "/files/8.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("\x89PNG"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(cdn.Close)

	store := &recordingStore{}
	s := NewService(testConfig())
	s.ObjectStore = store
	s.HTTPClient = cdn.Client()
	s.Images = []models.ImageSource{
		{URL: cdn.URL + "/files/7.png", Key: "eucalyptus-branch-1.png"},
		{URL: cdn.URL + "/files/8.png", Key: "eucalyptus-branch-2.png"},
	}
	return s, store, cdn
}

func TestMirror_Preflight(t *testing.T) {
	s, _, _ := newMirrorService(t)
	rec := do(t, s, http.MethodOptions, "/api/upload-eucalyptus", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestMirror_MethodNotAllowed(t *testing.T) {
	s, store, _ := newMirrorService(t)
	rec := do(t, s, http.MethodGet, "/api/upload-eucalyptus", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeError(t, rec))
	assert.Empty(t, store.keys)
}

func TestMirror_UploadsAndReturnsURLs(t *testing.T) {
	s, store, _ := newMirrorService(t)
	rec := do(t, s, http.MethodPost, "/api/upload-eucalyptus", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body mirrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []models.MirroredImage{
		{Key: "eucalyptus-branch-1.png", URL: "https://cdn.poehali.dev/projects/AKID/bucket/eucalyptus-branch-1.png"},
		{Key: "eucalyptus-branch-2.png", URL: "https://cdn.poehali.dev/projects/AKID/bucket/eucalyptus-branch-2.png"},
	}, body.Images)
	assert.Equal(t, []string{"eucalyptus-branch-1.png", "eucalyptus-branch-2.png"}, store.keys)
	assert.Equal(t, []string{"image/png", "image/png"}, store.contentTypes)
}

func TestMirror_FirstSourceMissingUploadsNothing(t *testing.T) {
	s, store, cdn := newMirrorService(t)
	s.Images[0].URL = cdn.URL + "/files/gone.png"

	rec := do(t, s, http.MethodPost, "/api/upload-eucalyptus", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeError(t, rec), "404")
	assert.Empty(t, store.keys)
}

func TestMirror_StorageErrorMessagePassedThrough(t *testing.T) {
	s, store, _ := newMirrorService(t)
	store.err = errors.New("failed to upload eucalyptus-branch-1.png to Minio: Access Denied.")

	rec := do(t, s, http.MethodPost, "/api/upload-eucalyptus", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to upload eucalyptus-branch-1.png to Minio: Access Denied.", decodeError(t, rec))
}

func TestMirror_MissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.AccessKey = ""
	s := NewService(cfg)
	require.NoError(t, s.Connect(context.Background()))

	rec := do(t, s, http.MethodPost, "/api/upload-eucalyptus", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeError(t, rec), "storage credentials missing")
}
