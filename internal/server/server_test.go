package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/fluidcard"
	"honnef.co/go/fluidcard/internal/framestore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*framestore.Store, http.Handler) {
	t.Helper()
	store, err := framestore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := NewServer("", fluidcard.DefaultConfig(), WithStore(store))
	return store, srv.Handler()
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestConfigEndpoint(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/config")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg fluidcard.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, fluidcard.DefaultConfig(), cfg)
}

func TestFrameJSON(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/frame?direction=expand&t=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		State   fluidcard.State  `json:"state"`
		Done    bool             `json:"done"`
		Layout  fluidcard.Layout `json:"layout"`
		Outline string           `json:"outline"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Done)
	assert.Equal(t, fluidcard.State{Phase: fluidcard.PhaseIdle, Expanded: true}, body.State)
	assert.Equal(t, 445.0, body.Layout.Overlay.Y1)
	assert.True(t, strings.HasPrefix(body.Outline, "M"))
}

func TestFrameMidTransition(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/frame?t=0.5&width=320")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Holes  []fluidcard.Hole `json:"holes"`
		Layout fluidcard.Layout `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Holes, 3)
	assert.Equal(t, 320.0, body.Layout.Top.X1)
}

func TestFrameSVG(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/frame?direction=collapse&t=0.5&format=svg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<svg"))
	assert.Contains(t, w.Body.String(), `fill-rule="evenodd"`)
}

func TestFramePNG(t *testing.T) {
	_, h := newTestServer(t)
	w := get(h, "/api/frame?t=0.3&format=png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 295, img.Bounds().Dx())
}

func TestFrameBadRequests(t *testing.T) {
	_, h := newTestServer(t)
	for _, target := range []string{
		"/api/frame?direction=sideways",
		"/api/frame?t=abc",
		"/api/frame?t=2",
		"/api/frame?width=-3",
		"/api/frame?width=wide",
		"/api/frame?format=gif",
	} {
		w := get(h, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestFrameRejectsOversizedWidth(t *testing.T) {
	_, h := newTestServer(t)
	for _, width := range []string{"1e300", "20000", "Inf", "NaN"} {
		for _, format := range []string{"json", "png"} {
			target := "/api/frame?t=0.5&format=" + format + "&width=" + width
			w := get(h, target)
			assert.Equal(t, http.StatusBadRequest, w.Code, target)
			assert.Contains(t, w.Body.String(), "width", target)
		}
	}

	w := get(h, "/api/frame?format=png&width=4096")
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 4096, img.Bounds().Dx())
}

func TestRecordings(t *testing.T) {
	store, h := newTestServer(t)

	w := get(h, "/api/recordings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recordings": []}`, w.Body.String())

	rec, err := store.Record(context.Background(), "api", fluidcard.DefaultConfig(), 0, fluidcard.Expand, 10)
	require.NoError(t, err)

	w = get(h, "/api/recordings")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recordings []framestore.Recording `json:"recordings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Recordings, 1)
	assert.Equal(t, rec.ID, list.Recordings[0].ID)

	w = get(h, "/api/recordings/"+rec.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	w = get(h, "/api/recordings/"+uuid.New().String())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(h, "/api/recordings/nope")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordingsWithoutStore(t *testing.T) {
	h := NewServer("", fluidcard.DefaultConfig()).Handler()
	w := get(h, "/api/recordings")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartStop(t *testing.T) {
	srv := NewServer("127.0.0.1:0", fluidcard.DefaultConfig())
	require.NoError(t, srv.Start())
	defer srv.Stop()

	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
