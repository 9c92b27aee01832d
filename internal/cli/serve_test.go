package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/plotgram/plotgram/pkg/cache"
)

// newTestServer builds a plot server backed by an in-process file cache.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	srv := &plotServer{store: store, keyer: cache.NewDefaultKeyer()}
	return srv.routes(charmlog.New(io.Discard))
}

func plotBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(plotRequest{Spec: testSpec, Data: testCSV})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(body)
}

func TestServeHealth(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request id")
	}
}

func TestServeRequestIDPassthrough(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-supplied")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "client-supplied" {
		t.Errorf("request id = %q, want passthrough", got)
	}
}

func TestServeBuild(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/plots/build", plotBody(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first build X-Cache = %q, want miss", got)
	}

	var out struct {
		Panels []json.RawMessage `json:"panels"`
		Layers []json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(out.Panels) != 1 || len(out.Layers) != 1 {
		t.Errorf("panels = %d layers = %d, want 1 and 1", len(out.Panels), len(out.Layers))
	}

	// Same inputs hit the cache on the second request.
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest(http.MethodPost, "/v1/plots/build", plotBody(t)))
	if got := rec2.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second build X-Cache = %q, want hit", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), rec2.Body.Bytes()) {
		t.Error("cached response should match the computed one")
	}
}

func TestServeRender(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/plots/render?width=400&height=300", plotBody(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, `width="400"`) {
		t.Errorf("body should be a 400px wide SVG, got %.80s", body)
	}
}

func TestServeBadRequests(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"NotJSON", "not json"},
		{"EmptySpec", `{"spec": "", "data": "x\n1\n"}`},
		{"UnknownGeom", `{"spec": "[mapping]\nx = \"v\"\n\n[[layer]]\ngeom = \"hexbin\"\n", "data": "v\n1\n"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/plots/build", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?width=640&bad=abc&neg=-5", nil)

	if got := queryFloat(req, "width", 720); got != 640 {
		t.Errorf("width = %v, want 640", got)
	}
	if got := queryFloat(req, "missing", 720); got != 720 {
		t.Errorf("missing param = %v, want fallback", got)
	}
	if got := queryFloat(req, "bad", 720); got != 720 {
		t.Errorf("unparseable param = %v, want fallback", got)
	}
	if got := queryFloat(req, "neg", 720); got != 720 {
		t.Errorf("non-positive param = %v, want fallback", got)
	}
}
