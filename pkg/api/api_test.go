package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/config"
	"github.com/matzehuels/stepwall/pkg/httputil"
	"github.com/matzehuels/stepwall/pkg/pipeline"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg config.Config, c cache.Cache) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cfg.Pipeline, c, nil, logger)
	s := New(cfg, runner, logger)
	s.now = func() time.Time { return fixedNow }
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestWallpaperPNG(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/wallpaper?width=131&height=284&data=12000,8000,11000&goal=10000&scale=3")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	headers := map[string]string{
		"Content-Type":   "image/png",
		"Content-Length": strconv.Itoa(rec.Body.Len()),
		"Cache-Control":  "no-cache, no-store, must-revalidate",
		"Pragma":         "no-cache",
		"Expires":        "0",
	}
	for k, v := range headers {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 393 || b.Dy() != 852 {
		t.Errorf("image = %dx%d, want 393x852", b.Dx(), b.Dy())
	}
}

func TestWallpaperPDF(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/wallpaper?width=131&height=284&data=1,2&format=pdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestWallpaperDefaultScale(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/wallpaper?width=10&height=20&data=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 60 {
		t.Errorf("image = %dx%d, want 30x60", b.Dx(), b.Dy())
	}
}

func TestWallpaperLeadingIntegers(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)

	rec := get(t, s, "/wallpaper?width=10.7&height=20px&data=8500.5,12000&goal=10000steps&scale=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 60 {
		t.Errorf("image = %dx%d, want 30x60", b.Dx(), b.Dy())
	}
}

func TestWallpaperValidation(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	long := strings.TrimSuffix(strings.Repeat("1,", 400), ",")

	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"missing all", "", "Missing required parameters"},
		{"missing data", "width=10&height=10", "Missing required parameters"},
		{"non-numeric width", "width=abc&height=10&data=1", "Invalid width or height values"},
		{"no leading digits", "width=10&height=.5&data=1", "Invalid width or height values"},
		{"zero width", "width=0&height=10&data=1", "Invalid dimensions"},
		{"negative height", "width=10&height=-4&data=1", "Invalid dimensions"},
		{"too large", "width=2000&height=10&data=1", "Dimensions too large"},
		{"too large after scale", "width=1000&height=10&data=1&scale=6", "Dimensions too large"},
		{"huge scale", "width=393&height=852&data=1&scale=1e300", "Dimensions too large"},
		{"huge width", "width=99999999999999999999999&height=10&data=1", "Dimensions too large"},
		{"bad scale", "width=10&height=10&data=1&scale=abc", "Invalid scale value"},
		{"zero scale", "width=10&height=10&data=1&scale=0", "Invalid scale value"},
		{"bad goal", "width=10&height=10&data=1&goal=lots", "Invalid goal value"},
		{"negative goal", "width=10&height=10&data=1&goal=-5", "Invalid goal value"},
		{"bad format", "width=10&height=10&data=1&format=gif", "Invalid format"},
		{"too many days", "width=10&height=10&data=" + long, "Invalid request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/wallpaper?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestMissingParametersBody(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	body := decodeBody(t, get(t, s, "/wallpaper?width=10"))

	req, ok := body["required"].([]any)
	if !ok || len(req) != 3 || req[0] != "width" || req[1] != "height" || req[2] != "data" {
		t.Errorf("required = %v", body["required"])
	}
	if body["example"] != exampleQuery {
		t.Errorf("example = %v", body["example"])
	}
}

func TestTooLargeMessageUsesConfiguredMax(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.MaxDimension = 1000
	s := newTestServer(t, cfg, nil)
	body := decodeBody(t, get(t, s, "/wallpaper?width=400&height=10&data=1"))
	if body["message"] != "Width and height must be 1000 pixels or less" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestWallpaperInternalError(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.MaxDimension = 20000
	s := newTestServer(t, cfg, nil)

	// Passes dimension validation but exceeds the surface pixel budget.
	rec := get(t, s, "/wallpaper?width=10000&height=10000&data=1&scale=1")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (body %s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["error"] != "Internal server error" || body["message"] != "Failed to generate wallpaper" {
		t.Errorf("body = %v", body)
	}
}

func TestWallpaperCacheHeader(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, config.Default(), fc)
	const target = "/wallpaper?width=20&height=40&data=1,2,3"

	first := get(t, s, target)
	second := get(t, s, target)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached body differs")
	}
}

func TestRootUsage(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["service"] != "10K Steps Wallpaper Generator" {
		t.Errorf("service = %v", body["service"])
	}
	for _, key := range []string{"version", "description", "usage", "legend"} {
		if _, ok := body[key]; !ok {
			t.Errorf("usage document missing %q", key)
		}
	}
}

func TestRootRendersWithParameters(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/?width=10&height=20&data=1")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("status %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	// Partial parameters fall back to the usage document.
	rec = get(t, s, "/?width=10&height=20")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("partial params content type = %q", ct)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var status httputil.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.OK() || !status.Timestamp.Equal(fixedNow) {
		t.Errorf("health = %+v", status)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)

	rec := get(t, s, "/health")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request id %q is not a UUID", rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, config.Default(), nil)

	rec := get(t, s, "/nope")
	if rec.Code != http.StatusNotFound || decodeBody(t, rec)["error"] != "Not found" {
		t.Errorf("GET /nope = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health = %d, want 405", rec.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	s := newTestServer(t, config.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	status, err := httputil.CheckHealth(context.Background(), nil, "http://"+ln.Addr().String())
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !status.OK() {
		t.Errorf("status = %+v", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
