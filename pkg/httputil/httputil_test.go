package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	errDown := errors.New("down")

	tests := []struct {
		name      string
		attempts  int
		failures  int
		transient bool
		wantCalls int
		wantErr   bool
	}{
		{"first try", 3, 0, true, 1, false},
		{"recovers", 3, 2, true, 3, false},
		{"gives up", 3, 5, true, 3, true},
		{"permanent error", 3, 5, false, 1, true},
		{"zero attempts still calls once", 0, 5, true, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			b := Backoff{Attempts: tt.attempts, Initial: time.Millisecond}
			err := b.Do(context.Background(), func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.transient {
					return Transient(errDown)
				}
				return errDown
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != nil && !errors.Is(err, errDown) {
				t.Errorf("err = %v, want it to wrap the failure", err)
			}
		})
	}
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Backoff{Attempts: 3, Initial: time.Hour}
	err := b.Do(ctx, func() error { return Transient(errors.New("down")) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTransientNil(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should be nil")
	}
	if IsTransient(errors.New("x")) {
		t.Error("an unmarked error is not transient")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code          int
		wantErr       bool
		wantTransient bool
	}{
		{200, false, false},
		{204, false, false},
		{400, true, false},
		{404, true, false},
		{429, true, true},
		{500, true, true},
		{503, true, true},
	}
	for _, tt := range tests {
		err := CheckStatus(&http.Response{StatusCode: tt.code, Status: http.StatusText(tt.code)})
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckStatus(%d) = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
		if IsTransient(err) != tt.wantTransient {
			t.Errorf("CheckStatus(%d) transient = %v, want %v", tt.code, IsTransient(err), tt.wantTransient)
		}
		var se *StatusError
		if tt.wantErr && (!errors.As(err, &se) || se.StatusCode != tt.code) {
			t.Errorf("CheckStatus(%d) does not carry a StatusError", tt.code)
		}
	}
}

func TestWriteBinary(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteBinary(rec, "image/png", []byte("abcd")); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"Content-Type":   "image/png",
		"Content-Length": "4",
		"Cache-Control":  "no-cache, no-store, must-revalidate",
		"Pragma":         "no-cache",
		"Expires":        "0",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "abcd" {
		t.Errorf("response = %d %q", rec.Code, rec.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteError(rec, http.StatusBadRequest, ErrorBody{
		Error:    "Missing required parameters",
		Required: []string{"width", "height", "data"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Missing required parameters" {
		t.Errorf("error = %v", body["error"])
	}
	if _, ok := body["message"]; ok {
		t.Error("empty message should be omitted")
	}
	if req, ok := body["required"].([]any); !ok || len(req) != 3 {
		t.Errorf("required = %v", body["required"])
	}
}

func TestCheckHealth(t *testing.T) {
	old := healthBackoff
	healthBackoff.Initial = time.Millisecond
	defer func() { healthBackoff = old }()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		WriteJSON(w, http.StatusOK, HealthStatus{Status: "ok", Timestamp: time.Now()})
	}))
	defer srv.Close()

	status, err := CheckHealth(context.Background(), srv.Client(), srv.URL+"/")
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if !status.OK() {
		t.Errorf("status = %+v", status)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls.Load())
	}
}

func TestCheckHealthNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := CheckHealth(context.Background(), srv.Client(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("err = %v, want 404 StatusError", err)
	}
}
