package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	swerrors "github.com/matzehuels/stepwall/pkg/errors"
)

var errFlaky = errors.New("connection refused")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get = %q, %v; want nil, false", data, hit)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "image:a", []byte("\x89PNG"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "image:a")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "\x89PNG" {
		t.Errorf("Get = %q, want %q", data, "\x89PNG")
	}

	if err := c.Delete(ctx, "image:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "image:a"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "image:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ImageKeyOpts{Width: 1179, Height: 2556, Format: "png", Goal: 10000, Record: []int{1, 2, 3}, Style: "s"}

	key := k.ImageKey(base)
	if !strings.HasPrefix(key, "image:") {
		t.Errorf("ImageKey = %q, want image: prefix", key)
	}
	if key != k.ImageKey(base) {
		t.Error("ImageKey should be deterministic")
	}

	tests := []struct {
		name   string
		mutate func(*ImageKeyOpts)
	}{
		{"width", func(o *ImageKeyOpts) { o.Width++ }},
		{"height", func(o *ImageKeyOpts) { o.Height++ }},
		{"format", func(o *ImageKeyOpts) { o.Format = "pdf" }},
		{"goal", func(o *ImageKeyOpts) { o.Goal = 8000 }},
		{"record value", func(o *ImageKeyOpts) { o.Record = []int{1, 2, 4} }},
		{"record length", func(o *ImageKeyOpts) { o.Record = []int{1, 2, 3, 0} }},
		{"record split", func(o *ImageKeyOpts) { o.Record = []int{12, 3} }},
		{"style", func(o *ImageKeyOpts) { o.Style = "t" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			if k.ImageKey(opts) == key {
				t.Errorf("changing %s did not change the key", tt.name)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := ImageKeyOpts{Width: 10, Height: 10, Format: "png"}
	scoped := NewScopedKeyer(NewDefaultKeyer(), "stepwall:")
	want := "stepwall:" + NewDefaultKeyer().ImageKey(opts)
	if got := scoped.ImageKey(opts); got != want {
		t.Errorf("ImageKey = %q, want %q", got, want)
	}

	// nil inner falls back to DefaultKeyer
	if got := NewScopedKeyer(nil, "stepwall:").ImageKey(opts); got != want {
		t.Errorf("nil inner: ImageKey = %q, want %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"empty", Options{}, false},
		{"none", Options{Backend: BackendNone}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, false},
		{"file without dir", Options{Backend: BackendFile}, true},
		{"redis without addr", Options{Backend: BackendRedis}, true},
		{"mongo without uri", Options{Backend: BackendMongo}, true},
		{"unknown", Options{Backend: "memcached"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestPingUntilUp(t *testing.T) {
	old := pingBackoff
	pingBackoff = time.Millisecond
	defer func() { pingBackoff = old }()

	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{"up at once", 0, 1, false},
		{"second try", 1, 2, false},
		{"last try", 2, 3, false},
		{"down", 5, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := pingUntilUp(context.Background(), "test", time.Second, func(ctx context.Context) error {
				calls++
				if _, ok := ctx.Deadline(); !ok {
					t.Error("ping should run with a deadline")
				}
				if calls <= tt.failures {
					return errFlaky
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != nil {
				if !swerrors.Is(err, swerrors.ErrCodeCacheUnavailable) {
					t.Errorf("code = %q, want CACHE_UNAVAILABLE", swerrors.GetCode(err))
				}
				if !errors.Is(err, errFlaky) {
					t.Error("the last ping error should be kept as the cause")
				}
			}
		})
	}
}

func TestPingUntilUpCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pingUntilUp(ctx, "test", time.Second, func(context.Context) error {
		return errFlaky
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
