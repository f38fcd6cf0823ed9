package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerAnimatesUntilStopped(t *testing.T) {
	var buf syncBuffer
	stop := startSpinner(context.Background(), &buf, "Rendering 1179x2556 png")
	time.Sleep(300 * time.Millisecond)
	stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering 1179x2556 png") {
		t.Errorf("output %q should contain the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("stop should leave a cleared line, got %q", out)
	}

	n := len(buf.String())
	time.Sleep(200 * time.Millisecond)
	if len(buf.String()) != n {
		t.Error("spinner kept writing after stop")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf syncBuffer
	stop := startSpinner(ctx, &buf, "waiting")
	<-ctx.Done()

	done := make(chan struct{})
	go func() {
		stop()
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop blocked after the context ended")
	}
}
