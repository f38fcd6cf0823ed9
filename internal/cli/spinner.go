package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// startSpinner animates message on w until the returned stop function is
// called or ctx ends. stop clears the line and may be called more than once.
func startSpinner(ctx context.Context, w io.Writer, message string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})
	dots := spinner.MiniDot

	go func() {
		defer close(exited)
		tick := time.NewTicker(dots.FPS)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(message)+4))
				return
			case <-tick.C:
				glyph := dots.Frames[frame%len(dots.Frames)]
				fmt.Fprintf(w, "\r%s %s", styleSpinner.Render(glyph), StyleDim.Render(message))
			}
		}
	}()

	return func() {
		cancel()
		<-exited
	}
}
