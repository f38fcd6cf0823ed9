package pipeline

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/grid"
	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/errors"
)

// Request is the input of Generate.
type Request struct {
	Width  int
	Height int
	Record []int
	Goal   int
}

// GenerateImage renders a PNG wallpaper with the default configuration.
// Dimensions must be positive and at most DefaultMaxDimension, and goal must
// be positive. Unlike Options, a zero goal is not replaced by DefaultGoal.
func GenerateImage(width, height int, record []int, goal int) ([]byte, error) {
	if err := errors.ValidateGoal(goal); err != nil {
		return nil, err
	}
	runner := NewRunner(DefaultConfig(), nil, nil, log.New(io.Discard))
	res, err := runner.Execute(context.Background(), Options{
		Width:  width,
		Height: height,
		Record: record,
		Goal:   goal,
		Format: DefaultFormat,
	})
	if err != nil {
		return nil, err
	}
	return res.Artifact, nil
}

// Generate renders req onto a surface created by newSurface. It performs no
// validation beyond what the surface itself enforces.
func Generate(cfg Config, newSurface render.SurfaceFactory, req Request) ([]byte, error) {
	return render.Render(newSurface, req.Width, req.Height, Frame(cfg, req), cfg.Style)
}

// Frame lays out and classifies req.
func Frame(cfg Config, req Request) render.Frame {
	return render.Frame{
		Layout: grid.Compute(cfg.Grid, float64(req.Width), float64(req.Height)),
		States: classify.Classify(req.Record, req.Goal),
		Record: req.Record,
		Goal:   req.Goal,
	}
}
