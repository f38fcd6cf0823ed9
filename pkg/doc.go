// Package pkg provides the core libraries for Stepwall, a yearly step-count
// wallpaper generator.
//
// # Overview
//
// Stepwall turns a list of daily step counts into an image: one circle per
// day of the year, white where the goal was met, red where it was missed,
// grey for days still to come, and today's day number in place of its
// circle. The pkg directory is organized into three areas:
//
//  1. [core] - Domain logic (grid geometry, day classification, drawing)
//  2. [pipeline] - Orchestration (validate → layout → render → cache)
//  3. Infrastructure ([cache], [config], [api], [observability])
//
// # Architecture
//
// The data flow for one wallpaper:
//
//	width, height, daily record, goal
//	         ↓
//	    [core/grid] package (one position per day)
//	         ↓
//	    [core/classify] package (one state per day + summary stats)
//	         ↓
//	    [core/render] package (draw onto a Surface)
//	         ↓
//	    [core/render/sink] package (PNG or PDF bytes)
//
// # Quick Start
//
//	png, err := pipeline.GenerateImage(1179, 2556, []int{8500, 12000, 9500}, 10000)
//
// With caching and a non-default configuration:
//
//	store, _ := cache.Open(ctx, cfg.CacheOptions())
//	runner := pipeline.NewRunner(cfg.Pipeline, store, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Width:  1179,
//	    Height: 2556,
//	    Record: record,
//	    Format: "pdf",
//	})
//
// # Main Packages
//
// [core/grid] - Tapered 15x25 grid layout. Pure geometry, no I/O.
//
// [core/classify] - Maps the record to Met, Missed, Today and Future states,
// and computes days left and the hit percentage.
//
// [core/render] - Draws a frame onto the [core/render.Surface] abstraction.
// [core/render/sink] provides PNG (fogleman/gg) and PDF (go-pdf/fpdf)
// surfaces.
//
// [pipeline] - Validation, defaults and the cached [pipeline.Runner] shared
// by CLI and API.
//
// [cache] - Image cache with null, file, Redis and MongoDB backends.
//
// [config] - TOML configuration with XDG paths and PORT override.
//
// [api] - HTTP service: GET /wallpaper, GET /health and a usage document.
//
// [errors] - Coded errors with user-facing messages and HTTP status mapping.
//
// [observability] - Hooks for layout, render, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB backends
//
// [core]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core
// [core/grid]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core/grid
// [core/classify]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core/classify
// [core/render]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core/render
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core/render/sink
// [core/render.Surface]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/core/render#Surface
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stepwall/pkg/observability
package pkg
