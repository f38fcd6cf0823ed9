package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/stepwall/pkg/buildinfo"
	"github.com/matzehuels/stepwall/pkg/errors"
	"github.com/matzehuels/stepwall/pkg/httputil"
	"github.com/matzehuels/stepwall/pkg/pipeline"
)

const exampleQuery = "/wallpaper?width=393&height=852&data=8500,12000,9500&goal=10000&scale=3"

// badRequest is the body of a 400 response.
type badRequest httputil.ErrorBody

// parseWallpaperQuery turns query parameters into pipeline options. Sizes
// are converted from points to pixels.
func (s *Server) parseWallpaperQuery(r *http.Request) (pipeline.Options, *badRequest) {
	q := r.URL.Query()
	width, height, data := q.Get("width"), q.Get("height"), q.Get("data")
	if width == "" || height == "" || data == "" {
		return pipeline.Options{}, &badRequest{
			Error:    "Missing required parameters",
			Required: []string{"width", "height", "data"},
			Example:  exampleQuery,
		}
	}

	scale := s.cfg.Server.DefaultScale
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || errors.ValidateScale(f) != nil {
			return pipeline.Options{}, &badRequest{
				Error:   "Invalid scale value",
				Message: "Scale must be a positive number",
			}
		}
		scale = f
	}

	wPt, okW := pipeline.ParseLeadingInt(width)
	hPt, okH := pipeline.ParseLeadingInt(height)
	if !okW || !okH {
		return pipeline.Options{}, &badRequest{
			Error:   "Invalid width or height values",
			Message: "Width and height must be valid integers",
		}
	}
	wPx, hPx := pipeline.PixelSize(wPt, scale), pipeline.PixelSize(hPt, scale)
	if wPx <= 0 || hPx <= 0 {
		return pipeline.Options{}, &badRequest{
			Error:   "Invalid dimensions",
			Message: "Width and height must be positive integers",
		}
	}
	if maxDim := s.cfg.Pipeline.MaxDimension; wPx > maxDim || hPx > maxDim {
		return pipeline.Options{}, &badRequest{
			Error:   "Dimensions too large",
			Message: fmt.Sprintf("Width and height must be %d pixels or less", maxDim),
		}
	}

	goal := s.cfg.Goal
	if v := q.Get("goal"); v != "" {
		g, ok := pipeline.ParseLeadingInt(v)
		if !ok || g <= 0 {
			return pipeline.Options{}, &badRequest{
				Error:   "Invalid goal value",
				Message: "Goal must be a positive integer",
			}
		}
		goal = g
	}

	format := s.cfg.Format
	if v := q.Get("format"); v != "" {
		if err := pipeline.ValidateFormat(v); err != nil {
			return pipeline.Options{}, &badRequest{
				Error:   "Invalid format",
				Message: errors.UserMessage(err),
			}
		}
		format = v
	}

	return pipeline.Options{
		Width:  wPx,
		Height: hPx,
		Record: pipeline.ParseDailyRecord(data),
		Goal:   goal,
		Format: format,
	}, nil
}

func (s *Server) handleWallpaper(w http.ResponseWriter, r *http.Request) {
	opts, bad := s.parseWallpaperQuery(r)
	if bad != nil {
		_ = httputil.WriteError(w, http.StatusBadRequest, httputil.ErrorBody(*bad))
		return
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeRunError(w, r, err)
		return
	}

	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_ = httputil.WriteBinary(w, res.ContentType, res.Artifact)
}

func (s *Server) writeRunError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsValidation(err) {
		_ = httputil.WriteError(w, http.StatusBadRequest, httputil.ErrorBody{
			Error:   "Invalid request",
			Message: errors.UserMessage(err),
			Code:    string(errors.GetCode(err)),
		})
		return
	}
	s.logger.Error("generate wallpaper", "err", err, "request_id", RequestID(r.Context()))
	_ = httputil.WriteError(w, http.StatusInternalServerError, httputil.ErrorBody{
		Error:   "Internal server error",
		Message: "Failed to generate wallpaper",
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("width") != "" && q.Get("height") != "" && q.Get("data") != "" {
		s.handleWallpaper(w, r)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, s.usage())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, httputil.HealthStatus{
		Status:    "ok",
		Timestamp: s.now().UTC(),
	})
}

// usage is the document served on GET / without parameters.
func (s *Server) usage() map[string]any {
	return map[string]any{
		"service":     buildinfo.ServiceName,
		"version":     buildinfo.Short(),
		"description": "Generates a grid visualization of your yearly step count",
		"usage": map[string]any{
			"endpoint": "/wallpaper",
			"method":   "GET",
			"parameters": map[string]string{
				"width":  "Screen width in points (required)",
				"height": "Screen height in points (required)",
				"data":   "Comma-separated step counts starting from Jan 1st (required)",
				"goal":   fmt.Sprintf("Step goal threshold (optional, defaults to %d)", s.cfg.Goal),
				"scale":  fmt.Sprintf("Device pixel ratio (optional, defaults to %g)", s.cfg.Server.DefaultScale),
				"format": "Output format, png or pdf (optional, defaults to " + s.cfg.Format + ")",
			},
			"example": exampleQuery,
			"note":    "Width/height are multiplied by scale to get actual pixel dimensions",
		},
		"visualization": map[string]string{
			"layout": "15 columns, rows left to right and top to bottom, last rows taper",
			"day1":   "Top-left cell",
			"day365": "Bottom row",
		},
		"legend": map[string]string{
			"white":        "Days where step goal was met",
			"red":          "Days where step goal was missed",
			"white_number": "Current day (today)",
			"dark_grey":    "Future days",
		},
	}
}
