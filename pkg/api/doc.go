// Package api serves wallpapers over HTTP.
//
// # Endpoints
//
//	GET /wallpaper?width=393&height=852&data=8500,12000,9500&goal=10000&scale=3
//	GET /            same as /wallpaper when width, height and data are given,
//	                 otherwise a JSON usage document
//	GET /health      {"status":"ok","timestamp":"..."}
//
// width and height are in points and are multiplied by scale (default 3) to
// get pixels. format selects png (default) or pdf.
//
// Validation failures return 400 with a JSON body:
//
//	{"error":"Dimensions too large","message":"Width and height must be 5000 pixels or less"}
//
// Images are sent with no-cache headers so the phone always fetches today's
// wallpaper; server-side caching is configured separately (see pkg/cache).
//
// Every response carries an X-Request-ID header, taken from the request
// when present.
package api
