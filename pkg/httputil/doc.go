// Package httputil provides the HTTP plumbing shared by the API server and
// the CLI.
//
// # Responses
//
// [WriteJSON] and [WriteError] write JSON bodies; [WriteBinary] writes a
// rendered image with the headers phones need to always fetch a fresh
// wallpaper:
//
//	Cache-Control: no-cache, no-store, must-revalidate
//	Pragma: no-cache
//	Expires: 0
//
// # Health probes
//
// [CheckHealth] queries a running server's /health endpoint. Network errors,
// 429 and 5xx responses are retried by a [Backoff]; other failures, such as
// a 404 from something that is not stepwall, end the probe at once.
//
//	status, err := httputil.CheckHealth(ctx, http.DefaultClient, "http://localhost:3000")
package httputil
