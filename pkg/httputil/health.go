package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OK reports whether the server declared itself healthy.
func (s HealthStatus) OK() bool {
	return s.Status == "ok"
}

var healthBackoff = Backoff{Attempts: 3, Initial: 250 * time.Millisecond}

// CheckHealth fetches baseURL + "/health", retrying network errors and
// server errors up to three times.
func CheckHealth(ctx context.Context, client *http.Client, baseURL string) (HealthStatus, error) {
	if client == nil {
		client = http.DefaultClient
	}
	url := strings.TrimRight(baseURL, "/") + "/health"

	var status HealthStatus
	err := healthBackoff.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return Transient(err)
		}
		defer resp.Body.Close()

		if err := CheckStatus(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return fmt.Errorf("decode health response: %w", err)
		}
		return nil
	})
	if err != nil {
		return HealthStatus{}, fmt.Errorf("probe %s: %w", url, err)
	}
	return status, nil
}
