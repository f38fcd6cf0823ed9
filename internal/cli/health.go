package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwall/pkg/httputil"
)

// healthCommand creates the health command, which probes a running service.
func (c *CLI) healthCommand() *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a stepwall service is up",
		Long: `Check that a stepwall service answers GET /health.

Without --url the service is assumed to run locally on the configured port.
The exit status is non-zero when the service is unreachable or unhealthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				url = localURL(cfg.Server.Addr)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, err := httputil.CheckHealth(ctx, &http.Client{Timeout: timeout}, url)
			if err != nil {
				printError("%s is unreachable", url)
				return err
			}
			if !status.OK() {
				printError("%s reports %q", url, status.Status)
				return fmt.Errorf("service unhealthy: %s", status.Status)
			}
			printSuccess("%s is healthy", url)
			printKeyValue("timestamp", status.Timestamp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "base URL of the service (default from config)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "overall probe timeout")
	return cmd
}

// localURL turns a listen address into a URL reachable from this host.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
