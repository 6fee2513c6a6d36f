// Package display launches the browser window that serves as the tool's
// user interface.
package display

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/skratchdot/open-golang/open"
)

const (
	readyTimeout  = 10 * time.Second
	readyInterval = 200 * time.Millisecond
)

// WaitReady polls the server's status endpoint until it answers or the
// timeout passes.
func WaitReady(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(baseURL + "/session/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server at %s not ready after %s", baseURL, timeout)
		}
		time.Sleep(readyInterval)
	}
}

// OpenWhenReady opens the control page in the default browser once the
// server answers. Failures only cost the convenience of the auto-opened
// window, so they are logged and swallowed.
func OpenWhenReady(baseURL string) {
	if err := WaitReady(baseURL, readyTimeout); err != nil {
		slog.Warn("not opening browser", "error", err)
		return
	}
	if err := open.Run(baseURL); err != nil {
		slog.Warn("unable to open browser", "url", baseURL, "error", err)
	}
}
