package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/felixgeelhaar/codelearn/internal/config"
)

// client talks to the daemon's JSON API
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// daemonAddr derives the daemon URL from the local config
func daemonAddr() string {
	cfg, err := config.LoadLocalConfig()
	if err != nil {
		cfg = config.DefaultLocalConfig()
	}
	config.ApplyEnv(cfg)
	return fmt.Sprintf("http://%s:%d", cfg.Daemon.Bind, cfg.Daemon.Port)
}

// apiError is the daemon's error body
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Status  int    `json:"status"`
}

// get decodes the JSON response for path into out. Non-2xx responses are
// returned as errors carrying the daemon's message.
func (c *client) get(path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
		}
		if apiErr.Details != "" {
			return fmt.Errorf("%s: %s", apiErr.Error, apiErr.Details)
		}
		return fmt.Errorf("%s", apiErr.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// healthy reports whether the daemon answers its health check
func (c *client) healthy() bool {
	resp, err := c.http.Get(c.baseURL + "/v1/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// requireDaemon returns a client for a running daemon
func requireDaemon() (*client, error) {
	c := newClient(daemonAddr())
	if !c.healthy() {
		return nil, fmt.Errorf("daemon not running (run 'codelearn start' first)")
	}
	return c, nil
}
