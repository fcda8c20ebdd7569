// Package agent implements the HTTP client for the assistant daemon's
// control API. The client caches status and log reads with a TTL, retries
// transport failures with exponential backoff, and degrades gracefully:
// reads fall back to stale or placeholder data instead of failing, while
// lifecycle actions (start/stop/poll) surface their errors to the caller.
package agent

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sidekick-io/sidekick/internal/config"
	"github.com/sidekick-io/sidekick/internal/models"
)

// Defaults applied when Options fields are zero.
const (
	DefaultCacheTTL   = 30 * time.Second
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 100 * time.Millisecond
)

// Options tunes Client behavior. Zero values fall back to the defaults.
type Options struct {
	CacheTTL   time.Duration
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	StatePath  string // where agent state is persisted; empty = ~/.sidekick/agent_state.json
}

// Client talks to the assistant daemon's HTTP API.
//
// The cache fields are plain mutable state with no synchronization; callers
// that need concurrent access should run each action on its own worker and
// accept last-write-wins on the cache (see the control package).
type Client struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration
	maxRetries int
	baseDelay  time.Duration
	statePath  string

	statusCache *cacheEntry[*models.Status]
	logsCache   *cacheEntry[[]models.LogEntry]

	closed bool
}

// New creates a client for the daemon API at baseURL.
func New(baseURL string, opts Options) *Client {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay == 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.StatePath == "" {
		if path, err := config.AgentStateFile(); err == nil {
			opts.StatePath = path
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		cacheTTL:   opts.CacheTTL,
		maxRetries: opts.MaxRetries,
		baseDelay:  opts.BaseDelay,
		statePath:  opts.StatePath,
	}
}

// NewFromSettings creates a client configured from the global settings.
// When no base URL is configured, the daemon's address is resolved from
// daemon.yaml.
func NewFromSettings(settings *models.Settings) (*Client, error) {
	baseURL := settings.Client.BaseURL
	if baseURL == "" {
		resolved, err := config.DaemonBaseURL()
		if err != nil {
			return nil, err
		}
		baseURL = resolved
	}

	return New(baseURL, Options{
		CacheTTL:   time.Duration(settings.Client.CacheTTLSeconds) * time.Second,
		Timeout:    time.Duration(settings.Client.TimeoutSeconds * float64(time.Second)),
		MaxRetries: settings.Client.MaxRetries,
	}), nil
}

// Status returns the current agent status. When useCache is true and a
// valid cached snapshot exists, it is returned without a network call.
//
// Status never fails: if the fetch errors out after retries, the last
// cached snapshot is returned even when expired, and if nothing was ever
// fetched a placeholder with AutonomyLevel "unknown" is synthesized.
func (c *Client) Status(useCache bool) *models.Status {
	if useCache && c.statusCache.valid(time.Now()) {
		return c.statusCache.value
	}

	var status models.Status
	if err := c.getJSON("/api/agent/status", nil, &status); err != nil {
		log.Printf("Status fetch failed: %v", err)
		if c.statusCache != nil {
			return c.statusCache.value
		}
		return models.NewUnknownStatus()
	}

	c.statusCache = newCacheEntry(&status, c.cacheTTL)
	return &status
}

// Logs returns recent agent log entries, newest first. A valid cached
// result is always preferred over a network call. On fetch failure Logs
// returns an empty slice rather than stale data; logs are supplementary
// and an expired list is worse than none.
func (c *Client) Logs(limit, hours int) []models.LogEntry {
	if c.logsCache.valid(time.Now()) {
		return c.logsCache.value
	}

	query := url.Values{
		"limit": {strconv.Itoa(limit)},
		"hours": {strconv.Itoa(hours)},
	}

	var response struct {
		Logs []models.LogEntry `json:"logs"`
	}
	if err := c.getJSON("/api/agent/logs", query, &response); err != nil {
		log.Printf("Logs fetch failed: %v", err)
		return []models.LogEntry{}
	}

	entries := response.Logs
	if entries == nil {
		entries = []models.LogEntry{}
	}
	c.logsCache = newCacheEntry(entries, c.cacheTTL)
	return entries
}

// Start asks the daemon to start the agent. An empty autonomyLevel omits
// the field so the daemon applies its default. On success both caches are
// invalidated and the returned status is persisted; failure after retries
// propagates so the caller can tell the user the agent did not start.
func (c *Client) Start(autonomyLevel string) (*models.Status, error) {
	body := map[string]any{}
	if autonomyLevel != "" {
		body["autonomy_level"] = autonomyLevel
	}

	var status models.Status
	if err := c.postJSON("/api/agent/start", body, &status); err != nil {
		log.Printf("Start agent failed: %v", err)
		return nil, fmt.Errorf("failed to start agent: %w", err)
	}

	c.invalidate()
	c.saveState(&status)
	return &status, nil
}

// Stop asks the daemon to stop the agent. Symmetric to Start.
func (c *Client) Stop() (*models.Status, error) {
	var status models.Status
	if err := c.postJSON("/api/agent/stop", nil, &status); err != nil {
		log.Printf("Stop agent failed: %v", err)
		return nil, fmt.Errorf("failed to stop agent: %w", err)
	}

	c.invalidate()
	c.saveState(&status)
	return &status, nil
}

// PollNow asks the daemon to run a poll cycle immediately. Both caches are
// invalidated so the next status or log read refetches.
func (c *Client) PollNow() (map[string]any, error) {
	var result map[string]any
	if err := c.postJSON("/api/agent/poll", nil, &result); err != nil {
		log.Printf("Poll trigger failed: %v", err)
		return nil, fmt.Errorf("failed to trigger poll: %w", err)
	}

	c.invalidate()
	return result, nil
}

// invalidate drops both caches, forcing the next read to refetch.
func (c *Client) invalidate() {
	c.statusCache = nil
	c.logsCache = nil
}

// Close releases the underlying HTTP connections. Safe to call more than
// once.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
	return nil
}
