package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

// StatusError is returned when the daemon answers with a non-2xx status.
// It is terminal for the retry loop; only transport-level failures
// (connection refused, timeout) are retried.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) getJSON(path string, query url.Values, out any) error {
	return c.doJSON(http.MethodGet, path, query, nil, out)
}

func (c *Client) postJSON(path string, body, out any) error {
	return c.doJSON(http.MethodPost, path, nil, body, out)
}

// doJSON performs one API call with the retry protocol: up to maxRetries
// attempts, waiting baseDelay * 2^i between attempt i and i+1.
func (c *Client) doJSON(method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}

	attempt := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequest(method, endpoint, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err // transport failure, retried
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return backoff.Permanent(&StatusError{
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(data)),
			})
		}

		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to parse response: %w", err))
			}
		}
		return nil
	}

	return backoff.Retry(attempt, c.newBackOff())
}

// newBackOff builds the retry schedule: exponential with ratio 2 from
// baseDelay, no jitter, bounded by attempt count rather than elapsed time.
func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(c.maxRetries-1))
}
