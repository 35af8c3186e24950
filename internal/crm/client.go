package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrorKind classifies how an upstream call went wrong.
type ErrorKind string

const (
	// KindTransport covers network/connection failures before any
	// response was read.
	KindTransport ErrorKind = "transport"
	// KindRejected covers non-2xx upstream responses.
	KindRejected ErrorKind = "rejected"
	// KindParse covers 2xx responses whose body is not valid JSON.
	KindParse ErrorKind = "parse"
)

// Error is a classified upstream failure. Handlers decide per route
// whether to surface it or collapse it into an empty result.
type Error struct {
	Kind   ErrorKind
	Status int
	URL    string
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRejected:
		return fmt.Sprintf("crelate: %s returned %d: %s", e.URL, e.Status, e.Body)
	case KindParse:
		return fmt.Sprintf("crelate: failed to parse response from %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("crelate: request to %s failed: %v", e.URL, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Client talks to the Crelate API. Every call is a single attempt;
// retrying is the caller's problem (and nobody's, per policy).
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client with the given credential and base URL.
// A zero timeout leaves the transport default in place.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch issues an authenticated GET against {base}/{path} and decodes
// the standard Data/Metadata envelope. The api_key credential travels
// as a query parameter on reads.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		observe(path, "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(path, "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(path, "rejected")
		return nil, &Error{Kind: KindRejected, Status: resp.StatusCode, URL: reqURL, Body: string(body)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		observe(path, "parse_error")
		return nil, &Error{Kind: KindParse, Status: resp.StatusCode, URL: reqURL, Body: string(body), Err: err}
	}
	observe(path, "ok")
	return &env, nil
}

// ListContacts fetches one page of contact records.
func (c *Client) ListContacts(ctx context.Context, params url.Values) ([]Contact, error) {
	env, err := c.Fetch(ctx, "contacts", params)
	if err != nil {
		return nil, err
	}
	var contacts []Contact
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &contacts); err != nil {
			return nil, &Error{Kind: KindParse, URL: c.BaseURL + "/contacts", Body: string(env.Data), Err: err}
		}
	}
	return contacts, nil
}

// ListJobs fetches one page of job records.
func (c *Client) ListJobs(ctx context.Context, params url.Values) ([]Job, error) {
	env, err := c.Fetch(ctx, "jobs", params)
	if err != nil {
		return nil, err
	}
	var jobs []Job
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &jobs); err != nil {
			return nil, &Error{Kind: KindParse, URL: c.BaseURL + "/jobs", Body: string(env.Data), Err: err}
		}
	}
	return jobs, nil
}

// Artifacts lists the artifacts attached to an entity. Unlike reads on
// record collections, this endpoint authenticates via header.
func (c *Client) Artifacts(ctx context.Context, entityID string) (*Envelope, error) {
	reqURL := fmt.Sprintf("%s/entities/%s/artifacts", c.BaseURL, url.PathEscape(entityID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	req.Header.Set("X-Api-Key", c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		observe("artifacts", "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe("artifacts", "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe("artifacts", "rejected")
		return nil, &Error{Kind: KindRejected, Status: resp.StatusCode, URL: reqURL, Body: string(body)}
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		observe("artifacts", "parse_error")
		return nil, &Error{Kind: KindParse, Status: resp.StatusCode, URL: reqURL, Body: string(body), Err: err}
	}
	observe("artifacts", "ok")
	return &env, nil
}

// CreateActivity posts an activity payload to {base}/activities and
// returns the raw upstream response body on success.
func (c *Client) CreateActivity(ctx context.Context, payload any) (json.RawMessage, error) {
	reqURL := c.BaseURL + "/activities"

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal activity payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(buf))
	if err != nil {
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		observe("activities", "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observe("activities", "transport_error")
		return nil, &Error{Kind: KindTransport, URL: reqURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe("activities", "rejected")
		return nil, &Error{Kind: KindRejected, Status: resp.StatusCode, URL: reqURL, Body: string(body)}
	}
	if !json.Valid(body) {
		observe("activities", "parse_error")
		return nil, &Error{Kind: KindParse, Status: resp.StatusCode, URL: reqURL, Body: string(body)}
	}
	observe("activities", "ok")
	return json.RawMessage(body), nil
}
