// Package registry is the REST client for the IRR registry's AS-SET
// endpoints. It speaks the structured markup payload of the asset package
// and treats any HTTP status in [200,300) as success.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/186526/arin-irr-syncer/internal/asset"
	"github.com/186526/arin-irr-syncer/internal/ctxlog"
)

// Actions the client knows path templates for. Templates may contain {name}.
const (
	ActionGet    = "get"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// defaultPaths cover a Reg-RWS style API; individual actions are overridable
// through Config.Paths for registries with different layouts.
var defaultPaths = map[string]string{
	ActionGet:    "/irr/as-set/{name}",
	ActionCreate: "/irr/as-set",
	ActionUpdate: "/irr/as-set/{name}",
	ActionDelete: "/irr/as-set/{name}",
}

// Config holds everything needed to reach one registry instance.
type Config struct {
	// BaseURL is the API root, e.g. "https://reg.example.net/rest".
	BaseURL string
	// APIKey is sent as the apikey query parameter on every request.
	APIKey string
	// Timeout bounds each HTTP request. Zero means no client-side bound.
	Timeout time.Duration
	// Paths overrides the default per-action path templates.
	Paths map[string]string
}

// Client issues authenticated requests against the registry API.
type Client struct {
	http  *resty.Client
	paths map[string]string
}

// New builds a registry client. Callers own the returned client and should
// Close it when done.
func New(cfg Config) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/xml").
		SetHeader("Accept", "application/xml")
	if cfg.APIKey != "" {
		http.SetQueryParam("apikey", cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}

	paths := make(map[string]string, len(defaultPaths))
	for action, path := range defaultPaths {
		paths[action] = path
	}
	for action, path := range cfg.Paths {
		paths[action] = path
	}
	return &Client{http: http, paths: paths}
}

// Close releases the underlying HTTP resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// StatusError reports a registry response outside the [200,300) range.
type StatusError struct {
	Action string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("registry %s failed with status %d", e.Action, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Get fetches one AS-SET object by name.
func (c *Client) Get(ctx context.Context, name string) (*asset.ASSet, error) {
	res, err := c.request(ctx, name).Get(c.paths[ActionGet])
	if err != nil {
		return nil, fmt.Errorf("registry get %s: %w", name, err)
	}
	if err := checkStatus(ActionGet, res); err != nil {
		return nil, err
	}
	set, err := asset.DecodeXML(res.Bytes())
	if err != nil {
		return nil, fmt.Errorf("registry get %s: %w", name, err)
	}
	return set, nil
}

// Create registers a new AS-SET object.
func (c *Client) Create(ctx context.Context, set *asset.ASSet) error {
	return c.send(ctx, ActionCreate, set)
}

// Update replaces an existing AS-SET object.
func (c *Client) Update(ctx context.Context, set *asset.ASSet) error {
	return c.send(ctx, ActionUpdate, set)
}

// Delete removes one AS-SET object by name.
func (c *Client) Delete(ctx context.Context, name string) error {
	res, err := c.request(ctx, name).Delete(c.paths[ActionDelete])
	if err != nil {
		return fmt.Errorf("registry delete %s: %w", name, err)
	}
	return checkStatus(ActionDelete, res)
}

func (c *Client) send(ctx context.Context, action string, set *asset.ASSet) error {
	payload, err := asset.EncodeXML(set)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Sending as-set to registry.", "action", action, "name", set.Name)

	req := c.request(ctx, set.Name).SetBody(payload)
	var res *resty.Response
	switch action {
	case ActionCreate:
		res, err = req.Post(c.paths[ActionCreate])
	default:
		res, err = req.Put(c.paths[ActionUpdate])
	}
	if err != nil {
		return fmt.Errorf("registry %s %s: %w", action, set.Name, err)
	}
	return checkStatus(action, res)
}

func (c *Client) request(ctx context.Context, name string) *resty.Request {
	return c.http.R().SetContext(ctx).SetPathParam("name", name)
}

func checkStatus(action string, res *resty.Response) error {
	if code := res.StatusCode(); code < 200 || code >= 300 {
		return &StatusError{Action: action, Status: code, Body: strings.TrimSpace(res.String())}
	}
	return nil
}
