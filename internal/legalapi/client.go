package legalapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

var (
	// ErrNotFound is matched by errors.Is for 404 responses.
	ErrNotFound = errors.New("legalapi: not found")
	// ErrMissingBusinessID is returned before any request is made.
	ErrMissingBusinessID = errors.New("legalapi: business id is required")
)

// Error is a non-2xx response from the legal API.
type Error struct {
	Status int
	Path   string
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("legalapi: %s returned %d", e.Path, e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == fiber.StatusNotFound
}

// Recorder observes each upstream call. observability.Metrics satisfies it.
type Recorder interface {
	RecordUpstream(name string, status int, duration time.Duration)
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  logr.Logger
	Metrics Recorder
}

// Client is a thin wrapper over the legal entity REST API.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  logr.Logger
	metrics Recorder
}

// New builds a client. BaseURL must be absolute.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("legalapi: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		logger:  logger,
		metrics: cfg.Metrics,
	}, nil
}

type credentialsKey struct{}

// Credentials are the caller's values forwarded on every request.
type Credentials struct {
	Token     string
	AccountID string
}

// WithCredentials attaches the caller's credentials to ctx.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials attached by WithCredentials.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}

// GetBusiness returns the business record for businessID.
func (c *Client) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	var out struct {
		Business domain.Business `json:"business"`
	}
	if err := c.get(ctx, businessID, "", &out); err != nil {
		return nil, err
	}
	return &out.Business, nil
}

// GetAddresses returns the office addresses of businessID.
func (c *Client) GetAddresses(ctx context.Context, businessID string) (*domain.IncorporationAddress, error) {
	var out domain.IncorporationAddress
	if err := c.get(ctx, businessID, "addresses", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetResolutions returns the resolutions recorded for businessID.
func (c *Client) GetResolutions(ctx context.Context, businessID string) ([]domain.Resolution, error) {
	var out struct {
		Resolutions []domain.Resolution `json:"resolutions"`
	}
	if err := c.get(ctx, businessID, "resolutions", &out); err != nil {
		return nil, err
	}
	if out.Resolutions == nil {
		out.Resolutions = []domain.Resolution{}
	}
	return out.Resolutions, nil
}

type filingHeader struct {
	Name     string `json:"name"`
	FilingID int64  `json:"filingId,omitempty"`
	Status   string `json:"status,omitempty"`
}

type restorationFiling struct {
	Filing struct {
		Header      filingHeader `json:"header"`
		Business    filingRef    `json:"business"`
		Restoration struct {
			Type domain.RestorationType `json:"type"`
		} `json:"restoration"`
	} `json:"filing"`
}

type filingRef struct {
	Identifier string `json:"identifier"`
}

// CreateRestorationDraft saves a draft restoration filing and returns its id.
func (c *Client) CreateRestorationDraft(ctx context.Context, businessID string, kind domain.RestorationType) (int64, error) {
	if strings.TrimSpace(businessID) == "" {
		return 0, ErrMissingBusinessID
	}
	var body restorationFiling
	body.Filing.Header.Name = "restoration"
	body.Filing.Business.Identifier = businessID
	body.Filing.Restoration.Type = kind

	var out struct {
		Filing struct {
			Header filingHeader `json:"header"`
		} `json:"filing"`
	}
	path := "businesses/" + url.PathEscape(businessID) + "/filings?draft=true"
	if err := c.do(ctx, fiber.MethodPost, path, body, &out); err != nil {
		return 0, err
	}
	return out.Filing.Header.FilingID, nil
}

func (c *Client) get(ctx context.Context, businessID, resource string, out any) error {
	if strings.TrimSpace(businessID) == "" {
		return ErrMissingBusinessID
	}
	path := "businesses/" + url.PathEscape(businessID)
	if resource != "" {
		path += "/" + resource
	}
	return c.do(ctx, fiber.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + "/" + path)
	agent.Timeout(timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	creds, _ := CredentialsFrom(ctx)
	if creds.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+creds.Token)
	}
	if creds.AccountID != "" {
		agent.Set("Account-Id", creds.AccountID)
	}
	if c.apiKey != "" {
		agent.Set("x-apikey", c.apiKey)
	}
	if body != nil {
		agent.JSON(body)
	}

	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("legalapi: build request: %w", err)
	}

	start := time.Now()
	status, respBody, errs := agent.Bytes()
	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordUpstream("legal_api", status, elapsed)
	}
	if len(errs) > 0 {
		c.logger.Error(errors.Join(errs...), "legal api request failed", "method", method, "path", path)
		return fmt.Errorf("legalapi: %s %s: %w", method, path, errors.Join(errs...))
	}
	c.logger.V(1).Info("legal api request", "method", method, "path", path, "status", status, "elapsed", elapsed)

	if status < 200 || status > 299 {
		return &Error{Status: status, Path: path, Body: truncate(string(respBody), 512)}
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("legalapi: decode %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
