package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/streamforge/schemacore/v1/schema"
)

const contentType = "application/vnd.schemaregistry.v1+json"

// Client is the default implementation of Registry that communicates
// with a Confluent-compatible schema registry over HTTP.
type Client struct {
	url        string
	httpClient *http.Client

	// Authentication
	username string
	password string

	logger   Logger
	tracer   trace.Tracer
	observer *Observer

	// fetch collapses concurrent GetSchemaByID calls for the same ID
	// into one HTTP request.
	fetch singleflight.Group

	// mu guards both caches. Schemas are cached by ID, IDs by
	// subject and fingerprint; both are immutable once stored.
	mu          sync.RWMutex
	schemaCache map[int]*schema.ParsedTypedSchema
	idCache     map[string]int
}

var _ Registry = (*Client)(nil)

// NewClient creates a new schema registry client.
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, ErrMissingURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url: config.URL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		username:    config.Username,
		password:    config.Password,
		logger:      config.Logger,
		tracer:      otel.Tracer("schemacore/registry"),
		schemaCache: make(map[int]*schema.ParsedTypedSchema),
		idCache:     make(map[string]int),
	}, nil
}

// WithObserver attaches a metrics observer to the client. Returns the
// client for chaining during setup.
func (c *Client) WithObserver(o *Observer) *Client {
	c.observer = o
	return c
}

// GetSchemaByID retrieves a schema from the registry by its ID.
// Results are cached forever: registry IDs are immutable, a given ID
// always resolves to the same schema text.
func (c *Client) GetSchemaByID(ctx context.Context, id int) (*schema.ParsedTypedSchema, error) {
	c.mu.RLock()
	if s, ok := c.schemaCache[id]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	ctx, span := c.tracer.Start(ctx, "registry.GetSchemaByID",
		trace.WithAttributes(attribute.Int("schema.id", id)))
	defer span.End()

	start := time.Now()
	result, err, _ := c.fetch.Do(strconv.Itoa(id), func() (interface{}, error) {
		var stored struct {
			Schema     string `json:"schema"`
			SchemaType string `json:"schemaType"`
		}
		reqURL := fmt.Sprintf("%s/schemas/ids/%d", c.url, id)
		if err := c.do(ctx, http.MethodGet, reqURL, nil, &stored); err != nil {
			return nil, err
		}

		parsed, err := parseStored(stored.SchemaType, stored.Schema)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.schemaCache[id] = parsed
		c.mu.Unlock()
		return parsed, nil
	})
	c.observe(ctx, span, "get_schema_by_id", start, err)
	if err != nil {
		return nil, err
	}

	return result.(*schema.ParsedTypedSchema), nil
}

// GetLatestVersion retrieves the latest version registered under a subject.
func (c *Client) GetLatestVersion(ctx context.Context, subject string) (*Version, error) {
	ctx, span := c.tracer.Start(ctx, "registry.GetLatestVersion",
		trace.WithAttributes(attribute.String("schema.subject", subject)))
	defer span.End()

	var metadata struct {
		Subject    string `json:"subject"`
		ID         int    `json:"id"`
		Version    int    `json:"version"`
		Schema     string `json:"schema"`
		SchemaType string `json:"schemaType"`
	}

	start := time.Now()
	reqURL := fmt.Sprintf("%s/subjects/%s/versions/latest", c.url, url.PathEscape(subject))
	err := c.do(ctx, http.MethodGet, reqURL, nil, &metadata)
	if err == nil {
		var parsed *schema.ParsedTypedSchema
		parsed, err = parseStored(metadata.SchemaType, metadata.Schema)
		if err == nil {
			c.mu.Lock()
			c.schemaCache[metadata.ID] = parsed
			c.mu.Unlock()

			c.observe(ctx, span, "get_latest_version", start, nil)
			return &Version{
				Subject: subject,
				Version: metadata.Version,
				ID:      metadata.ID,
				Schema:  parsed,
			}, nil
		}
	}
	c.observe(ctx, span, "get_latest_version", start, err)
	return nil, err
}

// RegisterSchema registers a validated schema under a subject and
// returns the assigned registry ID. The ID is cached by subject and
// schema fingerprint, so re-registering the same schema text under the
// same subject does not hit the network.
func (c *Client) RegisterSchema(ctx context.Context, subject string, s *schema.ValidatedTypedSchema) (int, error) {
	cacheKey := subject + ":" + s.Fingerprint()
	c.mu.RLock()
	if id, ok := c.idCache[cacheKey]; ok {
		c.mu.RUnlock()
		return id, nil
	}
	c.mu.RUnlock()

	ctx, span := c.tracer.Start(ctx, "registry.RegisterSchema",
		trace.WithAttributes(
			attribute.String("schema.subject", subject),
			attribute.String("schema.format", s.Format().String()),
		))
	defer span.End()

	var result struct {
		ID int `json:"id"`
	}

	start := time.Now()
	reqURL := fmt.Sprintf("%s/subjects/%s/versions", c.url, url.PathEscape(subject))
	err := c.do(ctx, http.MethodPost, reqURL, registerPayload(s), &result)
	c.observe(ctx, span, "register_schema", start, err)
	if err != nil {
		return 0, err
	}

	parsed := s.ParsedTypedSchema
	c.mu.Lock()
	c.idCache[cacheKey] = result.ID
	c.schemaCache[result.ID] = &parsed
	c.mu.Unlock()

	return result.ID, nil
}

// CheckCompatibility checks a validated schema against the latest
// version registered under the subject. A subject with no versions yet
// reports as not found.
func (c *Client) CheckCompatibility(ctx context.Context, subject string, s *schema.ValidatedTypedSchema) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "registry.CheckCompatibility",
		trace.WithAttributes(
			attribute.String("schema.subject", subject),
			attribute.String("schema.format", s.Format().String()),
		))
	defer span.End()

	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}

	start := time.Now()
	reqURL := fmt.Sprintf("%s/compatibility/subjects/%s/versions/latest", c.url, url.PathEscape(subject))
	err := c.do(ctx, http.MethodPost, reqURL, registerPayload(s), &result)
	c.observe(ctx, span, "check_compatibility", start, err)
	if err != nil {
		return false, err
	}

	return result.IsCompatible, nil
}

// registerPayload builds the request body for registration and
// compatibility calls. The schemaType field is omitted for Avro, which
// registries treat as the default.
func registerPayload(s *schema.ValidatedTypedSchema) map[string]interface{} {
	payload := map[string]interface{}{
		"schema": s.String(),
	}
	if format := s.Format(); format != schema.FormatAvro {
		payload["schemaType"] = format.String()
	}
	return payload
}

// parseStored turns a stored registry response into a relaxed-parsed
// schema. An empty schemaType means Avro; the field was introduced after
// the registry already held Avro-only data.
func parseStored(schemaType, text string) (*schema.ParsedTypedSchema, error) {
	format := schema.FormatAvro
	if schemaType != "" {
		var err error
		if format, err = schema.ParseFormat(schemaType); err != nil {
			return nil, err
		}
	}
	return schema.NewParsedSchema(format, text)
}

// do performs one HTTP round trip against the registry. A nil payload
// sends no body; a non-nil out receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, reqURL string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", contentType)
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to registry failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// observe reports the outcome of one operation to the span, the metrics
// observer, and the logger, whichever of those are configured.
func (c *Client) observe(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		if c.logger != nil && !IsNotFound(err) {
			c.logger.ErrorWithContext(ctx, "registry operation failed", err, map[string]interface{}{
				"operation":   operation,
				"duration_ms": duration.Milliseconds(),
			})
		}
	}
	if c.observer != nil {
		c.observer.observe(operation, duration, err)
	}
}
