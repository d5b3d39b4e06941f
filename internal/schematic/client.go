package schematic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"resty.dev/v3"
)

// DefaultEndpoint is the schematic-generation service used when no
// endpoint is configured.
const DefaultEndpoint = "https://factory.talos.dev/schematics"

// uploadTimeout bounds the full request/response round-trip.
const uploadTimeout = 60 * time.Second

// Client posts schematic definition files to a generation endpoint.
type Client struct {
	endpoint string
	resty    *resty.Client
}

// NewClient creates a Client for the given endpoint. An empty endpoint
// selects DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	client := resty.New()
	client.SetTimeout(uploadTimeout)

	return &Client{
		endpoint: endpoint,
		resty:    client,
	}
}

// Upload reads the file at path, posts its raw bytes to the endpoint, and
// returns the schematic identifier from the response.
//
// Any 2xx status is accepted. A non-2xx status or a response without an
// "id" field is an error — the caller decides whether that is fatal.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schematic file %s: %w", path, err)
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetBody(data).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("schematic request failed: %w", err)
	}

	//nolint:errcheck
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	id := gjson.GetBytes(body, "id")
	if !id.Exists() || id.String() == "" {
		return "", fmt.Errorf("response has no schematic id")
	}
	return id.String(), nil
}

// Request mirrors the JSON request document accepted by the schematic
// command: the file to upload and an optional endpoint override.
type Request struct {
	// Path is the schematic definition file to upload. Required.
	Path string `json:"path"`

	// URL overrides the generation endpoint. Optional.
	URL string `json:"url,omitempty"`
}

// LoadRequest reads a request document from path. The document may contain
// JSONC comments and trailing commas, which are stripped before parsing —
// hand-maintained request files frequently carry comments.
func LoadRequest(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var req Request
	if err := json.Unmarshal(jsonc.ToJSON(data), &req); err != nil {
		return nil, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}

	if req.Path == "" {
		return nil, fmt.Errorf("request file %s is missing the required \"path\" field", path)
	}
	return &req, nil
}
