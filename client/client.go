// Package client provides a small Go client for the listings API and the
// view-model behind the property detail screen.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/unistay-app/unistay/backend/models"
)

// APIError carries the status and {message} body of a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListQuery holds the optional listing filters. Zero values mean "no filter".
type ListQuery struct {
	Location string
	Type     string
	MaxPrice string
}

func (c *Client) Properties(ctx context.Context, q ListQuery) ([]models.Property, error) {
	values := url.Values{}
	if q.Location != "" {
		values.Set("location", q.Location)
	}
	if q.Type != "" {
		values.Set("type", q.Type)
	}
	if q.MaxPrice != "" {
		values.Set("maxPrice", q.MaxPrice)
	}

	path := "/api/properties"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var properties []models.Property
	if err := c.do(ctx, http.MethodGet, path, nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *Client) Property(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+id, nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, id string, payload models.PropertyUpdate) (*models.Property, error) {
	var property models.Property
	if err := c.do(ctx, http.MethodPut, "/api/properties/"+id, payload, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
