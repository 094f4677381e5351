package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rl1809/coffee-maker/internal/adapter/handler"
)

// apiClient talks to the coffee maker HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends body as JSON and decodes the response into out. Non-2xx responses
// are still decoded; the status is returned for the caller to judge.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *apiClient) recipes(ctx context.Context) ([]*handler.RecipeHTTP, error) {
	var out []*handler.RecipeHTTP
	if _, err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) addRecipe(ctx context.Context, body map[string]string) (handler.RecipeHTTPResponse, error) {
	var out handler.RecipeHTTPResponse
	_, err := c.do(ctx, http.MethodPost, "/api/recipes", body, &out)
	return out, err
}

func (c *apiClient) editRecipe(ctx context.Context, index string, body map[string]string) (handler.RecipeHTTPResponse, error) {
	var out handler.RecipeHTTPResponse
	_, err := c.do(ctx, http.MethodPut, "/api/recipes/"+index, body, &out)
	return out, err
}

func (c *apiClient) deleteRecipe(ctx context.Context, index string) (handler.RecipeHTTPResponse, error) {
	var out handler.RecipeHTTPResponse
	_, err := c.do(ctx, http.MethodDelete, "/api/recipes/"+index, nil, &out)
	return out, err
}

func (c *apiClient) inventory(ctx context.Context) (handler.InventoryHTTPResponse, error) {
	var out handler.InventoryHTTPResponse
	_, err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &out)
	return out, err
}

func (c *apiClient) restock(ctx context.Context, body map[string]string) (handler.InventoryHTTPResponse, error) {
	var out handler.InventoryHTTPResponse
	_, err := c.do(ctx, http.MethodPost, "/api/inventory", body, &out)
	return out, err
}

func (c *apiClient) purchase(ctx context.Context, requestID string, selection, paid int) (handler.PurchaseHTTPResponse, error) {
	var out handler.PurchaseHTTPResponse
	body := map[string]any{"request_id": requestID, "selection": selection, "paid": paid}
	_, err := c.do(ctx, http.MethodPost, "/api/purchase", body, &out)
	return out, err
}
