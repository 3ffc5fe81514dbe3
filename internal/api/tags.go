package api

import (
	"context"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/startupmentor/internal/errors"
	"github.com/diogo/startupmentor/internal/models"
)

// ListModels returns the models installed on the server (GET /api/tags)
func (c *OllamaClient) ListModels(ctx context.Context) ([]models.LocalModel, error) {
	body, err := c.get(ctx, "list models", models.EndpointTags)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, PathModelsList)
	if !list.IsArray() {
		return nil, apierrors.NewParseError("no model list found", PathModelsList)
	}

	var result []models.LocalModel
	list.ForEach(func(_, value gjson.Result) bool {
		name := value.Get(PathModelName).String()
		if name == "" {
			return true
		}
		result = append(result, models.LocalModel{
			Name:       name,
			Size:       value.Get(PathModelSize).Int(),
			ModifiedAt: value.Get(PathModelModifiedAt).String(),
			Family:     value.Get(PathModelFamily).String(),
		})
		return true
	})

	return result, nil
}

// Version returns the server version (GET /api/version). It doubles as a
// reachability probe.
func (c *OllamaClient) Version(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "version", models.EndpointVersion)
	if err != nil {
		return "", err
	}

	version := gjson.GetBytes(body, PathVersion)
	if !version.Exists() {
		return "", apierrors.NewParseError("no version found", PathVersion)
	}
	return version.String(), nil
}

// get performs a GET against the server root and returns a validated JSON body
func (c *OllamaClient) get(ctx context.Context, operation, path string) ([]byte, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	endpoint := c.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.WrapTransportError(operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.WrapTransportError(operation, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, operation+" failed", string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", "")
	}

	return body, nil
}
