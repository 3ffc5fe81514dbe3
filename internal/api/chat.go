package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/startupmentor/internal/errors"
	"github.com/diogo/startupmentor/internal/models"
)

// Chat sends the conversation to /api/chat with streaming disabled and
// returns the extracted reply.
//
// Only transport failures and bodies that are not JSON are errors. A non-2xx
// status with a JSON body is returned as a reply whose StatusCode and
// ServerError describe the failure, so callers can fall back on Found.
func (c *OllamaClient) Chat(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error) {
	if len(messages) == 0 {
		return nil, apierrors.ErrEmptyPrompt
	}
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	endpoint := c.GetEndpoint()
	payload, err := buildChatPayload(c.GetModel(), messages)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.log.Debug().
		Str("endpoint", endpoint).
		Str("model", c.GetModel()).
		Int("messages", len(messages)).
		Msg("sending chat request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.WrapTransportError("chat", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.WrapTransportError("read chat response", endpoint, err)
	}

	reply, err := parseChatResponse(body)
	if err != nil {
		c.log.Warn().Int("status", resp.StatusCode).Err(err).Msg("chat response is not JSON")
		return nil, err
	}
	reply.StatusCode = resp.StatusCode

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Bool("found", reply.Found).
		Msg("chat response received")

	return reply, nil
}

// buildChatPayload creates the JSON body for a chat request
func buildChatPayload(model string, messages []models.ChatMessage) ([]byte, error) {
	return json.Marshal(models.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	})
}

// parseChatResponse extracts the reply from a non-streamed chat response
func parseChatResponse(body []byte) (*models.ChatReply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)
	content := parsed.Get(PathMessageContent)

	reply := &models.ChatReply{
		Model:       parsed.Get(PathModel).String(),
		Done:        parsed.Get(PathDone).Bool(),
		ServerError: parsed.Get(PathError).String(),
	}
	switch {
	case content.Type == gjson.String && content.Str != "":
		reply.Content = content.Str
		reply.Found = true
	case truthyNonString(content):
		return nil, apierrors.NewParseError("reply content is not a string", PathMessageContent)
	}

	return reply, nil
}

// truthyNonString reports a content value that is set but cannot be used as
// text. Null, false, zero and the empty string count as missing.
func truthyNonString(v gjson.Result) bool {
	switch v.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return v.Num != 0
	default:
		return false
	}
}
