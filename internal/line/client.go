package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kapu/astro-line-bot-go/internal/constants"
	"github.com/kapu/astro-line-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to the LINE Messaging API. Only the reply endpoint is used;
// every reply token is good for exactly one call.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(baseURL, accessToken string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = constants.LineAPIConfig.BaseURL
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: constants.LineAPIConfig.Timeout,
		},
		logger: logger,
	}
}

// ReplyMessage sends one or more text messages against a reply token.
func (c *Client) ReplyMessage(ctx context.Context, replyToken string, messages ...TextMessage) error {
	if replyToken == "" {
		return errors.NewValidationError("reply token must not be empty", "replyToken", replyToken)
	}
	if len(messages) == 0 {
		return errors.NewValidationError("at least one message is required", "messages", len(messages))
	}

	req := ReplyRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}

	if err := c.doRequest(ctx, http.MethodPost, "/v2/bot/message/reply", req, nil); err != nil {
		c.logger.Error("Failed to send reply",
			zap.Error(err),
			zap.Int("messages", len(messages)),
		)
		return err
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": url,
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("request failed", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.NewAPIError(
			fmt.Sprintf("LINE API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  url,
				"body": string(bodyBytes),
			},
		)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return errors.NewAPIError("failed to decode response", 500, map[string]any{
				"url": url,
			}).WithCause(err)
		}
	}

	return nil
}
