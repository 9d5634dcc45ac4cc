package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	configpkg "github.com/minhyannv/mcchat/pkg/config"
	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
}

type wireResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type wireError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// httpClient posts the minimal OpenAI-compatible body with resty.
type httpClient struct {
	http     *resty.Client
	endpoint string
	model    string
	logger   loggerpkg.Logger
}

func newHTTPClient(cfg configpkg.Config, logger loggerpkg.Logger) *httpClient {
	rc := resty.New().
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{logger: logger})
	return &httpClient{
		http:     rc,
		endpoint: cfg.APIURL,
		model:    cfg.Model,
		logger:   logger,
	}
}

func (c *httpClient) Chat(ctx context.Context, prompt, systemPrompt string) Reply {
	if ctx == nil {
		ctx = context.Background()
	}
	c.logger.Debug("chat request", map[string]any{
		"endpoint":     c.endpoint,
		"model":        c.model,
		"prompt_bytes": len(prompt),
	})

	var result wireResponse
	var apiErr wireError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(wireRequest{
			Model: c.model,
			Messages: []wireMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(c.endpoint)
	if err != nil {
		return failed(c.logger, c.endpoint, err.Error(), fmt.Errorf("post chat completion: %w", err))
	}
	if resp.IsError() {
		detail := resp.Status()
		if apiErr.Error.Message != "" {
			detail = apiErr.Error.Message
		}
		return failed(c.logger, c.endpoint, detail, fmt.Errorf("chat completion: %s", resp.Status()))
	}
	if len(result.Choices) == 0 {
		return answered("")
	}
	return answered(result.Choices[0].Message.Content)
}

// restyLogger routes resty's own diagnostics into the application logger.
type restyLogger struct {
	logger loggerpkg.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	loggerpkg.Error(l.logger, restyMessage(format, v), map[string]any{"component": "resty"})
}

func (l restyLogger) Warnf(format string, v ...any) {
	loggerpkg.Warn(l.logger, restyMessage(format, v), map[string]any{"component": "resty"})
}

func (l restyLogger) Debugf(format string, v ...any) {
	loggerpkg.Debug(true, l.logger, restyMessage(format, v), map[string]any{"component": "resty"})
}

func restyMessage(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
