package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	configpkg "github.com/minhyannv/mcchat/pkg/config"
	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type sdkClient struct {
	client   openai.Client
	endpoint string
	model    string
	logger   loggerpkg.Logger
}

func newSDKClient(cfg configpkg.Config, logger loggerpkg.Logger) (*sdkClient, error) {
	endpoint, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("API URL %q must be absolute", cfg.APIURL)
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.APIURL),
		option.WithMaxRetries(0),
		option.WithMiddleware(pinEndpoint(endpoint)),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &sdkClient{
		client:   openai.NewClient(opts...),
		endpoint: cfg.APIURL,
		model:    cfg.Model,
		logger:   logger,
	}, nil
}

// pinEndpoint sends every request to the configured URL verbatim. The SDK
// would otherwise append "chat/completions" to it.
func pinEndpoint(endpoint *url.URL) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		u := *endpoint
		req.URL = &u
		req.Host = u.Host
		return next(req)
	}
}

func (c *sdkClient) Chat(ctx context.Context, prompt, systemPrompt string) Reply {
	if ctx == nil {
		ctx = context.Background()
	}
	c.logger.Debug("chat request", map[string]any{
		"endpoint":      c.endpoint,
		"model":         c.model,
		"prompt_bytes":  len(prompt),
		"system_prompt": len(systemPrompt),
	})

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		// openai.Error's own text names the SDK-built URL, not the pinned one.
		detail := err.Error()
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = http.StatusText(apiErr.StatusCode)
			}
			detail = fmt.Sprintf("%d %s", apiErr.StatusCode, message)
		}
		return failed(c.logger, c.endpoint, detail, err)
	}
	if len(completion.Choices) == 0 {
		return answered("")
	}
	return answered(completion.Choices[0].Message.Content)
}
