// Package chat sends a system prompt and a user prompt to a chat-completion
// endpoint and turns every outcome into a Reply. Failures never escape as errors.
package chat

import (
	"context"
	"fmt"

	configpkg "github.com/minhyannv/mcchat/pkg/config"
	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
)

// Fallback answers shown to the user in place of a model answer.
const (
	NoAnswer = "no valid answer"
	Apology  = "Sorry, no answer is available right now"
)

// Status tells which branch produced a Reply.
type Status int

const (
	// StatusOK means the first choice carried content.
	StatusOK Status = iota
	// StatusEmpty means the response had no choices or empty content.
	StatusEmpty
	// StatusFailed means the request failed in transport, on the server, or while decoding.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Reply is the outcome of one chat request. Content is always displayable.
type Reply struct {
	Content string
	Status  Status
	Err     error
}

// Client sends one prompt with a system prompt and returns the answer.
type Client interface {
	Chat(ctx context.Context, prompt, systemPrompt string) Reply
}

// Option configures optional dependencies for a Client.
type Option func(*deps)

type deps struct {
	logger loggerpkg.Logger
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *deps) {
		d.logger = l
	}
}

// New builds the client selected by cfg.Client.
func New(cfg configpkg.Config, opts ...Option) (Client, error) {
	d := deps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	if d.logger == nil {
		d.logger = loggerpkg.NopLogger{}
	}

	switch cfg.Client {
	case configpkg.ClientSDK, "":
		return newSDKClient(cfg, d.logger)
	case configpkg.ClientHTTP:
		return newHTTPClient(cfg, d.logger), nil
	default:
		return nil, fmt.Errorf("unknown chat client %q", cfg.Client)
	}
}

func answered(content string) Reply {
	if content == "" {
		return Reply{Content: NoAnswer, Status: StatusEmpty}
	}
	return Reply{Content: content, Status: StatusOK}
}

func failed(logger loggerpkg.Logger, endpoint, detail string, err error) Reply {
	loggerpkg.Error(logger, "chat request failed", map[string]any{
		"endpoint": endpoint,
		"detail":   detail,
	})
	return Reply{Content: Apology, Status: StatusFailed, Err: err}
}
