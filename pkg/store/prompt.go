package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
)

type promptFile struct {
	Prompt string `json:"prompt"`
}

// PromptStore persists a single reusable system prompt.
type PromptStore struct {
	path   string
	logger loggerpkg.Logger
}

// NewPromptStore creates a prompt store bound to path.
func NewPromptStore(path string, logger loggerpkg.Logger) *PromptStore {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	return &PromptStore{path: path, logger: logger}
}

// Get returns the saved prompt. Missing, unreadable, and empty files all report false.
func (s *PromptStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			loggerpkg.Warn(s.logger, "read saved prompt failed", map[string]any{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return "", false
	}

	var pf promptFile
	if err := json.Unmarshal(data, &pf); err != nil {
		loggerpkg.Warn(s.logger, "parse saved prompt failed", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return "", false
	}
	if pf.Prompt == "" {
		return "", false
	}
	return pf.Prompt, true
}

// Save overwrites the prompt file.
func (s *PromptStore) Save(prompt string) error {
	data, err := marshalJSON(promptFile{Prompt: prompt})
	if err != nil {
		return fmt.Errorf("encode prompt: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		loggerpkg.Warn(s.logger, "save prompt failed", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("write prompt: %w", err)
	}
	s.logger.Debug("prompt saved", map[string]any{"path": s.path})
	return nil
}
