package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	loggerpkg "github.com/minhyannv/mcchat/pkg/logger"
)

// ConversationStore holds the conversation collection for one process run and
// mirrors it to a single JSON file. Every save rewrites the whole file.
type ConversationStore struct {
	path          string
	logger        loggerpkg.Logger
	conversations []*Conversation
}

// NewConversationStore creates an empty store bound to path.
func NewConversationStore(path string, logger loggerpkg.Logger) *ConversationStore {
	if logger == nil {
		logger = loggerpkg.NopLogger{}
	}
	return &ConversationStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *ConversationStore) Path() string { return s.path }

// Load replaces the collection with the file contents. A missing file is an
// empty collection. On read or parse failure the collection is left empty,
// a warning is logged, and the error is returned.
func (s *ConversationStore) Load() error {
	s.conversations = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		loggerpkg.Warn(s.logger, "load conversations failed, starting empty", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("read conversations: %w", err)
	}

	var loaded []*Conversation
	if err := json.Unmarshal(data, &loaded); err != nil {
		loggerpkg.Warn(s.logger, "parse conversations failed, starting empty", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("parse conversations %s: %w", s.path, err)
	}

	for _, conv := range loaded {
		if conv == nil {
			continue
		}
		if conv.History == nil {
			conv.History = []Message{}
		}
		s.conversations = append(s.conversations, conv)
	}
	s.logger.Debug("conversations loaded", map[string]any{
		"path":  s.path,
		"count": len(s.conversations),
	})
	return nil
}

// SaveAll overwrites the file with the full collection.
func (s *ConversationStore) SaveAll() error {
	out := s.conversations
	if out == nil {
		out = []*Conversation{}
	}
	data, err := marshalJSON(out)
	if err != nil {
		loggerpkg.Warn(s.logger, "encode conversations failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("encode conversations: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		loggerpkg.Warn(s.logger, "save conversations failed", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return fmt.Errorf("write conversations: %w", err)
	}
	s.logger.Debug("conversations saved", map[string]any{
		"path":  s.path,
		"count": len(s.conversations),
	})
	return nil
}

// Delete removes the first conversation with id and persists the shorter
// collection. It reports false without error when no conversation matches.
func (s *ConversationStore) Delete(id int) (bool, error) {
	for i, conv := range s.conversations {
		if conv.ID != id {
			continue
		}
		s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
		if err := s.SaveAll(); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// List returns the collection in order. The slice must not be modified.
func (s *ConversationStore) List() []*Conversation { return s.conversations }

// Len returns the number of conversations in the collection.
func (s *ConversationStore) Len() int { return len(s.conversations) }

// NextID returns the id a conversation created now would get.
func (s *ConversationStore) NextID() int { return len(s.conversations) + 1 }

// Find returns the first conversation with id.
func (s *ConversationStore) Find(id int) (*Conversation, bool) {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return nil, false
}

// Contains reports whether conv itself (not an equal copy) is in the collection.
func (s *ConversationStore) Contains(conv *Conversation) bool {
	for _, c := range s.conversations {
		if c == conv {
			return true
		}
	}
	return false
}

// Add appends conv to the in-memory collection without persisting.
func (s *ConversationStore) Add(conv *Conversation) {
	s.conversations = append(s.conversations, conv)
}

// marshalJSON encodes v without HTML escaping, so message text such as
// "a<b && c>d" is stored as typed.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
