// ABOUTME: Keyword suggestion store shared between workflow steps
// ABOUTME: Persists a JSON array of strings, optionally file-backed

package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// KeywordStore carries extracted keyword suggestions from the onboarding
// step to the trend analyzer. With a path it persists across runs as a
// JSON string array; without one it is purely in-memory.
type KeywordStore struct {
	path string

	mu       sync.Mutex
	keywords []string
}

// NewKeywordStore creates a store. path may be empty for in-memory use.
func NewKeywordStore(path string) *KeywordStore {
	return &KeywordStore{path: path}
}

// Save replaces the stored suggestions.
func (s *KeywordStore) Save(keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keywords = append([]string(nil), keywords...)

	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keywords: %w", err)
	}
	return nil
}

// Load returns the stored suggestions. A missing file is not an error; it
// just means nothing has been saved yet.
func (s *KeywordStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return append([]string(nil), s.keywords...), nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords: %w", err)
	}

	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	s.keywords = keywords
	return append([]string(nil), keywords...), nil
}

// Clear drops stored suggestions and removes the backing file if any.
func (s *KeywordStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keywords = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove keywords file: %w", err)
	}
	return nil
}
