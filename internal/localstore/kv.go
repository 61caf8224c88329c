package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// KV is a minimal string key-value storage surface, the shape of browser
// local storage.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileKV persists the key-value map as a single JSON file. Values are
// rewritten atomically on every Set.
type FileKV struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

func NewFileKV(path string) *FileKV {
	kv := &FileKV{path: path, values: make(map[string]string)}
	if raw, err := os.ReadFile(path); err == nil {
		// A corrupt file starts the cache over empty.
		_ = json.Unmarshal(raw, &kv.values)
	}
	return kv
}

func (kv *FileKV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.values[key]
	return v, ok
}

func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.values[key] = value
	raw, err := json.Marshal(kv.values)
	if err != nil {
		return fmt.Errorf("encode kv file: %w", err)
	}

	tmp := kv.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write kv file: %w", err)
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace kv file: %w", err)
	}
	return nil
}

// MemKV is an in-memory KV for tests and throwaway sessions.
type MemKV struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

func (kv *MemKV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.values[key]
	return v, ok
}

func (kv *MemKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}
