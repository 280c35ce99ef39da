package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

// DefaultOutputFile is written in the working directory
const DefaultOutputFile = "fgo_event.json"

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return path, nil
}

// Encode renders records as an indented JSON array. A nil slice encodes as [].
func Encode(records []*event.Record) ([]byte, error) {
	if records == nil {
		records = []*event.Record{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes records to path, replacing any previous output
func Save(path string, records []*event.Record) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Load reads records previously written by Save
func Load(path string) ([]*event.Record, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}

	var records []*event.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing output: %w", err)
	}

	// Older files may carry "item": null
	for _, r := range records {
		if r.Items == nil {
			r.Items = []event.Item{}
		}
	}

	return records, nil
}
