package profile

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadBytes decodes and validates a profile document.
func LoadBytes(data []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &Error{Kind: InvalidJSON, Msg: fmt.Sprintf("invalid json: %v", err)}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and decodes a profile document from disk.
func Load(path string) (*Profile, error) {
	// #nosec G304 -- path is provided by the caller (CLI flag / config)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: InvalidJSON, Msg: err.Error()}
	}
	return LoadBytes(data)
}
