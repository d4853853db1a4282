package label

import (
	"encoding/json"
	"fmt"
)

// DefaultExportName is the suggested filename when no imported file is
// being overwritten.
const DefaultExportName = "label_v1.json"

type exportDocument struct {
	SuccessfulResults []Entry `json:"successful_results"`
}

// EncodeEntries serializes the store as the successful_results document.
func EncodeEntries(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(exportDocument{SuccessfulResults: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export document: %w", err)
	}
	return data, nil
}

// DecodeEntries parses an import document: either the successful_results
// wrapper or a bare top-level array of entries. Malformed JSON yields a
// parse error; well-formed JSON of any other shape yields ErrInvalidFormat.
func DecodeEntries(data []byte) ([]Entry, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse import document: %w", err)
	}

	switch doc := probe.(type) {
	case []any:
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return entries, nil
	case map[string]any:
		if _, ok := doc["successful_results"].([]any); !ok {
			return nil, ErrInvalidFormat
		}
		var wrapper exportDocument
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return wrapper.SuccessfulResults, nil
	default:
		return nil, ErrInvalidFormat
	}
}
